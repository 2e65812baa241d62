package memory

import (
	"container/list"
	"maps"
	"time"

	"github.com/Gunvolt24/kbatch/internal/domain"
	"github.com/Gunvolt24/kbatch/pkg/metrics"
)

// evictLRU — удаляет наименее используемый элемент.
func (c *ExecutionCache) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("evicted").Inc()
		metrics.CacheSize.Set(float64(len(c.index)))
	}
}

func (c *ExecutionCache) removeElement(elem *list.Element) {
	if ent, ok := elem.Value.(*entry); ok {
		delete(c.index, ent.id)
	}
	c.ll.Remove(elem)
}

func (c *ExecutionCache) isExpired(ent *entry, now time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return now.After(ent.expiresAt)
}

func (c *ExecutionCache) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack — удаляет просроченные элементы с хвоста до первого актуального.
func (c *ExecutionCache) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for {
		back := c.ll.Back()
		if back == nil {
			return
		}
		ent := back.Value.(*entry)
		if !now.After(ent.expiresAt) {
			return
		}
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("expired").Inc()
		metrics.CacheSize.Set(float64(len(c.index)))
	}
}

// cloneExecution — копия выполнения, чтобы внешние изменения
// не отражались на данных внутри кэша. Заголовки и разобранный JSON копируются целиком.
func cloneExecution(exec *domain.Execution) *domain.Execution {
	if exec == nil {
		return nil
	}
	cloned := *exec
	if exec.Items != nil {
		cloned.Items = make([]domain.Item, len(exec.Items))
		for i, it := range exec.Items {
			it.Data.Headers = maps.Clone(it.Data.Headers)
			it.Data.Value = cloneValue(it.Data.Value)
			if it.Data.Key != nil {
				key := *it.Data.Key
				it.Data.Key = &key
			}
			cloned.Items[i] = it
		}
	}
	return &cloned
}

// cloneValue — глубокая копия результата разбора JSON.
// Строки, json.Number, bool и nil неизменяемы и возвращаются как есть.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = cloneValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = cloneValue(inner)
		}
		return out
	default:
		return v
	}
}
