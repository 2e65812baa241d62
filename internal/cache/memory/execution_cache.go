// Пакет memory — in-memory LRU-кэш последних выполнений с TTL.
package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/kbatch/internal/domain"
	"github.com/Gunvolt24/kbatch/pkg/metrics"
)

type entry struct {
	id        string
	exec      *domain.Execution
	expiresAt time.Time
}

// ExecutionCache — LRU с TTL. ttl <= 0 отключает истечение.
type ExecutionCache struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

func NewExecutionCache(capacity int, ttl time.Duration) *ExecutionCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &ExecutionCache{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

func (c *ExecutionCache) Get(_ context.Context, id string) (*domain.Execution, bool) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[id]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(len(c.index)))
		return nil, false
	}
	c.ll.MoveToFront(elem)

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return cloneExecution(ent.exec), true
}

func (c *ExecutionCache) Set(_ context.Context, exec *domain.Execution) error {
	if exec == nil || exec.ID == "" {
		return nil
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[exec.ID]; ok {
		ent := elem.Value.(*entry)
		ent.exec = cloneExecution(exec)
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		id:        exec.ID,
		exec:      cloneExecution(exec),
		expiresAt: c.expiryFrom(now),
	})
	c.index[exec.ID] = elem
	metrics.CacheSize.Set(float64(len(c.index)))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	return nil
}

// Len — текущее число записей, включая ещё не вычищенные просроченные.
func (c *ExecutionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
