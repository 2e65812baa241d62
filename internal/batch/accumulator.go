package batch

import (
	"sync"

	"github.com/Gunvolt24/kbatch/internal/domain"
)

// accumulator — результат выполнения и одноразовый сигнал завершения.
// Завершает первый сработавший сигнал (счётчик или таймер), остальные — no-op.
type accumulator struct {
	mu        sync.Mutex
	size      int
	parseJSON bool
	messages  []domain.CollectedMessage
	reason    domain.CompletionReason
	completed bool
	done      chan struct{}
	// onCount вызывается ровно один раз, если победил счётчик (останов таймера).
	onCount func()
}

func newAccumulator(size int, parseJSON bool) *accumulator {
	return &accumulator{
		size:      size,
		parseJSON: parseJSON,
		messages:  make([]domain.CollectedMessage, 0, size),
		done:      make(chan struct{}),
	}
}

// add — добавляет сообщение. false — батч уже завершён, сообщение не принято.
func (a *accumulator) add(raw domain.RawMessage) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.completed {
		return false
	}
	a.messages = append(a.messages, ToCollected(raw, a.parseJSON))
	if len(a.messages) >= a.size {
		a.finishLocked(domain.ReasonCount)
		if a.onCount != nil {
			a.onCount()
		}
	}
	return true
}

// complete — завершение по внешнему сигналу. false — завершение уже произошло раньше.
func (a *accumulator) complete(reason domain.CompletionReason) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.completed {
		return false
	}
	a.finishLocked(reason)
	return true
}

// fail — занимает одноразовый сигнал без причины завершения (ошибка подписки или отмена).
// false — батч уже завершён раньше.
func (a *accumulator) fail() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.completed {
		return false
	}
	a.finishLocked("")
	return true
}

func (a *accumulator) finishLocked(reason domain.CompletionReason) {
	a.completed = true
	a.reason = reason
	close(a.done)
}

func (a *accumulator) Done() <-chan struct{} { return a.done }

func (a *accumulator) isCompleted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.completed
}

func (a *accumulator) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.messages)
}

// result — снимок результата после завершения.
func (a *accumulator) result() ([]domain.CollectedMessage, domain.CompletionReason) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return cloneMessages(a.messages), a.reason
}
