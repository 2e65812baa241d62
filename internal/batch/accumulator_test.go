package batch

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/kbatch/internal/domain"
)

// Завершение срабатывает один раз, как бы ни гонялись счётчик и таймер
func TestAccumulator_SingleShot(t *testing.T) {
	for round := 0; round < 50; round++ {
		acc := newAccumulator(10, false)
		var onCount atomic.Int32
		acc.onCount = func() { onCount.Add(1) }

		var (
			wg        sync.WaitGroup
			completes atomic.Int32
			accepted  atomic.Int32
		)
		for i := 0; i < 30; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				if acc.add(domain.RawMessage{Value: []byte("x")}) {
					accepted.Add(1)
				}
			}()
			go func() {
				defer wg.Done()
				if i%10 == 0 && acc.complete(domain.ReasonTimeout) {
					completes.Add(1)
				}
			}()
		}
		wg.Wait()

		<-acc.Done()
		msgs, reason := acc.result()
		assert.LessOrEqual(t, len(msgs), 10)
		assert.EqualValues(t, len(msgs), accepted.Load())

		switch reason {
		case domain.ReasonCount:
			assert.Len(t, msgs, 10)
			assert.EqualValues(t, 1, onCount.Load())
			assert.EqualValues(t, 0, completes.Load())
		case domain.ReasonTimeout:
			assert.EqualValues(t, 0, onCount.Load())
			assert.EqualValues(t, 1, completes.Load())
		default:
			t.Fatalf("unexpected reason %q", reason)
		}
	}
}

func TestAccumulator_RejectsAfterCompletion(t *testing.T) {
	acc := newAccumulator(2, false)
	require.True(t, acc.add(domain.RawMessage{Value: []byte("a")}))
	require.True(t, acc.add(domain.RawMessage{Value: []byte("b")}))
	assert.False(t, acc.add(domain.RawMessage{Value: []byte("c")}))
	assert.False(t, acc.complete(domain.ReasonTimeout))

	msgs, reason := acc.result()
	assert.Equal(t, domain.ReasonCount, reason)
	require.Len(t, msgs, 2)
	assert.Equal(t, "a", msgs[0].Value)
	assert.Equal(t, "b", msgs[1].Value)
}

func TestAccumulator_ResultIsCopy(t *testing.T) {
	acc := newAccumulator(1, false)
	acc.add(domain.RawMessage{Value: []byte("a"), Headers: map[string][]byte{"h": []byte("1")}})

	first, _ := acc.result()
	first[0].Headers["h"] = "changed"
	first[0].Value = "changed"

	second, _ := acc.result()
	assert.Equal(t, "a", second[0].Value)
	assert.Equal(t, "1", second[0].Headers["h"])
}

// fail занимает сигнал без причины: после него ни add, ни complete, ни счётчик не срабатывают
func TestAccumulator_FailClaimsWithoutReason(t *testing.T) {
	acc := newAccumulator(1, false)
	acc.onCount = func() { t.Fatal("onCount must not fire after fail") }

	require.True(t, acc.fail())
	assert.False(t, acc.fail())
	assert.False(t, acc.complete(domain.ReasonTimeout))
	assert.False(t, acc.add(domain.RawMessage{Value: []byte("x")}))

	select {
	case <-acc.Done():
	default:
		t.Fatal("done must be closed after fail")
	}

	messages, reason := acc.result()
	assert.Empty(t, messages)
	assert.Empty(t, reason)
}

func TestAccumulator_FailAfterCompletion(t *testing.T) {
	acc := newAccumulator(1, false)
	require.True(t, acc.add(domain.RawMessage{Value: []byte("x")}))

	assert.False(t, acc.fail())
	_, reason := acc.result()
	assert.Equal(t, domain.ReasonCount, reason)
}
