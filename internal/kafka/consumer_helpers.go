package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/kbatch/internal/domain"
	"github.com/Gunvolt24/kbatch/internal/ports"
)

// handleMessage — передаёт сообщение обработчику и определяет, нужно ли коммитить оффсет.
// err != nil — цикл доставки должен завершиться с этой ошибкой.
func (c *Consumer) handleMessage(ctx context.Context, handler ports.MessageHandler, msg *kafka.Message) (commit bool, err error) {
	err = handler(ctx, toRaw(msg))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ports.ErrStopConsuming):
		// Сообщение не принято: не коммитим, его получит следующее выполнение группы
		c.log.Debugf(ctx, "stop consuming at partition=%d offset=%d", msg.Partition, msg.Offset)
		return false, nil
	default:
		c.log.Warnf(ctx, "handler failed partition=%d offset=%d: %v", msg.Partition, msg.Offset, err)
		return false, err
	}
}

// commitSafely пытается закоммитить оффсет и залогировать ошибку.
// Коммит не зависит от отмены ctx: последнее принятое сообщение батча коммитится
// уже после того, как вызывающий остановил цикл.
func (c *Consumer) commitSafely(ctx context.Context, r reader, msg *kafka.Message) {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.opts.CommitTimeout)
	defer cancel()

	if commitErr := r.CommitMessages(cctx, *msg); commitErr != nil {
		c.log.Warnf(ctx, "commit failed partition=%d offset=%d: %v", msg.Partition, msg.Offset, commitErr)
	}
}

// toRaw — kafka.Message в доменное сообщение. Повторяющиеся заголовки: побеждает последний.
func toRaw(msg *kafka.Message) domain.RawMessage {
	var headers map[string][]byte
	if len(msg.Headers) > 0 {
		headers = make(map[string][]byte, len(msg.Headers))
		for _, h := range msg.Headers {
			headers[h.Key] = h.Value
		}
	}
	return domain.RawMessage{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Key:       msg.Key,
		Value:     msg.Value,
		Headers:   headers,
		Time:      msg.Time,
	}
}

// sleepWithBackoff ждет backoff или останавливается по контексту.
func (c *Consumer) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// nextBackoff возвращает следующее время ожидания повтора с учетом RetryMax.
func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > c.opts.RetryMax {
		return c.opts.RetryMax
	}
	return current
}

// withJitterEqual — половина задержки фиксирована, вторая половина случайная.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(c.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}
