package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Gunvolt24/kbatch/internal/domain"
	"github.com/Gunvolt24/kbatch/internal/ports"
	"github.com/Gunvolt24/kbatch/pkg/metrics"
	"github.com/Gunvolt24/kbatch/pkg/telemetry"
)

const (
	DefaultStopTimeout       = 5 * time.Second
	DefaultDisconnectTimeout = 10 * time.Second
)

var ErrInvalidBatchSize = errors.New("batch size must be >= 1")

// Collector — реализация ports.BatchCollector поверх ports.BrokerConnector.
type Collector struct {
	connector         ports.BrokerConnector
	log               ports.Logger
	tracer            trace.Tracer
	stopTimeout       time.Duration
	disconnectTimeout time.Duration
	now               func() time.Time
}

type Option func(*Collector)

// WithStopTimeout — сколько ждать возврата Run после завершения сбора.
func WithStopTimeout(d time.Duration) Option {
	return func(c *Collector) {
		if d > 0 {
			c.stopTimeout = d
		}
	}
}

// WithDisconnectTimeout — ограничение на Disconnect (контекст отдельный от ctx вызова).
func WithDisconnectTimeout(d time.Duration) Option {
	return func(c *Collector) {
		if d > 0 {
			c.disconnectTimeout = d
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(c *Collector) {
		if t != nil {
			c.tracer = t
		}
	}
}

func NewCollector(connector ports.BrokerConnector, log ports.Logger, opts ...Option) *Collector {
	c := &Collector{
		connector:         connector,
		log:               log,
		tracer:            telemetry.Tracer(),
		stopTimeout:       DefaultStopTimeout,
		disconnectTimeout: DefaultDisconnectTimeout,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.BatchCollector = (*Collector)(nil)

// Collect — connect → subscribe → сбор до batchSize или readTimeout → disconnect.
// Любая ошибка выполнения возвращается как *Error; ошибка disconnect только логируется.
func (c *Collector) Collect(ctx context.Context, cfg domain.ConnectionConfig, req domain.CollectionRequest) (*domain.Batch, error) {
	ctx, span := c.tracer.Start(ctx, "batch.collect", trace.WithAttributes(
		attribute.String("messaging.system", "kafka"),
		attribute.String("messaging.destination.name", req.Topic),
		attribute.String("messaging.consumer.group.name", req.GroupID),
		attribute.Int("kbatch.batch_size", req.BatchSize),
		attribute.Int64("kbatch.read_timeout_ms", req.ReadTimeout.Milliseconds()),
	))
	defer span.End()

	if req.BatchSize < 1 {
		return nil, c.fail(ctx, span, req.Topic, StageCollect, ErrInvalidBatchSize)
	}

	// CONNECTING
	consumer, err := c.connector.Connect(ctx, cfg, domain.ConsumerOptions{
		GroupID:        req.GroupID,
		SessionTimeout: req.SessionTimeout,
	})
	if err != nil {
		return nil, c.fail(ctx, span, req.Topic, StageConnect, err)
	}
	span.AddEvent("connected")
	c.log.Debugf(ctx, "connected: client_id=%s brokers=%v group=%s", cfg.ClientID, cfg.Brokers, req.GroupID)

	// SUBSCRIBING
	if err := consumer.Subscribe(ctx, req.Topic, req.FromBeginning); err != nil {
		c.disconnect(ctx, consumer)
		return nil, c.fail(ctx, span, req.Topic, StageSubscribe, err)
	}
	span.AddEvent("subscribed")
	c.log.Debugf(ctx, "subscribed: topic=%s from_beginning=%t", req.Topic, req.FromBeginning)

	// COLLECTING
	started := c.now()
	messages, reason, err := c.collect(ctx, consumer, req)
	duration := c.now().Sub(started)

	// DRAINING → DISCONNECTED
	c.disconnect(ctx, consumer)
	if err != nil {
		return nil, c.fail(ctx, span, req.Topic, StageCollect, err)
	}

	metrics.BatchesCompleted.WithLabelValues(req.Topic, string(reason)).Inc()
	metrics.BatchDuration.WithLabelValues(string(reason)).Observe(duration.Seconds())
	span.SetAttributes(
		attribute.String("kbatch.reason", string(reason)),
		attribute.Int("kbatch.count", len(messages)),
	)
	c.log.Infof(ctx, "batch completed: topic=%s reason=%s count=%d duration=%s",
		req.Topic, reason, len(messages), duration)

	return &domain.Batch{
		Messages:  messages,
		Reason:    reason,
		StartedAt: started,
		Duration:  duration,
	}, nil
}

// collect — гонка счётчика и таймера. Возвращает записи в порядке поступления.
func (c *Collector) collect(ctx context.Context, consumer ports.BrokerConsumer, req domain.CollectionRequest) ([]domain.CollectedMessage, domain.CompletionReason, error) {
	acc := newAccumulator(req.BatchSize, req.ParseJSON)

	timer := time.AfterFunc(req.ReadTimeout, func() {
		if acc.complete(domain.ReasonTimeout) {
			c.log.Debugf(ctx, "read timeout elapsed: topic=%s count=%d", req.Topic, acc.count())
		}
	})
	defer timer.Stop()
	acc.onCount = func() { timer.Stop() }

	runCtx, stopRun := context.WithCancel(ctx)
	defer stopRun()

	handler := func(_ context.Context, raw domain.RawMessage) error {
		if !acc.add(raw) {
			metrics.MessagesDropped.WithLabelValues(req.Topic).Inc()
			return ports.ErrStopConsuming
		}
		metrics.MessagesCollected.WithLabelValues(req.Topic).Inc()
		return nil
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- consumer.Run(runCtx, handler)
	}()

	for {
		select {
		case <-acc.Done():
			stopRun()
			c.waitRun(ctx, errCh)
			messages, reason := acc.result()
			return messages, reason, nil

		case err := <-errCh:
			if err == nil || acc.isCompleted() {
				// подписка вернулась раньше времени: ждём сигнал завершения
				errCh = nil
				continue
			}
			if !acc.fail() {
				// завершение уже произошло, ошибка пришла после него
				messages, reason := acc.result()
				return messages, reason, nil
			}
			return nil, "", err

		case <-ctx.Done():
			if acc.fail() {
				stopRun()
				c.waitRun(ctx, errCh)
				return nil, "", ctx.Err()
			}
		}
	}
}

// waitRun — ждём возврата Run не дольше stopTimeout.
func (c *Collector) waitRun(ctx context.Context, errCh <-chan error) {
	if errCh == nil {
		return
	}
	t := time.NewTimer(c.stopTimeout)
	defer t.Stop()

	select {
	case err := <-errCh:
		if err != nil {
			c.log.Debugf(ctx, "subscription stopped with error: %v", err)
		}
	case <-t.C:
		c.log.Warnf(ctx, "subscription did not stop within %s", c.stopTimeout)
	}
}

// disconnect — best-effort: ошибка логируется и не влияет на результат.
func (c *Collector) disconnect(ctx context.Context, consumer ports.BrokerConsumer) {
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.disconnectTimeout)
	defer cancel()

	if err := consumer.Disconnect(dctx); err != nil {
		metrics.CleanupFailures.Inc()
		c.log.Warnf(ctx, "disconnect failed: %v", err)
		return
	}
	c.log.Debugf(ctx, "disconnected")
}

func (c *Collector) fail(ctx context.Context, span trace.Span, topic string, stage Stage, err error) error {
	metrics.BatchFailures.WithLabelValues(topic, string(stage)).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, fmt.Sprintf("%s failed", stage))
	c.log.Errorf(ctx, "%s failed: topic=%s err=%v", stage, topic, err)
	return &Error{Stage: stage, Err: err}
}
