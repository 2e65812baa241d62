package kafka

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/kbatch/internal/ports"
	"github.com/Gunvolt24/kbatch/pkg/metrics"
)

// Проверка, что Consumer удовлетворяет порту приложения.
var _ ports.BrokerConsumer = (*Consumer)(nil)

var ErrNotSubscribed = errors.New("consumer is not subscribed")

// reader — минимальный контракт над kafka.Reader, чтобы подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// Consumer — consumer-хэндл одного выполнения: соединение с брокером + reader группы.
type Consumer struct {
	conn           brokerConn
	dialer         *kafka.Dialer
	brokers        []string
	groupID        string
	sessionTimeout time.Duration
	opts           ClientOptions
	log            ports.Logger
	newReader      func(kafka.ReaderConfig) reader

	mu         sync.Mutex
	reader     reader
	jitterRand *rand.Rand
	closeOnce  sync.Once
	closeErr   error
}

// Subscribe — проверяет, что топик существует, и создаёт reader группы.
func (c *Consumer) Subscribe(ctx context.Context, topic string, fromBeginning bool) error {
	partitions, err := c.readPartitions(ctx, topic)
	if err != nil {
		return err
	}
	if len(partitions) == 0 {
		return fmt.Errorf("topic %s has no partitions", topic)
	}

	cc := ConsumerConfig{
		Brokers:        c.brokers,
		Topic:          topic,
		GroupID:        c.groupID,
		FromBeginning:  fromBeginning,
		SessionTimeout: c.sessionTimeout,
		MinBytes:       c.opts.MinBytes,
		MaxBytes:       c.opts.MaxBytes,
		MaxWait:        c.opts.MaxWait,
		Dialer:         c.dialer,
	}
	rc := cc.ReaderConfig()
	rc.ErrorLogger = kafka.LoggerFunc(func(format string, args ...any) {
		c.log.Warnf(ctx, "kafka reader: "+format, args...)
	})
	if err := rc.Validate(); err != nil {
		return fmt.Errorf("reader config: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reader != nil {
		return fmt.Errorf("already subscribed to %s", c.reader.Config().Topic)
	}
	c.reader = c.newReader(rc)

	c.log.Infof(ctx, "kafka subscribed topic=%s group_id=%s partitions=%d from_beginning=%t",
		topic, c.groupID, len(partitions), fromBeginning)
	return nil
}

// readPartitions — запрос метаданных с дедлайном: из ctx, иначе now+DialTimeout.
func (c *Consumer) readPartitions(ctx context.Context, topic string) ([]kafka.Partition, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.opts.DialTimeout)
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("set metadata deadline: %w", err)
	}
	defer func() {
		if err := c.conn.SetDeadline(time.Time{}); err != nil {
			c.log.Debugf(ctx, "kafka reset metadata deadline: %v", err)
		}
	}()

	partitions, err := c.conn.ReadPartitions(topic)
	if err != nil {
		return nil, fmt.Errorf("read partitions of %s: %w", topic, err)
	}
	return partitions, nil
}

// Run — цикл доставки:
// 1) читаем сообщение без авто-коммита;
// 2) обработчик принял → CommitMessages;
// 3) ErrStopConsuming → без коммита, выходим;
// 4) ошибка обработчика → без коммита, возвращаем её;
// 5) ошибка fetch → backoff, после MaxFetchRetries подряд возвращаем ошибку.
func (c *Consumer) Run(ctx context.Context, handler ports.MessageHandler) error {
	r := c.currentReader()
	if r == nil {
		return ErrNotSubscribed
	}

	rc := r.Config()
	c.log.Debugf(ctx, "kafka fetch loop started topic=%s group_id=%s", rc.Topic, rc.GroupID)

	// Экспоненциальный backoff на ошибках FetchMessage с equal-jitter
	retry := c.opts.RetryInitial
	failures := 0

	for {
		msg, fetchErr := r.FetchMessage(ctx)
		if fetchErr != nil {
			// Если контекст отменен -> выходим штатно
			if ctx.Err() != nil {
				return nil
			}
			metrics.KafkaFetchErrors.WithLabelValues(rc.Topic).Inc()
			failures++
			if failures > c.opts.MaxFetchRetries {
				return fmt.Errorf("fetch message: %w", fetchErr)
			}

			sleep := c.withJitterEqual(retry)
			c.log.Warnf(ctx, "fetch failed: %v (attempt %d/%d, retry in %s)", fetchErr, failures, c.opts.MaxFetchRetries, sleep)
			if !c.sleepWithBackoff(ctx, sleep) {
				return nil
			}
			retry = c.nextBackoff(retry)
			continue
		}

		// Успешный FetchMessage -> сбрасываем интервал ожидания
		retry = c.opts.RetryInitial
		failures = 0

		commit, err := c.handleMessage(ctx, handler, &msg)
		if commit {
			c.commitSafely(ctx, r, &msg)
		}
		if err != nil {
			return err
		}
		if !commit {
			return nil
		}
	}
}

// Disconnect — закрывает reader и соединение. Повторный вызов возвращает тот же результат.
func (c *Consumer) Disconnect(ctx context.Context) error {
	c.closeOnce.Do(func() {
		var errs []error
		if r := c.currentReader(); r != nil {
			if err := r.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close reader: %w", err))
			}
		}
		if c.conn != nil {
			if err := c.conn.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close conn: %w", err))
			}
		}
		c.closeErr = errors.Join(errs...)
		c.log.Debugf(ctx, "kafka consumer closed")
	})
	return c.closeErr
}

func (c *Consumer) currentReader() reader {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reader
}
