//go:build integration

package kafka_test

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/segmentio/kafka-go/sasl/scram"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"

	"github.com/Gunvolt24/kbatch/internal/batch"
	"github.com/Gunvolt24/kbatch/internal/domain"
	ikafka "github.com/Gunvolt24/kbatch/internal/kafka"
	"github.com/Gunvolt24/kbatch/internal/testutil"
	"github.com/Gunvolt24/kbatch/pkg/logger"
)

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func safe(t *testing.T) string { return reUnsafe.ReplaceAllString(t.Name(), "-") }

type stack struct {
	ctx       context.Context
	kf        *testutil.KafkaEnv
	client    testutil.KafkaClient
	collector *batch.Collector
}

func newStack(t *testing.T, opts ...tc.ContainerCustomizer) *stack {
	t.Helper()

	// длинный контекст только на старт контейнера
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancelStart)

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "events-itc", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	t.Cleanup(cancel)

	logg, closer, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer() })

	conn := ikafka.NewConnector(ikafka.ClientOptions{
		DialTimeout:  5 * time.Second,
		MaxWait:      200 * time.Millisecond,
		RetryInitial: 100 * time.Millisecond,
		RetryMax:     time.Second,
	}, logg)

	return &stack{
		ctx:       ctx,
		kf:        kf,
		client:    kf.Client(),
		collector: batch.NewCollector(conn, logg),
	}
}

func (s *stack) topic(t *testing.T, n int) (topic, group string) {
	t.Helper()
	topic, group = testutil.UniqueTopicAndGroup(s.kf.BaseTopic + "-" + safe(t))
	require.NoError(t, s.client.EnsureTopic(s.ctx, topic, 1))
	if n > 0 {
		require.NoError(t, s.client.Produce(s.ctx, topic, testutil.JSONMessages(n)...))
	}
	return topic, group
}

func request(topic, group string, size int, readTimeout time.Duration) domain.CollectionRequest {
	return domain.CollectionRequest{
		Topic:          topic,
		GroupID:        group,
		FromBeginning:  true,
		BatchSize:      size,
		SessionTimeout: 10 * time.Second,
		ReadTimeout:    readTimeout,
		ParseJSON:      true,
	}
}

// 1) Батч по счётчику: значения разобраны, порядок сохранён
func TestCollect_CountBound_TC(t *testing.T) {
	s := newStack(t)
	topic, group := s.topic(t, 5)

	cfg := domain.ConnectionConfig{ClientID: "kbatch-itc", Brokers: s.kf.Brokers}
	b, err := s.collector.Collect(s.ctx, cfg, request(topic, group, 5, 30*time.Second))
	require.NoError(t, err)
	require.Equal(t, domain.ReasonCount, b.Reason)
	require.Len(t, b.Messages, 5)

	for i, m := range b.Messages {
		obj, ok := m.Value.(map[string]any)
		require.True(t, ok, "value %d is %T", i, m.Value)
		require.Equal(t, fmt.Sprint(i), fmt.Sprint(obj["id"]))
		require.NotNil(t, m.Key)
		require.Equal(t, fmt.Sprintf("k%d", i), *m.Key)
		require.Equal(t, fmt.Sprint(i), m.Headers["seq"])
		require.Equal(t, fmt.Sprint(i), m.Offset)
	}
}

// 2) Сообщения сверх батча не коммитятся и достаются следующему выполнению группы
func TestCollect_LateMessagesRedelivered_TC(t *testing.T) {
	s := newStack(t)
	topic, group := s.topic(t, 5)
	cfg := domain.ConnectionConfig{ClientID: "kbatch-itc", Brokers: s.kf.Brokers}

	first, err := s.collector.Collect(s.ctx, cfg, request(topic, group, 3, 30*time.Second))
	require.NoError(t, err)
	require.Len(t, first.Messages, 3)
	require.Equal(t, "2", first.Messages[2].Offset)

	second, err := s.collector.Collect(s.ctx, cfg, request(topic, group, 2, 30*time.Second))
	require.NoError(t, err)
	require.Len(t, second.Messages, 2)
	require.Equal(t, "3", second.Messages[0].Offset)
	require.Equal(t, "4", second.Messages[1].Offset)
}

// 3) Батч по таймеру: сообщений меньше batchSize
func TestCollect_TimeBound_TC(t *testing.T) {
	s := newStack(t)
	topic, group := s.topic(t, 2)
	cfg := domain.ConnectionConfig{ClientID: "kbatch-itc", Brokers: s.kf.Brokers}

	b, err := s.collector.Collect(s.ctx, cfg, request(topic, group, 10, 8*time.Second))
	require.NoError(t, err)
	require.Equal(t, domain.ReasonTimeout, b.Reason)
	require.Len(t, b.Messages, 2)
	require.GreaterOrEqual(t, b.Duration, 8*time.Second)
}

// 4) Недоступный брокер — ошибка этапа connect
func TestCollect_ConnectError_TC(t *testing.T) {
	s := newStack(t)

	cfg := domain.ConnectionConfig{ClientID: "kbatch-itc", Brokers: []string{"127.0.0.1:1"}}
	_, err := s.collector.Collect(s.ctx, cfg, request("any", "g", 1, time.Second))
	require.Error(t, err)

	var be *batch.Error
	require.ErrorAs(t, err, &be)
	require.Equal(t, batch.StageConnect, be.Stage)
	require.Contains(t, err.Error(), "kafka error: ")
}

// 5) SASL/SCRAM-SHA-256
func TestCollect_SASLScram_TC(t *testing.T) {
	const user, pass = "superuser-1", "test"

	s := newStack(t,
		redpanda.WithEnableSASL(),
		redpanda.WithNewServiceAccount(user, pass),
		redpanda.WithSuperusers(user),
	)
	mech, err := scram.Mechanism(scram.SHA256, user, pass)
	require.NoError(t, err)
	s.client.SASL = mech

	topic, group := s.topic(t, 3)

	cfg := domain.ConnectionConfig{
		ClientID: "kbatch-itc",
		Brokers:  s.kf.Brokers,
		Auth:     &domain.AuthConfig{Mechanism: domain.MechanismScramSHA256, Username: user, Password: pass},
	}
	b, err := s.collector.Collect(s.ctx, cfg, request(topic, group, 3, 30*time.Second))
	require.NoError(t, err)
	require.Len(t, b.Messages, 3)

	// неверный пароль — ошибка подключения
	cfg.Auth.Password = "wrong"
	_, err = s.collector.Collect(s.ctx, cfg, request(topic, group+"-2", 1, 5*time.Second))
	require.Error(t, err)
}
