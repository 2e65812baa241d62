//go:build integration

package testutil

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
)

// UniqueTopicAndGroup — уникальные topic/group на основе базового префикса.
// Пример: base="events-itest" → "events-itest-20250826T010203123456789", "...-g".
func UniqueTopicAndGroup(base string) (topic, group string) {
	s := time.Now().UTC().Format("20060102T150405.000000000")
	s = strings.ReplaceAll(s, ".", "")
	topic = fmt.Sprintf("%s-%s", base, s)
	return topic, topic + "-g"
}

// KafkaClient — админ/продюсер для подготовки данных в тестах.
type KafkaClient struct {
	Brokers []string
	SASL    sasl.Mechanism
}

func (k KafkaClient) dialer() *kafka.Dialer {
	return &kafka.Dialer{Timeout: 10 * time.Second, DualStack: true, SASLMechanism: k.SASL}
}

// EnsureTopic — создаёт топик (если он уже есть — это OK) и ждёт его готовности.
// Адрес брокера: "host:port" или "PLAINTEXT://host:port"; берётся первый из Brokers.
func (k KafkaClient) EnsureTopic(ctx context.Context, topic string, partitions int) error {
	if partitions <= 0 {
		partitions = 1
	}
	addr := firstBootstrap(strings.Join(k.Brokers, ","))
	d := k.dialer()

	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	// топики создаются через контроллер кластера
	ctrl, err := conn.Controller()
	if err != nil {
		return err
	}
	admin, err := d.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return err
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     partitions,
		ReplicationFactor: 1,
	})
	if err != nil && !strings.Contains(strings.ToLower(err.Error()), "already exists") {
		return err
	}

	return k.waitTopicReady(ctx, addr, topic)
}

// Produce — синхронно пишет сообщения в топик (acks=all). Порядок сохраняется
// внутри партиции, поэтому для проверок порядка используйте топик с одной партицией.
func (k KafkaClient) Produce(ctx context.Context, topic string, msgs ...kafka.Message) error {
	w := &kafka.Writer{
		Addr:         kafka.TCP(k.Brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		Transport:    &kafka.Transport{SASL: k.SASL},
	}
	defer w.Close()
	return w.WriteMessages(ctx, msgs...)
}

// JSONMessages — n сообщений со значениями {"id":0}..{"id":n-1} и ключами k0..k(n-1).
func JSONMessages(n int) []kafka.Message {
	out := make([]kafka.Message, n)
	for i := range out {
		out[i] = kafka.Message{
			Key:     []byte("k" + strconv.Itoa(i)),
			Value:   []byte(fmt.Sprintf(`{"id":%d}`, i)),
			Headers: []kafka.Header{{Key: "seq", Value: []byte(strconv.Itoa(i))}},
		}
	}
	return out
}

// firstBootstrap берёт первый адрес из bootstrap-строки и снимает схему вида "PLAINTEXT://".
func firstBootstrap(raw string) string {
	first := strings.TrimSpace(strings.Split(raw, ",")[0])
	if strings.Contains(first, "://") {
		if u, err := url.Parse(first); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return first
}

func (k KafkaClient) waitTopicReady(ctx context.Context, broker, topic string) error {
	deadline := time.Now().Add(5 * time.Second)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c, err := k.dialer().DialContext(ctx, "tcp", broker)
		if err == nil {
			parts, perr := c.ReadPartitions(topic)
			_ = c.Close()
			if perr == nil && len(parts) > 0 {
				return nil
			}
			err = perr
		}

		if time.Now().After(deadline) {
			if err != nil {
				return fmt.Errorf("topic %q not ready: %w", topic, err)
			}
			return fmt.Errorf("topic %q not ready", topic)
		}
		time.Sleep(200 * time.Millisecond)
	}
}
