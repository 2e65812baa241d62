package kafka

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// ClientOptions — настройки клиента, общие для всех выполнений.
type ClientOptions struct {
	DialTimeout     time.Duration
	MinBytes        int
	MaxBytes        int
	MaxWait         time.Duration
	RetryInitial    time.Duration
	RetryMax        time.Duration
	MaxFetchRetries int
	CommitTimeout   time.Duration
}

func (o ClientOptions) withDefaults() ClientOptions {
	if o.DialTimeout <= 0 {
		o.DialTimeout = 10 * time.Second
	}
	if o.MinBytes <= 0 {
		o.MinBytes = 1
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = 10e6
	}
	if o.MaxBytes < o.MinBytes {
		o.MaxBytes = o.MinBytes
	}
	if o.MaxWait <= 0 {
		o.MaxWait = 500 * time.Millisecond
	}
	if o.RetryInitial <= 0 {
		o.RetryInitial = 200 * time.Millisecond
	}
	if o.RetryMax <= 0 {
		o.RetryMax = 5 * time.Second
	}
	if o.MaxFetchRetries <= 0 {
		o.MaxFetchRetries = 5
	}
	if o.CommitTimeout <= 0 {
		o.CommitTimeout = 5 * time.Second
	}
	return o
}

// ConsumerConfig — параметры reader'а одного выполнения.
type ConsumerConfig struct {
	Brokers        []string
	Topic          string
	GroupID        string
	FromBeginning  bool
	SessionTimeout time.Duration
	MinBytes       int
	MaxBytes       int
	MaxWait        time.Duration
	Dialer         *kafka.Dialer
}

// ReaderConfig — конфигурация kafka.Reader с ручным коммитом оффсетов.
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	rc := kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          c.Topic,
		Dialer:         c.Dialer,
		SessionTimeout: c.SessionTimeout,
		MinBytes:       c.MinBytes,
		MaxBytes:       c.MaxBytes,
		MaxWait:        c.MaxWait,
		CommitInterval: 0,
	}

	// StartOffset учитывается только для группы без закоммиченных оффсетов
	if c.FromBeginning {
		rc.StartOffset = kafka.FirstOffset
	} else {
		rc.StartOffset = kafka.LastOffset
	}

	return rc
}
