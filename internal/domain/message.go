package domain

import "time"

// RawMessage — сообщение в том виде, в каком его отдаёт брокер.
// nil в Key/Value/Headers означает отсутствие значения.
type RawMessage struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	Value     []byte
	Headers   map[string][]byte
	Time      time.Time
}

// CollectedMessage — запись результата. После создания не изменяется.
type CollectedMessage struct {
	Topic     string            `json:"topic"`
	Partition int               `json:"partition"`
	Offset    string            `json:"offset"`
	Key       *string           `json:"key"`
	Value     any               `json:"value"`
	Timestamp string            `json:"timestamp"`
	Headers   map[string]string `json:"headers"`
}

// CompletionReason — какой из сигналов завершил сбор.
type CompletionReason string

const (
	ReasonCount   CompletionReason = "count"
	ReasonTimeout CompletionReason = "timeout"
)

// Batch — результат одного цикла сбора.
type Batch struct {
	Messages  []CollectedMessage
	Reason    CompletionReason
	StartedAt time.Time
	Duration  time.Duration
}

// Item — конверт хоста для одной записи.
type Item struct {
	Data CollectedMessage `json:"data"`
}
