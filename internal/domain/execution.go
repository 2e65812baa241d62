package domain

import "time"

// Execution — одно выполнение узла вместе с результатом.
type Execution struct {
	ID         string           `json:"id"`
	Topic      string           `json:"topic"`
	GroupID    string           `json:"groupId"`
	BatchSize  int              `json:"batchSize"`
	Reason     CompletionReason `json:"reason,omitempty"`
	Items      []Item           `json:"items"`
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt"`
	Error      string           `json:"error,omitempty"`
}

// ExecutionRecord — запись истории выполнений (без самих сообщений).
type ExecutionRecord struct {
	ID           string           `json:"id"`
	Topic        string           `json:"topic"`
	GroupID      string           `json:"groupId"`
	BatchSize    int              `json:"batchSize"`
	Reason       CompletionReason `json:"reason,omitempty"`
	MessageCount int              `json:"messageCount"`
	StartedAt    time.Time        `json:"startedAt"`
	FinishedAt   time.Time        `json:"finishedAt"`
	Error        string           `json:"error,omitempty"`
}

// Record — краткая форма выполнения для истории.
func (e *Execution) Record() ExecutionRecord {
	return ExecutionRecord{
		ID:           e.ID,
		Topic:        e.Topic,
		GroupID:      e.GroupID,
		BatchSize:    e.BatchSize,
		Reason:       e.Reason,
		MessageCount: len(e.Items),
		StartedAt:    e.StartedAt,
		FinishedAt:   e.FinishedAt,
		Error:        e.Error,
	}
}
