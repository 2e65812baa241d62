package domain

import "time"

const (
	DefaultReadTimeoutMs    = 60000
	DefaultSessionTimeoutMs = 30000
)

// CollectionRequest — параметры одного цикла сбора сообщений.
type CollectionRequest struct {
	Topic          string
	GroupID        string
	FromBeginning  bool
	BatchSize      int
	SessionTimeout time.Duration
	ReadTimeout    time.Duration
	ParseJSON      bool
}

// ConsumerOptions — параметры consumer-хэндла, которые нужны уже при подключении.
type ConsumerOptions struct {
	GroupID        string
	SessionTimeout time.Duration
}

// Options — вложенный блок параметров узла ("options.*").
type Options struct {
	ReadTimeout *int  `json:"readTimeout,omitempty" validate:"omitempty,gte=1"`
	ParseJSON   *bool `json:"parseJson,omitempty"`
}

// Parameters — параметры узла в формате хоста (таймауты в миллисекундах).
type Parameters struct {
	GroupID        string  `json:"groupId" validate:"required"`
	Topic          string  `json:"topic" validate:"required"`
	BatchSize      int     `json:"batchSize" validate:"gte=1"`
	FromBeginning  bool    `json:"fromBeginning"`
	SessionTimeout int     `json:"sessionTimeout,omitempty" validate:"gte=0"`
	Options        Options `json:"options"`
}

// Request — применяет значения по умолчанию и переводит параметры в CollectionRequest.
func (p Parameters) Request() CollectionRequest {
	session := p.SessionTimeout
	if session <= 0 {
		session = DefaultSessionTimeoutMs
	}

	read := DefaultReadTimeoutMs
	if p.Options.ReadTimeout != nil {
		read = *p.Options.ReadTimeout
	}

	parseJSON := true
	if p.Options.ParseJSON != nil {
		parseJSON = *p.Options.ParseJSON
	}

	return CollectionRequest{
		Topic:          p.Topic,
		GroupID:        p.GroupID,
		FromBeginning:  p.FromBeginning,
		BatchSize:      p.BatchSize,
		SessionTimeout: time.Duration(session) * time.Millisecond,
		ReadTimeout:    time.Duration(read) * time.Millisecond,
		ParseJSON:      parseJSON,
	}
}
