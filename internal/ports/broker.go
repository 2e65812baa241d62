package ports

import (
	"context"
	"errors"

	"github.com/Gunvolt24/kbatch/internal/domain"
)

// ErrStopConsuming — обработчик больше не принимает сообщения.
// Сообщение, на котором вернули эту ошибку, не коммитится, а Run завершается без ошибки.
var ErrStopConsuming = errors.New("stop consuming")

// MessageHandler вызывается на каждое входящее сообщение в порядке поступления.
type MessageHandler func(ctx context.Context, msg domain.RawMessage) error

// BrokerConnector — открывает подключение к брокеру.
type BrokerConnector interface {
	Connect(ctx context.Context, cfg domain.ConnectionConfig, opts domain.ConsumerOptions) (BrokerConsumer, error)
}

// BrokerConsumer — consumer-хэндл одного выполнения.
type BrokerConsumer interface {
	// Subscribe — подписка на топик.
	Subscribe(ctx context.Context, topic string, fromBeginning bool) error
	// Run — блокирующий цикл доставки. Возвращает nil после отмены ctx
	// или после ErrStopConsuming от обработчика.
	Run(ctx context.Context, handler MessageHandler) error
	// Disconnect — закрывает подключение. Повторный вызов безопасен.
	Disconnect(ctx context.Context) error
}
