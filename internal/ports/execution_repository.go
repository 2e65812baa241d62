package ports

import (
	"context"

	"github.com/Gunvolt24/kbatch/internal/domain"
)

// ExecutionRepository — история выполнений.
type ExecutionRepository interface {
	Save(ctx context.Context, rec *domain.ExecutionRecord) error
	GetByID(ctx context.Context, id string) (*domain.ExecutionRecord, error)
	ListByTopic(ctx context.Context, topic string, limit, offset int) ([]*domain.ExecutionRecord, error)
}
