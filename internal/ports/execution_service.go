package ports

import (
	"context"

	"github.com/Gunvolt24/kbatch/internal/domain"
)

// ExecutionService — прикладной сервис выполнений для транспортного слоя.
type ExecutionService interface {
	Execute(ctx context.Context, params domain.Parameters, src CredentialSource) (*domain.Execution, error)
	GetExecution(ctx context.Context, id string) (*domain.Execution, error)
	ListExecutions(ctx context.Context, topic string, limit, offset int) ([]*domain.ExecutionRecord, error)
}
