package ports

import (
	"context"

	"github.com/Gunvolt24/kbatch/internal/domain"
)

// ExecutionCache — кэш последних выполнений.
// Требования к реализации: потокобезопасность; возврат копий.
type ExecutionCache interface {
	// Get — (execution, true) при попадании, (nil, false) при промахе/истечении.
	Get(ctx context.Context, id string) (*domain.Execution, bool)

	// Set — сохранить/обновить выполнение.
	Set(ctx context.Context, exec *domain.Execution) error
}
