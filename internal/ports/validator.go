package ports

import (
	"context"

	"github.com/Gunvolt24/kbatch/internal/domain"
)

// ParametersValidator — проверка параметров узла до подключения к брокеру.
type ParametersValidator interface {
	Validate(ctx context.Context, params *domain.Parameters) error
}
