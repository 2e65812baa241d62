package ports

import (
	"context"

	"github.com/Gunvolt24/kbatch/internal/domain"
)

// BatchCollector — один цикл connect → subscribe → collect → disconnect.
type BatchCollector interface {
	Collect(ctx context.Context, cfg domain.ConnectionConfig, req domain.CollectionRequest) (*domain.Batch, error)
}
