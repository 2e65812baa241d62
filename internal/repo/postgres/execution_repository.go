package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/kbatch/internal/domain"
	"github.com/Gunvolt24/kbatch/internal/ports"
)

// Проверка, что ExecutionRepository удовлетворяет порту.
var _ ports.ExecutionRepository = (*ExecutionRepository)(nil)

// ExecutionRepository — история выполнений на Postgres (pgxpool).
type ExecutionRepository struct {
	pool *pgxpool.Pool
}

func NewExecutionRepository(pool *pgxpool.Pool) *ExecutionRepository {
	return &ExecutionRepository{pool: pool}
}

const selectColumns = `
	id, topic, group_id, batch_size, COALESCE(reason, ''), message_count,
	started_at, finished_at, COALESCE(error, '')`

// Save — идемпотентный upsert по id.
func (r *ExecutionRepository) Save(ctx context.Context, rec *domain.ExecutionRecord) error {
	if rec == nil || rec.ID == "" {
		return errors.New("execution record is empty or id is required")
	}

	if _, err := r.pool.Exec(ctx, `
		INSERT INTO executions (
			id, topic, group_id, batch_size, reason, message_count, started_at, finished_at, error
		) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, NULLIF($9, ''))
		ON CONFLICT (id) DO UPDATE SET
			topic = EXCLUDED.topic,
			group_id = EXCLUDED.group_id,
			batch_size = EXCLUDED.batch_size,
			reason = EXCLUDED.reason,
			message_count = EXCLUDED.message_count,
			started_at = EXCLUDED.started_at,
			finished_at = EXCLUDED.finished_at,
			error = EXCLUDED.error
	`,
		rec.ID, rec.Topic, rec.GroupID, rec.BatchSize, string(rec.Reason), rec.MessageCount,
		rec.StartedAt, rec.FinishedAt, rec.Error,
	); err != nil {
		return fmt.Errorf("upsert execution: %w", err)
	}
	return nil
}

// GetByID — (nil, nil), если записи нет.
func (r *ExecutionRepository) GetByID(ctx context.Context, id string) (*domain.ExecutionRecord, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM executions WHERE id = $1`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select execution: %w", err)
	}
	return rec, nil
}

// ListByTopic — последние выполнения (новые первыми). Пустой topic — все топики.
func (r *ExecutionRepository) ListByTopic(ctx context.Context, topic string, limit, offset int) ([]*domain.ExecutionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+selectColumns+`
		FROM executions
		WHERE $1 = '' OR topic = $1
		ORDER BY started_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, topic, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("select executions: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.ExecutionRecord, 0, limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan execution: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate executions: %w", err)
	}
	return out, nil
}

func scanRecord(row pgx.Row) (*domain.ExecutionRecord, error) {
	var (
		rec    domain.ExecutionRecord
		reason string
	)
	if err := row.Scan(
		&rec.ID, &rec.Topic, &rec.GroupID, &rec.BatchSize, &reason, &rec.MessageCount,
		&rec.StartedAt, &rec.FinishedAt, &rec.Error,
	); err != nil {
		return nil, err
	}
	rec.Reason = domain.CompletionReason(reason)
	return &rec, nil
}
