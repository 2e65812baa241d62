package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Gunvolt24/kbatch/internal/credentials"
	"github.com/Gunvolt24/kbatch/internal/domain"
	"github.com/Gunvolt24/kbatch/internal/ports"
	"github.com/Gunvolt24/kbatch/pkg/ctxmeta"
)

// Проверка, что BatchService удовлетворяет порту транспорта.
var _ ports.ExecutionService = (*BatchService)(nil)

// ErrHistoryDisabled — история выполнений не настроена (нет репозитория).
var ErrHistoryDisabled = errors.New("execution history is disabled")

// BatchService — прикладная логика выполнений узла (без знаний о транспорте).
type BatchService struct {
	collector ports.BatchCollector
	repo      ports.ExecutionRepository // nil — история отключена
	cache     ports.ExecutionCache
	validator ports.ParametersValidator
	creds     ports.CredentialSource // источник по умолчанию, если вызывающий не передал свой
	log       ports.Logger

	newID func() string
	now   func() time.Time
}

// NewBatchService — DI-конструктор. repo и creds могут быть nil.
func NewBatchService(
	collector ports.BatchCollector,
	repo ports.ExecutionRepository,
	cache ports.ExecutionCache,
	validator ports.ParametersValidator,
	creds ports.CredentialSource,
	log ports.Logger,
) *BatchService {
	return &BatchService{
		collector: collector,
		repo:      repo,
		cache:     cache,
		validator: validator,
		creds:     creds,
		log:       log,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// Execute — одно выполнение узла:
//  1. валидация параметров (validate.ErrInvalidParameters);
//  2. учётные данные из src (или источника по умолчанию) → ConnectionConfig;
//  3. connect → subscribe → сбор → disconnect;
//  4. запись в историю и кэш.
//
// При ошибке сбора возвращается выполнение с заполненным Error и сама ошибка (*batch.Error).
func (s *BatchService) Execute(ctx context.Context, params domain.Parameters, src ports.CredentialSource) (*domain.Execution, error) {
	id := s.newID()
	ctx = ctxmeta.WithExecutionID(ctx, id)

	if err := s.validator.Validate(ctx, &params); err != nil {
		s.log.Warnf(ctx, "parameters rejected: %v", err)
		return nil, err
	}

	if src == nil {
		src = s.creds
	}
	cfg := s.connectionConfig(ctx, src)

	exec := &domain.Execution{
		ID:        id,
		Topic:     params.Topic,
		GroupID:   params.GroupID,
		BatchSize: params.BatchSize,
		StartedAt: s.now().UTC(),
	}

	b, err := s.collector.Collect(ctx, cfg, params.Request())
	exec.FinishedAt = s.now().UTC()

	if err != nil {
		exec.Error = err.Error()
		s.saveRecord(ctx, exec)
		return exec, err
	}

	exec.Reason = b.Reason
	exec.Items = make([]domain.Item, len(b.Messages))
	for i, m := range b.Messages {
		exec.Items[i] = domain.Item{Data: m}
	}

	s.saveRecord(ctx, exec)
	if setErr := s.cache.Set(ctx, exec); setErr != nil {
		s.log.Warnf(ctx, "cache.Set failed id=%s err=%v", id, setErr)
	}

	s.log.Infof(ctx, "execution finished id=%s topic=%s reason=%s items=%d", id, exec.Topic, exec.Reason, len(exec.Items))
	return exec, nil
}

// GetExecution — сначала кэш (с сообщениями), при промахе — история (без сообщений).
// Возвращает (nil, nil), если выполнения нет.
func (s *BatchService) GetExecution(ctx context.Context, id string) (*domain.Execution, error) {
	if exec, found := s.cache.Get(ctx, id); found {
		s.log.Debugf(ctx, "cache hit for execution=%s", id)
		return exec, nil
	}
	s.log.Debugf(ctx, "cache miss for execution=%s", id)

	if s.repo == nil {
		return nil, nil
	}

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetByID failed id=%s err=%v", id, err)
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	return &domain.Execution{
		ID:         rec.ID,
		Topic:      rec.Topic,
		GroupID:    rec.GroupID,
		BatchSize:  rec.BatchSize,
		Reason:     rec.Reason,
		StartedAt:  rec.StartedAt,
		FinishedAt: rec.FinishedAt,
		Error:      rec.Error,
	}, nil
}

// ListExecutions — проксирование в репозиторий (пагинация уже валидирована на верхнем уровне).
func (s *BatchService) ListExecutions(ctx context.Context, topic string, limit, offset int) ([]*domain.ExecutionRecord, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	return s.repo.ListByTopic(ctx, topic, limit, offset)
}

// connectionConfig — отсутствие учётных данных штатно, ошибка источника только логируется.
func (s *BatchService) connectionConfig(ctx context.Context, src ports.CredentialSource) domain.ConnectionConfig {
	return credentials.ResolveWith(ctx, src, func(err error) {
		if errors.Is(err, credentials.ErrNotConfigured) {
			s.log.Debugf(ctx, "no credentials configured, using defaults")
			return
		}
		s.log.Warnf(ctx, "credentials unavailable, using defaults: %v", err)
	})
}

// saveRecord — сбой истории не влияет на результат выполнения.
func (s *BatchService) saveRecord(ctx context.Context, exec *domain.Execution) {
	if s.repo == nil {
		return
	}
	rec := exec.Record()
	if err := s.repo.Save(ctx, &rec); err != nil {
		s.log.Warnf(ctx, "repo.Save failed id=%s err=%v", exec.ID, err)
	}
}
