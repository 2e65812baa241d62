package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/Gunvolt24/kbatch/internal/batch"
	"github.com/Gunvolt24/kbatch/internal/credentials"
	"github.com/Gunvolt24/kbatch/internal/domain"
	"github.com/Gunvolt24/kbatch/internal/ports"
	"github.com/Gunvolt24/kbatch/internal/ports/mocks"
	"github.com/Gunvolt24/kbatch/internal/usecase"
	"github.com/Gunvolt24/kbatch/pkg/ctxmeta"
	"github.com/Gunvolt24/kbatch/pkg/validate"
)

type noopLogger struct{}

func (noopLogger) Debugf(context.Context, string, ...any) {}
func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

// recLogger — запоминает сообщения уровней debug и warn.
type recLogger struct {
	noopLogger
	debug []string
	warn  []string
}

func (l *recLogger) Debugf(_ context.Context, format string, args ...any) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}

func (l *recLogger) Warnf(_ context.Context, format string, args ...any) {
	l.warn = append(l.warn, fmt.Sprintf(format, args...))
}

type deps struct {
	collector *mocks.MockBatchCollector
	repo      *mocks.MockExecutionRepository
	cache     *mocks.MockExecutionCache
	creds     *mocks.MockCredentialSource
}

func newDeps(t *testing.T) (*deps, *usecase.BatchService) {
	ctrl := gomock.NewController(t)
	d := &deps{
		collector: mocks.NewMockBatchCollector(ctrl),
		repo:      mocks.NewMockExecutionRepository(ctrl),
		cache:     mocks.NewMockExecutionCache(ctrl),
		creds:     mocks.NewMockCredentialSource(ctrl),
	}
	svc := usecase.NewBatchService(d.collector, d.repo, d.cache, validate.NewParametersValidator(), d.creds, noopLogger{})
	return d, svc
}

func params() domain.Parameters {
	return domain.Parameters{GroupID: "g1", Topic: "events", BatchSize: 2}
}

func TestExecute_OK_SavesAndCaches(t *testing.T) {
	d, svc := newDeps(t)

	key := "k"
	b := &domain.Batch{
		Reason: domain.ReasonCount,
		Messages: []domain.CollectedMessage{
			{Topic: "events", Offset: "0", Key: &key, Value: "a"},
			{Topic: "events", Offset: "1", Value: "b"},
		},
	}

	d.creds.EXPECT().Credentials(gomock.Any()).Return(map[string]any{"brokers": "b1:9092, b2:9092"}, nil)
	d.collector.EXPECT().Collect(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, cfg domain.ConnectionConfig, req domain.CollectionRequest) (*domain.Batch, error) {
			if id, ok := ctxmeta.ExecutionIDFromContext(ctx); !ok || id == "" {
				t.Fatalf("execution id missing in ctx")
			}
			if len(cfg.Brokers) != 2 || cfg.Brokers[1] != "b2:9092" || cfg.ClientID != credentials.DefaultClientID {
				t.Fatalf("unexpected cfg: %+v", cfg)
			}
			if req.ReadTimeout != time.Duration(domain.DefaultReadTimeoutMs)*time.Millisecond || !req.ParseJSON {
				t.Fatalf("defaults not applied: %+v", req)
			}
			return b, nil
		})
	d.repo.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *domain.ExecutionRecord) error {
			if rec.MessageCount != 2 || rec.Reason != domain.ReasonCount || rec.Error != "" {
				t.Fatalf("unexpected record: %+v", rec)
			}
			return nil
		})
	d.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)

	exec, err := svc.Execute(context.Background(), params(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uuid.Parse(exec.ID); err != nil {
		t.Fatalf("id is not a uuid: %q", exec.ID)
	}
	if len(exec.Items) != 2 || exec.Items[0].Data.Value != "a" || exec.Items[1].Data.Offset != "1" {
		t.Fatalf("unexpected items: %+v", exec.Items)
	}
	if exec.FinishedAt.Before(exec.StartedAt) {
		t.Fatalf("finished before started")
	}
}

// Явный источник учётных данных важнее источника по умолчанию
func TestExecute_ExplicitCredentials(t *testing.T) {
	d, svc := newDeps(t)

	src := credentials.Static{"authentication": "plain", "username": "u", "password": "p"}
	d.collector.EXPECT().Collect(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cfg domain.ConnectionConfig, _ domain.CollectionRequest) (*domain.Batch, error) {
			if cfg.Auth == nil || cfg.Auth.Mechanism != domain.MechanismPlain || cfg.Auth.Username != "u" {
				t.Fatalf("unexpected auth: %+v", cfg.Auth)
			}
			if cfg.TLS != nil {
				t.Fatalf("tls must be absent")
			}
			return &domain.Batch{Reason: domain.ReasonTimeout}, nil
		})
	d.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	d.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)

	exec, err := svc.Execute(context.Background(), params(), src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exec.Reason != domain.ReasonTimeout || len(exec.Items) != 0 {
		t.Fatalf("unexpected exec: %+v", exec)
	}
}

// Ошибка источника учётных данных — подключение с настройками по умолчанию
func TestExecute_CredentialsErrorFallsBack(t *testing.T) {
	d, svc := newDeps(t)

	d.creds.EXPECT().Credentials(gomock.Any()).Return(nil, errors.New("vault down"))
	d.collector.EXPECT().Collect(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cfg domain.ConnectionConfig, _ domain.CollectionRequest) (*domain.Batch, error) {
			if len(cfg.Brokers) != 1 || cfg.Brokers[0] != credentials.DefaultBroker || cfg.Auth != nil {
				t.Fatalf("unexpected cfg: %+v", cfg)
			}
			return &domain.Batch{Reason: domain.ReasonTimeout}, nil
		})
	d.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	d.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)

	if _, err := svc.Execute(context.Background(), params(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// Ошибка источника пишется в warn, отсутствие учётных данных в debug
func TestExecute_CredentialsErrorLogging(t *testing.T) {
	tests := []struct {
		name      string
		src       func(d *deps) ports.CredentialSource
		wantWarn  bool
		wantDebug bool
	}{
		{
			name: "source error",
			src: func(d *deps) ports.CredentialSource {
				d.creds.EXPECT().Credentials(gomock.Any()).Return(nil, errors.New("vault down"))
				return d.creds
			},
			wantWarn: true,
		},
		{
			name: "not configured",
			src: func(d *deps) ports.CredentialSource {
				d.creds.EXPECT().Credentials(gomock.Any()).Return(nil, credentials.ErrNotConfigured)
				return d.creds
			},
			wantDebug: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			d := &deps{
				collector: mocks.NewMockBatchCollector(ctrl),
				cache:     mocks.NewMockExecutionCache(ctrl),
				creds:     mocks.NewMockCredentialSource(ctrl),
			}
			log := &recLogger{}
			svc := usecase.NewBatchService(d.collector, nil, d.cache, validate.NewParametersValidator(), tt.src(d), log)

			d.collector.EXPECT().Collect(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(&domain.Batch{Reason: domain.ReasonTimeout}, nil)
			d.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)

			if _, err := svc.Execute(context.Background(), params(), nil); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := containsMsg(log.warn, "credentials unavailable"); got != tt.wantWarn {
				t.Fatalf("warn logged=%v, want %v (%v)", got, tt.wantWarn, log.warn)
			}
			if got := containsMsg(log.debug, "no credentials configured"); got != tt.wantDebug {
				t.Fatalf("debug logged=%v, want %v (%v)", got, tt.wantDebug, log.debug)
			}
		})
	}
}

func containsMsg(msgs []string, sub string) bool {
	for _, m := range msgs {
		if strings.Contains(m, sub) {
			return true
		}
	}
	return false
}

func TestExecute_InvalidParameters(t *testing.T) {
	_, svc := newDeps(t)
	// ни collector, ни repo не должны вызываться

	p := params()
	p.BatchSize = 0
	_, err := svc.Execute(context.Background(), p, nil)
	if !errors.Is(err, validate.ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters, got %v", err)
	}
}

// Ошибка сбора: запись в истории с текстом ошибки, без кэша
func TestExecute_CollectError(t *testing.T) {
	d, svc := newDeps(t)

	collectErr := &batch.Error{Stage: batch.StageSubscribe, Err: errors.New("unknown topic")}
	d.creds.EXPECT().Credentials(gomock.Any()).Return(nil, credentials.ErrNotConfigured)
	d.collector.EXPECT().Collect(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, collectErr)
	d.repo.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *domain.ExecutionRecord) error {
			if rec.Error != "kafka error: unknown topic" {
				t.Fatalf("unexpected record error: %q", rec.Error)
			}
			return nil
		})

	exec, err := svc.Execute(context.Background(), params(), nil)
	var be *batch.Error
	if !errors.As(err, &be) || be.Stage != batch.StageSubscribe {
		t.Fatalf("expected *batch.Error, got %v", err)
	}
	if exec == nil || exec.Error != "kafka error: unknown topic" {
		t.Fatalf("unexpected exec: %+v", exec)
	}
}

// Сбой истории не ломает выполнение
func TestExecute_RepoErrorIgnored(t *testing.T) {
	d, svc := newDeps(t)

	d.creds.EXPECT().Credentials(gomock.Any()).Return(nil, credentials.ErrNotConfigured)
	d.collector.EXPECT().Collect(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.Batch{Reason: domain.ReasonTimeout}, nil)
	d.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
	d.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)

	if _, err := svc.Execute(context.Background(), params(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// Без репозитория история отключена
func TestExecute_NoHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	collector := mocks.NewMockBatchCollector(ctrl)
	cache := mocks.NewMockExecutionCache(ctrl)

	svc := usecase.NewBatchService(collector, nil, cache, validate.NewParametersValidator(), nil, noopLogger{})

	collector.EXPECT().Collect(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.Batch{Reason: domain.ReasonCount}, nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)

	if _, err := svc.Execute(context.Background(), params(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ListExecutions(context.Background(), "events", 10, 0); !errors.Is(err, usecase.ErrHistoryDisabled) {
		t.Fatalf("expected ErrHistoryDisabled, got %v", err)
	}

	cache.EXPECT().Get(gomock.Any(), "missing").Return(nil, false)
	got, err := svc.GetExecution(context.Background(), "missing")
	if err != nil || got != nil {
		t.Fatalf("expected (nil, nil), got %+v, %v", got, err)
	}
}

func TestGetExecution_CacheHit(t *testing.T) {
	d, svc := newDeps(t)

	exec := &domain.Execution{ID: "e1", Items: []domain.Item{{}}}
	d.cache.EXPECT().Get(gomock.Any(), "e1").Return(exec, true)

	got, err := svc.GetExecution(context.Background(), "e1")
	if err != nil || got != exec {
		t.Fatalf("expected hit, got err=%v exec=%+v", err, got)
	}
}

func TestGetExecution_CacheMiss_FromHistory(t *testing.T) {
	d, svc := newDeps(t)

	rec := &domain.ExecutionRecord{ID: "e1", Topic: "events", Reason: domain.ReasonCount, MessageCount: 3}
	gomock.InOrder(
		d.cache.EXPECT().Get(gomock.Any(), "e1").Return(nil, false),
		d.repo.EXPECT().GetByID(gomock.Any(), "e1").Return(rec, nil),
	)

	got, err := svc.GetExecution(context.Background(), "e1")
	if err != nil || got == nil || got.ID != "e1" || got.Reason != domain.ReasonCount {
		t.Fatalf("unexpected result: %+v, %v", got, err)
	}
	if got.Items != nil {
		t.Fatalf("history has no items, got %d", len(got.Items))
	}
}

func TestGetExecution_NotFound(t *testing.T) {
	d, svc := newDeps(t)

	d.cache.EXPECT().Get(gomock.Any(), "nope").Return(nil, false)
	d.repo.EXPECT().GetByID(gomock.Any(), "nope").Return(nil, nil)

	got, err := svc.GetExecution(context.Background(), "nope")
	if err != nil || got != nil {
		t.Fatalf("expected (nil, nil), got %+v, %v", got, err)
	}
}

func TestGetExecution_RepoError(t *testing.T) {
	d, svc := newDeps(t)

	d.cache.EXPECT().Get(gomock.Any(), "e1").Return(nil, false)
	d.repo.EXPECT().GetByID(gomock.Any(), "e1").Return(nil, errors.New("db down"))

	if _, err := svc.GetExecution(context.Background(), "e1"); err == nil {
		t.Fatal("expected error")
	}
}

func TestListExecutions_Delegates(t *testing.T) {
	d, svc := newDeps(t)

	recs := []*domain.ExecutionRecord{{ID: "e2"}, {ID: "e1"}}
	d.repo.EXPECT().ListByTopic(gomock.Any(), "events", 20, 40).Return(recs, nil)

	got, err := svc.ListExecutions(context.Background(), "events", 20, 40)
	if err != nil || len(got) != 2 {
		t.Fatalf("unexpected result: %+v, %v", got, err)
	}
}
