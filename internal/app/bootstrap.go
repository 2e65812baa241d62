package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/kbatch/config"
	"github.com/Gunvolt24/kbatch/internal/batch"
	cachemem "github.com/Gunvolt24/kbatch/internal/cache/memory"
	"github.com/Gunvolt24/kbatch/internal/credentials"
	"github.com/Gunvolt24/kbatch/internal/domain"
	"github.com/Gunvolt24/kbatch/internal/kafka"
	"github.com/Gunvolt24/kbatch/internal/ports"
	"github.com/Gunvolt24/kbatch/internal/repo/postgres"
	rest "github.com/Gunvolt24/kbatch/internal/transport/http"
	"github.com/Gunvolt24/kbatch/internal/usecase"
	"github.com/Gunvolt24/kbatch/pkg/logger"
	"github.com/Gunvolt24/kbatch/pkg/metrics"
	"github.com/Gunvolt24/kbatch/pkg/telemetry"
	"github.com/Gunvolt24/kbatch/pkg/validate"
)

// App — собранное приложение и его внешний интерфейс (HTTP).
type App struct {
	Logger          ports.Logger  // логгер
	HTTPServer      *http.Server  // HTTP-сервер
	gracefulTimeout time.Duration // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// Core — зависимости, общие для HTTP-сервера и одноразового CLI.
type Core struct {
	Logger  ports.Logger
	Service *usecase.BatchService
}

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// ClientOptions — настройки kafka-клиента из конфигурации.
func ClientOptions(k config.Kafka) kafka.ClientOptions {
	return kafka.ClientOptions{
		DialTimeout:     k.DialTimeout,
		MinBytes:        k.MinBytes,
		MaxBytes:        k.MaxBytes,
		MaxWait:         k.MaxWait,
		RetryInitial:    k.RetryInitial,
		RetryMax:        k.RetryMax,
		MaxFetchRetries: k.MaxFetchRetries,
		CommitTimeout:   k.CommitTimeout,
	}
}

// DefaultParameters — параметры выполнения из конфигурации (таймауты в мс, как у хоста).
func DefaultParameters(k config.Kafka) domain.Parameters {
	readTimeout := int(k.ReadTimeout / time.Millisecond)
	parseJSON := k.ParseJSON
	return domain.Parameters{
		GroupID:        k.GroupID,
		Topic:          k.Topic,
		BatchSize:      k.BatchSize,
		FromBeginning:  k.FromBeginning,
		SessionTimeout: int(k.SessionTimeout / time.Millisecond),
		Options: domain.Options{
			ReadTimeout: &readTimeout,
			ParseJSON:   &parseJSON,
		},
	}
}

// CredentialSource — файл (если задан), затем переменные окружения.
func CredentialSource(c config.Credentials) ports.CredentialSource {
	return credentials.Chain{
		credentials.FileSource{Path: c.File},
		credentials.EnvSource{Prefix: c.EnvPrefix},
	}
}

// BuildCore — логгер, метрики, трейсинг, история, кэш и сервис выполнений.
func BuildCore(ctx context.Context, cfg *config.Config) (*Core, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	var logOpts []logger.Option
	if cfg.Logger.File != "" {
		logOpts = append(logOpts, logger.WithFile(cfg.Logger.File, cfg.Logger.MaxSizeMB, cfg.Logger.MaxBackups, cfg.Logger.MaxAgeDays))
	}
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd, logOpts...)
	if err != nil {
		return nil, func() {}, err
	}
	logg.Infof(ctx, "logger initialized mode=%s file=%q", loggerMode(logg.IsProd()), cfg.Logger.File)

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := telemetry.Shutdown(telemetry.NoopShutdown)
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, telemetry.Settings{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
			Insecure:    cfg.Tracing.Insecure,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// История выполнений (Postgres) — только при заданном DSN.
	var (
		repo      ports.ExecutionRepository
		closePool = func() {}
	)
	if cfg.Postgres.DSN != "" {
		pool, pErr := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if pErr == nil {
			pErr = postgres.Migrate(ctx, pool)
			if pErr != nil {
				pool.Close()
			}
		}
		if pErr != nil {
			_ = shutdownTrace(context.Background())
			if cErr := cleanupLogger(); cErr != nil {
				logg.Warnf(ctx, "cleanup logger: %v", cErr)
			}
			return nil, func() {}, pErr
		}
		repo = postgres.NewExecutionRepository(pool)
		closePool = pool.Close
	} else {
		logg.Infof(ctx, "postgres dsn is empty, execution history disabled")
	}

	// Сборка зависимостей доменного слоя.
	connector := kafka.NewConnector(ClientOptions(cfg.Kafka), logg)
	collector := batch.NewCollector(connector, logg,
		batch.WithStopTimeout(cfg.Kafka.StopTimeout),
		batch.WithDisconnectTimeout(cfg.Kafka.DisconnectTimeout),
	)
	service := usecase.NewBatchService(
		collector,
		repo,
		cachemem.NewExecutionCache(cfg.Cache.Capacity, cfg.Cache.TTL),
		validate.NewParametersValidator(),
		CredentialSource(cfg.Credentials),
		logg,
	)

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		closePool()
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return &Core{Logger: logg, Service: service}, cleanup, nil
}

// Bootstrap — собирает зависимости и возвращает HTTP-приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	core, cleanup, err := BuildCore(ctx, cfg)
	if err != nil {
		return nil, cleanup, err
	}

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, core.Logger)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(core.Service, core.Logger, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	return NewApp(core.Logger, httpSrv, cfg.HTTP.GracefulTimeout), cleanup, nil
}

func NewApp(log ports.Logger, srv *http.Server, gracefulTimeout time.Duration) *App {
	return &App{Logger: log, HTTPServer: srv, gracefulTimeout: gracefulTimeout}
}

// Run — запускает HTTP-сервер; ждёт отмены контекста или ошибки сервера и останавливает его.
// Ошибка запуска сервера возвращается вызывающему.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или ошибки сервера.
	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case runErr = <-errCh:
		a.Logger.Errorf(ctx, "http server failed: %v", runErr)
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера: POST дожидаются завершения сбора.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	a.Logger.Infof(ctx, "service stopped")
	return runErr
}

func loggerMode(isProd bool) string {
	if isProd {
		return "production"
	}
	return "development"
}
