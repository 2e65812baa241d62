package app_test

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/kbatch/config"
	"github.com/Gunvolt24/kbatch/internal/app"
	"github.com/Gunvolt24/kbatch/internal/credentials"
	"github.com/Gunvolt24/kbatch/internal/domain"
	"github.com/Gunvolt24/kbatch/pkg/validate"
)

// логгер-заглушка
type nopLogger struct{}

func (nopLogger) Debugf(context.Context, string, ...any) {}
func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

func TestAppRun_GracefulShutdown(t *testing.T) {
	// HTTP-сервер на случайном свободном порту
	srv := &http.Server{
		Addr:              "127.0.0.1:0",
		Handler:           http.NewServeMux(),
		ReadHeaderTimeout: time.Second,
	}
	a := app.NewApp(nopLogger{}, srv, time.Second)

	// Запуск и быстрая остановка
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	require.NoError(t, a.Run(ctx))
}

func TestAppRun_ListenError(t *testing.T) {
	// порт занят — ListenAndServe падает сразу
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := &http.Server{Addr: ln.Addr().String(), ReadHeaderTimeout: time.Second}
	a := app.NewApp(nopLogger{}, srv, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = a.Run(ctx)
	require.Error(t, err)
	assert.NoError(t, ctx.Err(), "Run должен вернуться до отмены контекста")
}

func loadDefaults(t *testing.T) config.Config {
	t.Helper()
	c, err := config.LoadWithPrefix("KBATCH_APP_TEST")
	require.NoError(t, err)
	return c
}

func TestDefaultParameters(t *testing.T) {
	c := loadDefaults(t)
	c.Kafka.Topic = "events"
	c.Kafka.GroupID = "g1"

	p := app.DefaultParameters(c.Kafka)
	require.NoError(t, validate.NewParametersValidator().Validate(context.Background(), &p))

	req := p.Request()
	assert.Equal(t, domain.CollectionRequest{
		Topic:          "events",
		GroupID:        "g1",
		BatchSize:      10,
		SessionTimeout: 30 * time.Second,
		ReadTimeout:    60 * time.Second,
		ParseJSON:      true,
	}, req)
}

func TestClientOptions(t *testing.T) {
	c := loadDefaults(t)

	o := app.ClientOptions(c.Kafka)
	assert.Equal(t, 10*time.Second, o.DialTimeout)
	assert.Equal(t, 10_000_000, o.MaxBytes)
	assert.Equal(t, 500*time.Millisecond, o.MaxWait)
	assert.Equal(t, 5, o.MaxFetchRetries)
	assert.Equal(t, 5*time.Second, o.CommitTimeout)
}

func TestCredentialSource_EnvFallback(t *testing.T) {
	t.Setenv("KBATCH_APP_CREDS_BROKERS", "b1:9092,b2:9092")

	src := app.CredentialSource(config.Credentials{
		File:      t.TempDir() + "/missing.yaml",
		EnvPrefix: "KBATCH_APP_CREDS",
	})
	cfg := credentials.Resolve(context.Background(), src)
	assert.Equal(t, []string{"b1:9092", "b2:9092"}, cfg.Brokers)
	assert.Nil(t, cfg.Auth)
}

func TestBuildCore_WithoutHistory(t *testing.T) {
	c := loadDefaults(t)

	core, cleanup, err := app.BuildCore(context.Background(), &c)
	require.NoError(t, err)
	defer cleanup()

	require.NotNil(t, core.Service)
	_, err = core.Service.ListExecutions(context.Background(), "", 10, 0)
	require.Error(t, err, "без DSN история выключена")
}
