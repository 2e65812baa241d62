package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Gunvolt24/kbatch/internal/ports"
	"github.com/Gunvolt24/kbatch/pkg/ctxmeta"
)

// Проверка, что ZapLogger удовлетворяет интерфейсу Logger.
var _ ports.Logger = (*ZapLogger)(nil)

type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

// Option — дополнительная настройка логгера.
type Option func(*options)

type options struct {
	filePath   string
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
}

// WithFile — дублирует лог в файл (JSON) с ротацией через lumberjack.
func WithFile(path string, maxSizeMB, maxBackups, maxAgeDays int) Option {
	return func(o *options) {
		o.filePath = path
		o.maxSizeMB = maxSizeMB
		o.maxBackups = maxBackups
		o.maxAgeDays = maxAgeDays
	}
}

// NewZapLogger — dev/prod логгер. Вывод в stderr: stdout остаётся за результатом CLI.
func NewZapLogger(isProd bool, opts ...Option) (*ZapLogger, func() error, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg := zap.NewDevelopmentConfig()
	if isProd {
		cfg = zap.NewProductionConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}

	if o.filePath != "" {
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   o.filePath,
				MaxSize:    o.maxSizeMB, // MB
				MaxBackups: o.maxBackups,
				MaxAge:     o.maxAgeDays, // days
			}),
			cfg.Level,
		)
		logger = logger.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return zapcore.NewTee(c, fileCore)
		}))
	}

	loggerWrap := newZapLogger(logger, isProd)
	cleanup := func() error { return loggerWrap.base.Sync() }
	return loggerWrap, cleanup, nil
}

// NewFromZap — обёртка над готовым *zap.Logger (тесты, встраивание).
func NewFromZap(l *zap.Logger) *ZapLogger {
	return newZapLogger(l, false)
}

func newZapLogger(l *zap.Logger, isProd bool) *ZapLogger {
	// пропускаем кадр обёртки, чтобы caller указывал на место вызова
	l = l.WithOptions(zap.AddCallerSkip(1))
	return &ZapLogger{
		base:   l,
		sugar:  l.Sugar(),
		isProd: isProd,
	}
}

func (z *ZapLogger) Debugf(ctx context.Context, format string, args ...any) {
	z.withContext(ctx).Debugf(format, args...)
}
func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.withContext(ctx).Infof(format, args...)
}
func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.withContext(ctx).Warnf(format, args...)
}
func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.withContext(ctx).Errorf(format, args...)
}

// IsProd — логгер собран production-конфигурацией (JSON, уровень info).
func (z *ZapLogger) IsProd() bool { return z.isProd }

// withContext — добавляет execution_id/request_id/trace_id из контекста, если они есть.
func (z *ZapLogger) withContext(ctx context.Context) *zap.SugaredLogger {
	var fields []any
	if id, ok := ctxmeta.ExecutionIDFromContext(ctx); ok {
		fields = append(fields, "execution_id", id)
	}
	if id, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		fields = append(fields, "request_id", id)
	}
	if id, ok := ctxmeta.TraceIDFromContext(ctx); ok {
		fields = append(fields, "trace_id", id)
	}
	if len(fields) == 0 {
		return z.sugar
	}
	return z.sugar.With(fields...)
}
