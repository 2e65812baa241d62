package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName — имя инструментирования для спанов сервиса.
const InstrumentationName = "github.com/Gunvolt24/kbatch"

// Shutdown — корректное завершение провайдера трейсинга.
type Shutdown func(context.Context) error

// NoopShutdown — для выключенного трейсинга.
func NoopShutdown(context.Context) error { return nil }

// Settings — параметры экспорта.
type Settings struct {
	ServiceName string
	Endpoint    string
	SampleRatio float64
	Insecure    bool
}

// SetupTracing настраивает OTLP/HTTP экспорт, семплинг и глобальные пропагаторы.
func SetupTracing(ctx context.Context, s Settings) (Shutdown, error) {
	// Дефолты: endpoint и границы семплинга [0..1].
	if s.Endpoint == "" {
		s.Endpoint = "localhost:4318"
	}
	s.SampleRatio = clampRatio(s.SampleRatio)

	exporterOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(s.Endpoint)}
	if s.Insecure {
		exporterOpts = append(exporterOpts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, exporterOpts...)
	if err != nil {
		return nil, err
	}

	// Провайдер трейсинга: батч-экспорт, семплинг с уважением родителя и ресурсы (имя сервиса).
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(s.SampleRatio))),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(s.ServiceName),
			attribute.String("telemetry.sdk", "opentelemetry"),
		)),
	)

	// Глобальный провайдер и пропагатор (TraceContext + Baggage).
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{},
		),
	)

	return traceProvider.Shutdown, nil
}

// Tracer — трейсер сервиса из глобального провайдера (no-op, пока трейсинг не настроен).
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

func clampRatio(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
