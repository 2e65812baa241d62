// Пакет ctxmeta — нейтральный слой для работы с метаданными выполнения,
// которые прокидываются через context.Context (request_id, execution_id, trace_id).
// Идея: HTTP-слой, сервис и логгер зависят от небольшого общего пакета, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	// Ключи контекста (неэкспортируемый тип — чтобы избежать коллизий).
	KeyRequestID   ctxKey = "request_id"
	KeyExecutionID ctxKey = "execution_id"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return valueFrom(ctx, KeyRequestID)
}

// WithExecutionID кладёт execution_id в контекст (если пусто — ничего не делает).
func WithExecutionID(ctx context.Context, executionID string) context.Context {
	return withValue(ctx, KeyExecutionID, executionID)
}

// ExecutionIDFromContext достаёт execution_id из контекста.
func ExecutionIDFromContext(ctx context.Context) (string, bool) {
	return valueFrom(ctx, KeyExecutionID)
}

func withValue(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func valueFrom(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
