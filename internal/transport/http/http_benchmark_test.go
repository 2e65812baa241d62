//go:build !integration

package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/kbatch/internal/domain"
	"github.com/Gunvolt24/kbatch/internal/ports"
)

// --- Бенчмарки ---

// GetExecution из кэша: LEAN vs FULL пайплайн.
func BenchmarkHTTP_GetExecution(b *testing.B) {
	exec := makeExecution("bench-1", 50)
	h := NewHandler(svcStub{exec: exec}, nopLogger{}, 2*time.Second)

	lean := makeLeanRouter(h)
	full := makeFullRouter(h)

	b.Run("lean/no-mw", func(b *testing.B) {
		benchServe(b, lean, http.MethodGet, "/v1/executions/"+exec.ID, "")
	})
	b.Run("full/prod-mw", func(b *testing.B) {
		benchServe(b, full, http.MethodGet, "/v1/executions/"+exec.ID, "")
	})
}

// Потолок без маршалинга: тот же результат, но заранее закодированный JSON.
func BenchmarkHTTP_GetExecution_PreMarshaledBytes(b *testing.B) {
	exec := makeExecution("bench-1", 50)
	raw, _ := json.Marshal(exec)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/v1/executions/:id", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", raw)
	})

	benchServe(b, r, http.MethodGet, "/v1/executions/"+exec.ID, "")
}

// POST /v1/executions: разбор тела и сериализация N элементов.
func BenchmarkHTTP_Execute(b *testing.B) {
	body := `{"parameters":{"groupId":"g","topic":"t","batchSize":10}}`

	for _, n := range []int{10, 100, 1000} {
		b.Run("N="+strconv.Itoa(n), func(b *testing.B) {
			h := NewHandler(svcStub{exec: makeExecution("bench", n)}, nopLogger{}, 0)
			benchServe(b, makeLeanRouter(h), http.MethodPost, "/v1/executions", body)
		})
	}
}

// --- nopLogger — логгер, который не делает ничего. ---

type nopLogger struct{}

func (nopLogger) Debugf(context.Context, string, ...any) {}
func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// --- Стабы ---

type svcStub struct{ exec *domain.Execution }

func (s svcStub) Execute(context.Context, domain.Parameters, ports.CredentialSource) (*domain.Execution, error) {
	return s.exec, nil
}
func (s svcStub) GetExecution(context.Context, string) (*domain.Execution, error) { return s.exec, nil }
func (s svcStub) ListExecutions(context.Context, string, int, int) ([]*domain.ExecutionRecord, error) {
	rec := s.exec.Record()
	return []*domain.ExecutionRecord{&rec}, nil
}

// --- функции-помощники ---

func makeExecution(id string, n int) *domain.Execution {
	items := make([]domain.Item, n)
	for i := range items {
		key := "k" + strconv.Itoa(i)
		items[i] = domain.Item{Data: domain.CollectedMessage{
			Topic:     "bench",
			Offset:    strconv.Itoa(i),
			Key:       &key,
			Value:     map[string]any{"id": i, "name": "item"},
			Timestamp: "1700000000000",
			Headers:   map[string]string{"seq": strconv.Itoa(i)},
		}}
	}
	return &domain.Execution{ID: id, Topic: "bench", Reason: domain.ReasonCount, Items: items}
}

func makeLeanRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New() // без Recovery/otel/logger
	r.POST("/v1/executions", h.execute)
	r.GET("/v1/executions/:id", h.getExecution)
	return r
}

func makeFullRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	return NewRouter(h, "")
}

func benchServe(b *testing.B, r *gin.Engine, method, path, body string) {
	b.Helper()
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			var rd io.Reader = http.NoBody
			if body != "" {
				rd = strings.NewReader(body)
			}
			req, _ := http.NewRequest(method, path, rd)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			_, _ = io.Copy(io.Discard, w.Body)
			if w.Code != http.StatusOK {
				b.Fatalf("status=%d", w.Code)
			}
		}
	})
}
