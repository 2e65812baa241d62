package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/kbatch/internal/batch"
	"github.com/Gunvolt24/kbatch/internal/credentials"
	"github.com/Gunvolt24/kbatch/internal/domain"
	"github.com/Gunvolt24/kbatch/internal/ports"
	"github.com/Gunvolt24/kbatch/internal/usecase"
	"github.com/Gunvolt24/kbatch/pkg/httpx"
	"github.com/Gunvolt24/kbatch/pkg/validate"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	// maxBodyBytes — ограничение тела POST /v1/executions.
	maxBodyBytes = 1 << 20
)

type Handler struct {
	service    ports.ExecutionService
	log        ports.Logger
	reqTimeout time.Duration // таймаут чтения истории; 0 — без таймаута
}

func NewHandler(service ports.ExecutionService, log ports.Logger, reqTimeout time.Duration) *Handler {
	return &Handler{service: service, log: log, reqTimeout: reqTimeout}
}

// NewRouter — serviceName != "" включает otelgin.
func NewRouter(h *Handler, serviceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	if serviceName != "" {
		r.Use(otelgin.Middleware(serviceName))
	}
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	v1.POST("/executions", h.execute)
	v1.GET("/executions", h.listExecutions)
	v1.GET("/executions/:id", h.getExecution)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	return r
}

type executeRequest struct {
	Parameters  domain.Parameters `json:"parameters"`
	Credentials map[string]any    `json:"credentials,omitempty"`
}

type executeResponse struct {
	ID     string                  `json:"id"`
	Reason domain.CompletionReason `json:"reason"`
	Count  int                     `json:"count"`
	Items  []domain.Item           `json:"items"`
}

func (h *Handler) execute(c *gin.Context) {
	ctx := c.Request.Context()

	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read body"})
		return
	}

	var req executeRequest
	if err := validate.DecodeStrict(raw, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// без credentials в теле используется источник сервера
	var src ports.CredentialSource
	if len(req.Credentials) > 0 {
		src = credentials.Static(req.Credentials)
	}

	exec, err := h.service.Execute(ctx, req.Parameters, src)
	if err != nil {
		h.writeExecuteError(c, exec, err)
		return
	}

	items := exec.Items
	if items == nil {
		items = []domain.Item{}
	}
	c.JSON(http.StatusOK, executeResponse{
		ID:     exec.ID,
		Reason: exec.Reason,
		Count:  len(items),
		Items:  items,
	})
}

func (h *Handler) writeExecuteError(c *gin.Context, exec *domain.Execution, err error) {
	var kafkaErr *batch.Error
	switch {
	case errors.Is(err, validate.ErrInvalidParameters):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &kafkaErr):
		body := gin.H{"error": kafkaErr.Error()}
		if exec != nil {
			body["id"] = exec.ID
		}
		c.JSON(http.StatusBadGateway, body)
	default:
		h.log.Errorf(c.Request.Context(), "Execute failed err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *Handler) getExecution(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty id"})
		return
	}

	ctx, cancel := h.withTimeout(c.Request.Context())
	defer cancel()

	exec, err := h.service.GetExecution(ctx, id)
	if err != nil {
		h.log.Errorf(ctx, "GetExecution failed id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if exec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "execution not found"})
		return
	}
	c.JSON(http.StatusOK, exec)
}

func (h *Handler) listExecutions(c *gin.Context) {
	page := httpx.ParsePage(c, defaultListLimit, maxListLimit)
	topic := c.Query("topic")

	ctx, cancel := h.withTimeout(c.Request.Context())
	defer cancel()

	records, err := h.service.ListExecutions(ctx, topic, page.Limit, page.Offset)
	if errors.Is(err, usecase.ErrHistoryDisabled) {
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.log.Errorf(ctx, "ListExecutions failed topic=%s err=%v", topic, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if records == nil {
		records = []*domain.ExecutionRecord{}
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.reqTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.reqTimeout)
}
