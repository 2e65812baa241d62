package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gunvolt24/kbatch/pkg/ctxmeta"
)

const (
	HeaderRequestID = "X-Request-ID"
	// MaxRequestIDLen — верхняя граница длины клиентского X-Request-ID.
	MaxRequestIDLen = 128
)

// RequestIDMiddleware:
// - принимает X-Request-ID от клиента, если он не длиннее MaxRequestIDLen и без управляющих символов
// - иначе генерирует UUID
// - кладёт request_id в контекст и возвращает его в ответе
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)

		ctx := ctxmeta.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > MaxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
