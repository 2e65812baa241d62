package httpx

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Page — параметры пагинации списка.
type Page struct {
	Limit  int
	Offset int
}

// ClampInt — ограничение значения v в диапазоне [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParsePage — limit/offset из query. Нечисловой limit даёт defaultLimit,
// limit прижимается к [1, maxLimit]; отрицательный или нечисловой offset — 0.
func ParsePage(c *gin.Context, defaultLimit, maxLimit int) Page {
	p := Page{Limit: ClampInt(defaultLimit, 1, maxLimit)}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		p.Limit = ClampInt(v, 1, maxLimit)
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		p.Offset = v
	}
	return p
}
