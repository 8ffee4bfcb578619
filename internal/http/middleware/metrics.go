package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jeremiahbrem/biztime/internal/observability"
)

// Metrics records one observation per request, labelled by resource and op
// rather than raw path so item codes and ids never become label values.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		m.ApiInflightInc()
		defer m.ApiInflightDec()

		c.Next()

		rt := Route(c)
		m.ObserveAPI(rt.Resource, rt.Op, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
