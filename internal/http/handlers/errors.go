package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeremiahbrem/biztime/internal/platform/apierr"
	"github.com/jeremiahbrem/biztime/internal/platform/ctxutil"
	"github.com/jeremiahbrem/biztime/internal/platform/logger"
)

// logFailure logs 5xx failures with request ids. Client errors are left to
// the request logger.
func logFailure(log *logger.Logger, c *gin.Context, err error) {
	if log == nil || apierr.From(err).Status < http.StatusInternalServerError {
		return
	}
	fields := append([]interface{}{"error", err, "path", c.FullPath()}, ctxutil.LogFields(c.Request.Context())...)
	log.Error("request failed", fields...)
}
