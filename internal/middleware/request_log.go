package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-summary/internal/response"
)

// RequestLogger logs one line per request through zerolog, in place of
// gin's default text logger.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "http").Logger()

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		evt := log.Info()
		switch {
		case status >= 500:
			evt = log.Error()
		case status >= 400:
			evt = log.Warn()
		}
		if claims := GetClaims(c); claims != nil {
			evt = evt.Int("user_id", claims.UserID)
		}
		if len(c.Errors) > 0 {
			evt = evt.Str("errors", c.Errors.String())
		}

		evt.
			Str("request_id", response.RequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("Request handled")
	}
}

// Recovery turns a handler panic into a 500 INTERNAL_ERROR envelope and
// logs the recovered value.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "http").Logger()

	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().
			Str("request_id", response.RequestID(c)).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Msg("Recovered from panic")
		response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
	})
}
