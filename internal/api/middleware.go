package api

import (
	"alcyxob/workout-api/internal/logger"
	"alcyxob/workout-api/internal/observability"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Constants for context keys and headers
const (
	ContextRequestIDKey = "requestID"
	ContextLoggerKey    = "logger"
	HeaderRequestID     = "X-Request-ID"
)

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// RequestIDMiddleware reuses the caller's X-Request-ID or generates one, and
// echoes it back on the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}

// RequestLoggerMiddleware stores a logger tagged with the request id in the
// context and logs one line per request through it. Requests that ended with
// errors attached via c.Error are logged at error level.
// Must run after RequestIDMiddleware.
func RequestLoggerMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := log.With("request_id", c.GetString(ContextRequestIDKey))
		c.Set(ContextLoggerKey, reqLog)
		c.Next()

		keyvals := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			reqLog.Error("request failed", append(keyvals, "error", c.Errors.String())...)
			return
		}
		reqLog.Info("request", keyvals...)
	}
}

// RequestLogger returns the request-scoped logger, or a no-op logger when
// RequestLoggerMiddleware is not installed.
func RequestLogger(c *gin.Context) logger.Logger {
	if v, ok := c.Get(ContextLoggerKey); ok {
		if log, ok := v.(logger.Logger); ok {
			return log
		}
	}
	return logger.Nop()
}

// MetricsMiddleware records request counts and latency by route template.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		observability.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
