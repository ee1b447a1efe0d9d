package server

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/manukrishna804/logic-solver-ai/internal/logging"
)

const (
	// RequestIDHeader carries the correlation ID in both directions.
	RequestIDHeader = "X-Request-ID"
	// DegradedHeader is set on renderings of the minimal fallback diagram.
	DegradedHeader = "X-Diagram-Degraded"

	maxRequestIDLen = 128
)

// requestID adopts the caller's X-Request-ID or mints one, echoes it on the
// response and stores it on the request context for logging and history.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.New().String()
		}
		c.Header(RequestIDHeader, id)

		ctx := logging.WithRequestID(c.Request.Context(), id)
		ctx = logging.WithTransport(ctx, "http")
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func accessLog(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		level := slog.LevelInfo
		if c.Writer.Status() >= 500 {
			level = slog.LevelError
		}
		logging.LogWith(ctx, logger).Log(ctx, level, "http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// timeout bounds the request context by d for every route except the
// long-lived ones listed in skip.
func timeout(d time.Duration, skip ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 || slices.Contains(skip, c.FullPath()) {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
