package server

import (
	"io"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/manukrishna804/logic-solver-ai/internal/streaming"
	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

var (
	eventKinds = []string{string(schema.KindAlgorithm), string(schema.KindFlowchart), string(schema.KindCode)}
	eventTypes = []string{streaming.EventGenerated, streaming.EventPruned}
)

// handleEvents streams solver events to the client via Server-Sent Events.
// Optional repeated ?kind= and ?type= parameters narrow the stream.
func (s *Server) handleEvents(c *gin.Context) {
	if s.deps.Hub == nil {
		respondError(c, schema.NewError(schema.ErrCodeNotFound, "event stream is disabled"))
		return
	}

	var filter streaming.EventFilter
	for _, k := range c.QueryArray("kind") {
		if !slices.Contains(eventKinds, k) {
			respondError(c, schema.NewErrorf(schema.ErrCodeInvalidRequest, "unknown kind %q", k).
				WithDetails(map[string]any{"kinds": eventKinds}))
			return
		}
		filter.Kinds = append(filter.Kinds, schema.Kind(k))
	}
	for _, t := range c.QueryArray("type") {
		if !slices.Contains(eventTypes, t) {
			respondError(c, schema.NewErrorf(schema.ErrCodeInvalidRequest, "unknown event type %q", t).
				WithDetails(map[string]any{"types": eventTypes}))
			return
		}
		filter.Types = append(filter.Types, t)
	}

	ctx := c.Request.Context()
	ch, cancel, err := s.deps.Hub.Subscribe(ctx, filter)
	if err != nil {
		// Only a finished request context fails Subscribe; the client is gone.
		s.deps.Logger.WarnContext(ctx, "SSE subscribe failed", "error", err)
		return
	}
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	c.Stream(func(io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case event, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(event.Type, event)
			return true
		}
	})
}
