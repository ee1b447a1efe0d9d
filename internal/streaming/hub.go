// Package streaming fans out solver events to live subscribers.
package streaming

import (
	"context"

	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

// Event types.
const (
	// EventGenerated follows every completed algorithm, flowchart or code
	// generation.
	EventGenerated = "generation.completed"
	// EventPruned follows a retention run that removed records.
	EventPruned = "history.pruned"
)

// Event is a real-time notification about solver activity.
type Event struct {
	Type         string        `json:"type"`
	Kind         schema.Kind   `json:"kind,omitempty"`
	Source       schema.Source `json:"source,omitempty"`
	GenerationID string        `json:"generation_id,omitempty"`
	RequestID    string        `json:"request_id,omitempty"`
	Degraded     bool          `json:"degraded,omitempty"`
	Payload      any           `json:"payload,omitempty"`
}

// EventFilter specifies which events a subscriber wants to receive. Empty
// fields match everything.
type EventFilter struct {
	Types []string      `json:"types,omitempty"`
	Kinds []schema.Kind `json:"kinds,omitempty"`
}

// Publisher accepts events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Hub provides pub/sub for solver events.
type Hub interface {
	Publisher
	Subscribe(ctx context.Context, filter EventFilter) (<-chan Event, func(), error)
}
