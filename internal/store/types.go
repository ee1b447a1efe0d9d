package store

import (
	"encoding/json"
	"time"

	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

// Generation is one recorded solver result: the input text, what was
// produced for it and where the output came from.
type Generation struct {
	ID        string          `json:"id"`
	Kind      schema.Kind     `json:"kind"`
	Input     string          `json:"input"`
	Output    string          `json:"output"`
	Source    schema.Source   `json:"source"`
	Language  string          `json:"language,omitempty"`
	Model     string          `json:"model,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
	Degraded  bool            `json:"degraded,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// GenerationFilter specifies criteria for listing generations.
type GenerationFilter struct {
	Kind   schema.Kind   `json:"kind,omitempty"`
	Source schema.Source `json:"source,omitempty"`
	Since  *time.Time    `json:"since,omitempty"`
	Limit  int           `json:"limit,omitempty"`
	Offset int           `json:"offset,omitempty"`
}
