// Package generator is the boundary to the external text-generation model:
// the Generator contract, the Gemini client behind it, the prompts sent
// through it, and the retry and circuit-breaker policy wrapped around it.
package generator

import "context"

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

// Generator produces text for a prompt.
type Generator interface {
	// Generate returns the model's text response. An empty response is an
	// error.
	Generate(ctx context.Context, prompt string) (string, error)
	// Model names the model behind the generator.
	Model() string
}
