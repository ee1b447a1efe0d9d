package generator

import (
	"context"
	"errors"
	"strings"

	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
	"google.golang.org/genai"
)

// Gemini generates text with Google's Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini generator. A missing API key is reported as
// MODEL_UNAVAILABLE so callers can keep serving fallback results.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, schema.NewError(schema.ErrCodeModelUnavailable,
			"GOOGLE_API_KEY not set; generation is disabled")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, schema.NewError(schema.ErrCodeModelUnavailable,
			"failed to create GenAI client").WithCause(err)
	}

	return &Gemini{client: client, model: model}, nil
}

// Model returns the configured model name.
func (g *Gemini) Model() string { return g.model }

// Generate sends prompt as a single user turn and returns the response text.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", schema.NewErrorf(schema.ErrCodeTimeout,
				"model %s did not answer in time", g.model).WithCause(err)
		}
		return "", schema.NewErrorf(schema.ErrCodeGenerationFailed,
			"model %s request failed", g.model).WithCause(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", schema.NewErrorf(schema.ErrCodeGenerationFailed,
			"model %s returned no text", g.model)
	}
	return text, nil
}
