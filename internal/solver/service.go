// Package solver orchestrates the solver operations: algorithm, flowchart and
// code generation through the external generator, the offline diagram and code
// paths, and generation history.
package solver

import (
	"context"
	"log/slog"
	"strings"

	"github.com/manukrishna804/logic-solver-ai/internal/expressions"
	"github.com/manukrishna804/logic-solver-ai/internal/generator"
	"github.com/manukrishna804/logic-solver-ai/internal/store"
	"github.com/manukrishna804/logic-solver-ai/internal/streaming"
	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

// Options configures a Service.
type Options struct {
	// Generator produces algorithm, flowchart and code text. Nil means no
	// model is configured: flowcharts use the fallback, the rest fail.
	Generator generator.Generator
	// Store records generations. Nil disables history.
	Store store.Store
	// Filter evaluates jq expressions over history. Nil creates one.
	Filter *expressions.GoJQEngine
	// Events receives a notification per completed generation. Nil
	// disables notifications.
	Events streaming.Publisher
	// APIKeyPresent is reported by Health.
	APIKeyPresent bool
	Logger        *slog.Logger
}

// Service implements every solver operation. It is safe for concurrent use.
type Service struct {
	gen           generator.Generator
	store         store.Store
	filter        *expressions.GoJQEngine
	events        streaming.Publisher
	apiKeyPresent bool
	logger        *slog.Logger
}

// New creates a Service.
func New(opts Options) *Service {
	if opts.Filter == nil {
		opts.Filter = expressions.NewGoJQEngine()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Service{
		gen:           opts.Generator,
		store:         opts.Store,
		filter:        opts.Filter,
		events:        opts.Events,
		apiKeyPresent: opts.APIKeyPresent,
		logger:        opts.Logger,
	}
}

// Health reports whether the generator is ready.
func (s *Service) Health(_ context.Context) schema.Health {
	h := schema.Health{
		Status:           "ok",
		APIKeyPresent:    s.apiKeyPresent,
		ModelInitialized: s.gen != nil,
		HistoryEnabled:   s.store != nil,
	}
	if s.gen != nil {
		h.Model = s.gen.Model()
	}
	if r, ok := s.gen.(*generator.Resilient); ok {
		st := r.Circuit()
		h.Circuit = st.State.String()
		h.CircuitFailures = st.Failures
		if st.RetryIn > 0 {
			h.CircuitRetryIn = st.RetryIn.String()
		}
	}
	return h
}

// requireText rejects blank input with EMPTY_INPUT naming the field.
func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return schema.NewErrorf(schema.ErrCodeEmptyInput, "no %s provided", field).
			WithDetails(map[string]any{"field": field})
	}
	return nil
}

func (s *Service) requireModel() error {
	if s.gen == nil {
		return schema.NewError(schema.ErrCodeModelUnavailable,
			"GOOGLE_API_KEY not set or model not initialized")
	}
	return nil
}

func (s *Service) modelName() string {
	if s.gen == nil {
		return ""
	}
	return s.gen.Model()
}
