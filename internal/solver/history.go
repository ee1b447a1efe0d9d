package solver

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/manukrishna804/logic-solver-ai/internal/expressions"
	"github.com/manukrishna804/logic-solver-ai/internal/logging"
	"github.com/manukrishna804/logic-solver-ai/internal/store"
	"github.com/manukrishna804/logic-solver-ai/internal/streaming"
	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

// DefaultHistoryLimit bounds history listings that name no limit.
const DefaultHistoryLimit = 50

// HistoryQuery selects recorded generations and optionally reshapes them
// with a jq expression.
type HistoryQuery struct {
	Kind   schema.Kind   `json:"kind,omitempty"`
	Source schema.Source `json:"source,omitempty"`
	Limit  int           `json:"limit,omitempty"`
	Offset int           `json:"offset,omitempty"`
	JQ     string        `json:"jq,omitempty"`
}

// History lists recorded generations, newest first. Without a jq expression
// the result is a []*store.Generation; with one it is the jq output over the
// JSON form of that list.
func (s *Service) History(ctx context.Context, q HistoryQuery) (any, error) {
	if err := s.requireHistory(); err != nil {
		return nil, err
	}
	if q.Limit <= 0 {
		q.Limit = DefaultHistoryLimit
	}

	gens, err := s.store.ListGenerations(ctx, store.GenerationFilter{
		Kind:   q.Kind,
		Source: q.Source,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return nil, err
	}
	if gens == nil {
		gens = []*store.Generation{}
	}
	if q.JQ == "" {
		return gens, nil
	}

	data, err := expressions.ToJQValue(gens)
	if err != nil {
		return nil, schema.NewError(schema.ErrCodeStore, "encode history").WithCause(err)
	}
	return s.filter.Evaluate(ctx, q.JQ, data)
}

// Generation returns one recorded generation.
func (s *Service) Generation(ctx context.Context, id string) (*store.Generation, error) {
	if err := s.requireHistory(); err != nil {
		return nil, err
	}
	return s.store.GetGeneration(ctx, id)
}

func (s *Service) requireHistory() error {
	if s.store == nil {
		return schema.NewError(schema.ErrCodeNotFound, "history is disabled")
	}
	return nil
}

// record saves a generation and announces it to event subscribers. Failures
// are logged and never reach the caller.
func (s *Service) record(ctx context.Context, gen *store.Generation) {
	if s.store == nil && s.events == nil {
		return
	}
	gen.ID = uuid.New().String()
	gen.RequestID = logging.RequestID(ctx)
	gen.CreatedAt = time.Now().UTC()
	ctx = context.WithoutCancel(ctx)

	saved := false
	if s.store != nil {
		if err := s.store.SaveGeneration(ctx, gen); err != nil {
			logging.LogWith(ctx, s.logger).WarnContext(ctx, "failed to record generation",
				"kind", gen.Kind, "error", err)
		} else {
			saved = true
		}
	}

	if s.events == nil {
		return
	}
	event := streaming.Event{
		Type:      streaming.EventGenerated,
		Kind:      gen.Kind,
		Source:    gen.Source,
		RequestID: gen.RequestID,
		Degraded:  gen.Degraded,
	}
	if saved {
		event.GenerationID = gen.ID
	}
	if err := s.events.Publish(ctx, event); err != nil {
		logging.LogWith(ctx, s.logger).WarnContext(ctx, "failed to publish generation event", "error", err)
	}
}
