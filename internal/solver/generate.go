package solver

import (
	"context"
	"strings"

	"github.com/manukrishna804/logic-solver-ai/internal/codeclean"
	"github.com/manukrishna804/logic-solver-ai/internal/diagram"
	"github.com/manukrishna804/logic-solver-ai/internal/generator"
	"github.com/manukrishna804/logic-solver-ai/internal/logging"
	"github.com/manukrishna804/logic-solver-ai/internal/store"
	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

// Algorithm asks the generator for numbered algorithm text.
func (s *Service) Algorithm(ctx context.Context, req schema.AlgorithmRequest) (*schema.AlgorithmResult, error) {
	ctx = withOperation(ctx, "algorithm")
	if err := requireText("coding question", req.CodingQuestion); err != nil {
		return nil, err
	}
	if err := s.requireModel(); err != nil {
		return nil, err
	}

	text, err := s.gen.Generate(ctx, generator.AlgorithmPrompt(req.CodingQuestion))
	if err != nil {
		logging.LogWith(ctx, s.logger).ErrorContext(ctx, "algorithm generation failed", "error", err)
		return nil, err
	}

	s.record(ctx, &store.Generation{
		Kind:   schema.KindAlgorithm,
		Input:  req.CodingQuestion,
		Output: text,
		Source: schema.SourceAI,
		Model:  s.modelName(),
	})
	return &schema.AlgorithmResult{Algorithm: text}, nil
}

// Flowchart produces diagram text for algorithm text. The generator's answer
// is used when it passes the syntactic check; otherwise, or when no model is
// configured or the call fails, the heuristic fallback diagram is returned.
// Non-empty input never fails.
func (s *Service) Flowchart(ctx context.Context, req schema.FlowchartRequest) (*schema.FlowchartResult, error) {
	ctx = withOperation(ctx, "flowchart")
	if err := requireText("algorithm", req.Algorithm); err != nil {
		return nil, err
	}
	log := logging.LogWith(ctx, s.logger)

	if s.gen != nil {
		text, err := s.gen.Generate(ctx, generator.FlowchartPrompt(req.Algorithm))
		if err == nil {
			prepared, verr := diagram.Check(text)
			if verr == nil {
				s.record(ctx, &store.Generation{
					Kind:   schema.KindFlowchart,
					Input:  req.Algorithm,
					Output: prepared,
					Source: schema.SourceAI,
					Model:  s.modelName(),
				})
				return &schema.FlowchartResult{Flowchart: prepared, Source: schema.SourceAI}, nil
			}
			log.WarnContext(ctx, "generated diagram rejected, using fallback", "error", verr)
		} else {
			log.WarnContext(ctx, "flowchart generation failed, using fallback", "error", err)
		}
	}

	text, degraded := diagram.Fallback(req.Algorithm)
	if degraded != nil {
		log.WarnContext(ctx, "fallback diagram degraded to minimal graph", "error", degraded)
	}
	s.record(ctx, &store.Generation{
		Kind:     schema.KindFlowchart,
		Input:    req.Algorithm,
		Output:   text,
		Source:   schema.SourceFallback,
		Degraded: degraded != nil,
	})
	return &schema.FlowchartResult{Flowchart: text, Source: schema.SourceFallback, Degraded: degraded != nil}, nil
}

// Code asks the generator for source code and normalizes the answer.
func (s *Service) Code(ctx context.Context, req schema.CodeRequest) (*schema.CodeResult, error) {
	ctx = withOperation(ctx, "code")
	if err := requireText("algorithm", req.Algorithm); err != nil {
		return nil, err
	}
	if err := s.requireModel(); err != nil {
		return nil, err
	}
	language := languageOrDefault(req.Language)

	raw, err := s.gen.Generate(ctx, generator.CodePrompt(req.Algorithm, language))
	if err != nil {
		logging.LogWith(ctx, s.logger).ErrorContext(ctx, "code generation failed", "error", err)
		return nil, err
	}

	res := s.normalize(ctx, raw, language)
	s.record(ctx, &store.Generation{
		Kind:     schema.KindCode,
		Input:    req.Algorithm,
		Output:   res.Code,
		Source:   schema.SourceAI,
		Language: language,
		Model:    s.modelName(),
		Degraded: res.Degraded,
	})
	return res, nil
}

// Clean normalizes caller-supplied code text without calling the generator.
func (s *Service) Clean(ctx context.Context, req schema.CleanRequest) (*schema.CodeResult, error) {
	ctx = withOperation(ctx, "clean")
	if err := requireText("code", req.Code); err != nil {
		return nil, err
	}
	return s.normalize(ctx, req.Code, languageOrDefault(req.Language)), nil
}

func (s *Service) normalize(ctx context.Context, raw, language string) *schema.CodeResult {
	cleaned, degraded := codeclean.Normalize(raw, language)
	if degraded != nil {
		logging.LogWith(ctx, s.logger).WarnContext(ctx, "code normalization degraded",
			"language", language, "error", degraded)
	}
	return &schema.CodeResult{Code: cleaned, Language: language, Degraded: degraded != nil}
}

func languageOrDefault(language string) string {
	language = strings.TrimSpace(language)
	if language == "" {
		return schema.DefaultLanguage
	}
	return language
}

func withOperation(ctx context.Context, op string) context.Context {
	if logging.Operation(ctx) != "" {
		return ctx
	}
	return logging.WithOperation(ctx, op)
}
