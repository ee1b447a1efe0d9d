package generator

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

// Options configures a Resilient generator.
type Options struct {
	// Retry bounds the attempts after the first one. Max 0 disables retries.
	Retry schema.RetryPolicy
	// Breakers tracks consecutive failures per model. Nil uses
	// DefaultBreakerConfig.
	Breakers *Breakers
	// Timeout caps a single attempt. Zero leaves attempts bounded only by
	// the caller's context.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Resilient wraps a Generator with a per-attempt timeout, bounded retries
// with backoff, and a circuit breaker keyed by model name.
type Resilient struct {
	next     Generator
	retry    schema.RetryPolicy
	breakers *Breakers
	timeout  time.Duration
	logger   *slog.Logger
}

// NewResilient wraps next with opts.
func NewResilient(next Generator, opts Options) *Resilient {
	if opts.Breakers == nil {
		opts.Breakers = NewBreakers(DefaultBreakerConfig())
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Retry.Max < 0 {
		opts.Retry.Max = 0
	}
	return &Resilient{
		next:     next,
		retry:    opts.Retry,
		breakers: opts.Breakers,
		timeout:  opts.Timeout,
		logger:   opts.Logger,
	}
}

// Model returns the wrapped generator's model.
func (r *Resilient) Model() string { return r.next.Model() }

// Circuit reports the breaker status for the wrapped model.
func (r *Resilient) Circuit() BreakerStatus {
	return r.breakers.Status(r.next.Model())
}

// Generate calls the wrapped generator until it succeeds, the error is not
// retryable, the retry budget is spent, or the circuit opens.
func (r *Resilient) Generate(ctx context.Context, prompt string) (string, error) {
	model := r.next.Model()

	var lastErr error
	for attempt := 0; ; attempt++ {
		if err := r.breakers.Admit(model); err != nil {
			if lastErr != nil {
				return "", lastErr
			}
			return "", err
		}

		text, err := r.attempt(ctx, prompt)
		if err == nil {
			r.breakers.Succeeded(model)
			return text, nil
		}

		state := r.breakers.Failed(model)
		lastErr = err
		r.logger.WarnContext(ctx, "generation attempt failed",
			"model", model,
			"attempt", attempt+1,
			"circuit", state.String(),
			"error", err,
		)

		if attempt >= r.retry.Max || !IsRetryableError(err) {
			return "", lastErr
		}
		if werr := WaitForBackoff(ctx, ComputeBackoff(&r.retry, attempt)); werr != nil {
			return "", lastErr
		}
	}
}

func (r *Resilient) attempt(ctx context.Context, prompt string) (string, error) {
	attemptCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	text, err := r.next.Generate(attemptCtx, prompt)
	if err != nil && ctx.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		if schema.CodeOf(err) == schema.ErrCodeTimeout {
			return "", err
		}
		return "", schema.NewErrorf(schema.ErrCodeTimeout,
			"generation exceeded %s", r.timeout).WithCause(err)
	}
	return text, err
}
