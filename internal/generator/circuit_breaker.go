package generator

import (
	"sync"
	"time"

	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

// BreakerState is the position of a model's circuit.
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // calls pass through
	BreakerOpen                         // calls fail fast
	BreakerHalfOpen                     // one trial call decides
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// BreakerConfig sets when a model's circuit opens and for how long.
type BreakerConfig struct {
	// Threshold is the number of consecutive failures that opens the circuit.
	Threshold int
	// Cooldown is how long an open circuit rejects calls before a trial.
	Cooldown time.Duration
}

// DefaultBreakerConfig returns the configuration used when none is set.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{Threshold: 5, Cooldown: 30 * time.Second}
}

// BreakerStatus is a point-in-time view of one model's circuit.
type BreakerStatus struct {
	State    BreakerState
	Failures int
	// RetryIn is the time left before an open circuit admits a trial call.
	RetryIn time.Duration
}

type circuit struct {
	failures int
	open     bool
	openedAt time.Time
	trial    bool
}

// Breakers tracks consecutive generation failures per model. After Threshold
// failures the model's calls fail with CIRCUIT_OPEN until Cooldown has
// passed; a single trial call then closes or reopens the circuit.
type Breakers struct {
	cfg BreakerConfig
	now func() time.Time

	mu     sync.Mutex
	models map[string]*circuit
}

// NewBreakers creates breakers with cfg. Non-positive fields use the defaults.
func NewBreakers(cfg BreakerConfig) *Breakers {
	def := DefaultBreakerConfig()
	if cfg.Threshold <= 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = def.Cooldown
	}
	return &Breakers{cfg: cfg, now: time.Now, models: make(map[string]*circuit)}
}

// Admit returns nil when a call to model may proceed.
func (b *Breakers) Admit(model string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	c := b.circuit(model)
	switch b.state(c) {
	case BreakerClosed:
		return nil
	case BreakerHalfOpen:
		if c.trial {
			return schema.NewErrorf(schema.ErrCodeCircuitOpen,
				"model %q is being retried after repeated failures", model).
				WithDetails(map[string]any{"model": model, "state": BreakerHalfOpen.String()})
		}
		c.trial = true
		return nil
	}
	return schema.NewErrorf(schema.ErrCodeCircuitOpen,
		"model %q paused after %d consecutive failures", model, c.failures).
		WithDetails(map[string]any{
			"model":                model,
			"consecutive_failures": c.failures,
			"retry_in":             b.retryIn(c).String(),
		})
}

// Succeeded closes model's circuit.
func (b *Breakers) Succeeded(model string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	*b.circuit(model) = circuit{}
}

// Failed counts a failure for model and returns the resulting state. A
// failed trial call reopens the circuit at once.
func (b *Breakers) Failed(model string) BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()

	c := b.circuit(model)
	c.failures++
	if c.trial || c.failures >= b.cfg.Threshold {
		c.open = true
		c.openedAt = b.now()
		c.trial = false
	}
	return b.state(c)
}

// Status reports model's circuit.
func (b *Breakers) Status(model string) BreakerStatus {
	b.mu.Lock()
	defer b.mu.Unlock()

	c := b.circuit(model)
	return BreakerStatus{State: b.state(c), Failures: c.failures, RetryIn: b.retryIn(c)}
}

func (b *Breakers) circuit(model string) *circuit {
	c, ok := b.models[model]
	if !ok {
		c = &circuit{}
		b.models[model] = c
	}
	return c
}

func (b *Breakers) state(c *circuit) BreakerState {
	switch {
	case !c.open:
		return BreakerClosed
	case b.retryIn(c) > 0:
		return BreakerOpen
	default:
		return BreakerHalfOpen
	}
}

func (b *Breakers) retryIn(c *circuit) time.Duration {
	if !c.open {
		return 0
	}
	return max(0, b.cfg.Cooldown-b.now().Sub(c.openedAt))
}
