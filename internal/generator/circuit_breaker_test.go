package generator

import (
	"testing"
	"time"

	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clockedBreakers returns breakers whose clock advances only through the
// returned function.
func clockedBreakers(threshold int) (*Breakers, func(time.Duration)) {
	b := NewBreakers(BreakerConfig{Threshold: threshold, Cooldown: time.Minute})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, func(d time.Duration) { now = now.Add(d) }
}

func TestBreakers_StartClosed(t *testing.T) {
	b := NewBreakers(DefaultBreakerConfig())
	assert.NoError(t, b.Admit("gemini"))
	assert.Equal(t, BreakerStatus{State: BreakerClosed}, b.Status("gemini"))
}

func TestBreakers_OpenAfterThreshold(t *testing.T) {
	b, advance := clockedBreakers(3)

	assert.Equal(t, BreakerClosed, b.Failed("gemini"))
	assert.Equal(t, BreakerClosed, b.Failed("gemini"))
	assert.Equal(t, BreakerOpen, b.Failed("gemini"))

	advance(20 * time.Second)
	err := b.Admit("gemini")
	require.Error(t, err)
	var solverErr *schema.Error
	require.ErrorAs(t, err, &solverErr)
	assert.Equal(t, schema.ErrCodeCircuitOpen, solverErr.Code)
	assert.Equal(t, "gemini", solverErr.Details["model"])
	assert.Equal(t, 3, solverErr.Details["consecutive_failures"])
	assert.Equal(t, "40s", solverErr.Details["retry_in"])
}

func TestBreakers_SuccessResetsFailures(t *testing.T) {
	b, _ := clockedBreakers(3)

	b.Failed("gemini")
	b.Failed("gemini")
	b.Succeeded("gemini")
	assert.Equal(t, 0, b.Status("gemini").Failures)

	b.Failed("gemini")
	b.Failed("gemini")
	assert.Equal(t, BreakerClosed, b.Status("gemini").State)
	assert.Equal(t, BreakerOpen, b.Failed("gemini"))
}

func TestBreakers_TrialSuccessCloses(t *testing.T) {
	b, advance := clockedBreakers(2)
	b.Failed("gemini")
	b.Failed("gemini")

	advance(time.Minute)
	assert.Equal(t, BreakerHalfOpen, b.Status("gemini").State)
	require.NoError(t, b.Admit("gemini"))

	b.Succeeded("gemini")
	assert.Equal(t, BreakerStatus{State: BreakerClosed}, b.Status("gemini"))
}

func TestBreakers_TrialFailureReopens(t *testing.T) {
	b, advance := clockedBreakers(2)
	b.Failed("gemini")
	b.Failed("gemini")

	advance(time.Minute)
	require.NoError(t, b.Admit("gemini"))
	assert.Equal(t, BreakerOpen, b.Failed("gemini"))

	st := b.Status("gemini")
	assert.Equal(t, 3, st.Failures)
	assert.Equal(t, time.Minute, st.RetryIn)
}

func TestBreakers_OneTrialAtATime(t *testing.T) {
	b, advance := clockedBreakers(2)
	b.Failed("gemini")
	b.Failed("gemini")

	advance(2 * time.Minute)
	assert.NoError(t, b.Admit("gemini"))
	err := b.Admit("gemini")
	assert.True(t, schema.IsCode(err, schema.ErrCodeCircuitOpen))
}

func TestBreakers_PerModel(t *testing.T) {
	b, _ := clockedBreakers(2)
	b.Failed("model-a")
	b.Failed("model-a")

	assert.Equal(t, BreakerOpen, b.Status("model-a").State)
	assert.Equal(t, BreakerClosed, b.Status("model-b").State)
	assert.NoError(t, b.Admit("model-b"))
}

func TestNewBreakers_Defaults(t *testing.T) {
	b := NewBreakers(BreakerConfig{})
	assert.Equal(t, DefaultBreakerConfig(), b.cfg)
}

func TestBreakerState_String(t *testing.T) {
	assert.Equal(t, "closed", BreakerClosed.String())
	assert.Equal(t, "open", BreakerOpen.String())
	assert.Equal(t, "half_open", BreakerHalfOpen.String())
	assert.Equal(t, "unknown", BreakerState(99).String())
}
