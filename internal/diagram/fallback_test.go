package diagram

import (
	"fmt"
	"strings"
	"testing"

	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackRendersHeuristicGraph(t *testing.T) {
	output, err := Fallback(evenOdd)
	require.NoError(t, err)

	assert.Contains(t, output, `C{"If number % 2 == 0"}`)
	assert.Contains(t, output, "C -->|Yes| D")
	assert.Contains(t, output, "C -->|No| E")
	assert.NoError(t, Validate(output))
}

func TestFallbackDegradesToMinimalGraph(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 40; i++ {
		fmt.Fprintf(&b, "%d. Step %d\n", i, i)
	}

	g, degraded := FallbackGraph(b.String())
	require.Error(t, degraded)
	assert.True(t, schema.IsCode(degraded, schema.ErrCodeGraphCapacityExceeded))
	assert.Equal(t, MinimalGraph(), g)
}

func TestMinimalGraph(t *testing.T) {
	g := MinimalGraph()

	assert.Equal(t, 1, g.CountShape(ShapeStart))
	assert.Equal(t, 1, g.CountShape(ShapeEnd))
	assert.Equal(t, 1, g.CountShape(ShapeDecision))
	assert.Len(t, g.Incoming("F"), 2, "both branches rejoin at end")

	want := `flowchart TD
    A(["Start"])
    B["Process Input"]
    C{"Decision Point"}
    D["Action 1"]
    E["Action 2"]
    F(["End"])
    A --> B
    B --> C
    C -->|Yes| D
    C -->|No| E
    D --> F
    E --> F
`
	assert.Equal(t, want, RenderMermaid(g))
}
