package diagram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMermaidIfElse(t *testing.T) {
	output := RenderMermaid(mustBuild(t, ifElseAlgorithm))

	want := `flowchart TD
    A(["Start"])
    B{"If x > 0"}
    C["Yes"]
    D["No"]
    E["Output positive"]
    F["Else"]
    G["Output non-positive"]
    H(["End"])
    A --> B
    B -->|Yes| C
    B -->|No| D
    C --> E
    E --> F
    F --> G
    G --> H
`
	assert.Equal(t, want, output)
}

func TestRenderMermaidDeclarationsBeforeEdges(t *testing.T) {
	output := RenderMermaid(mustBuild(t, evenOdd))
	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Equal(t, Header, lines[0])

	firstEdge := -1
	for i, line := range lines[1:] {
		isEdge := strings.Contains(line, ArrowToken)
		if isEdge && firstEdge < 0 {
			firstEdge = i
		}
		if firstEdge >= 0 {
			assert.True(t, isEdge, "declaration %q after an edge", line)
		}
	}
	assert.Greater(t, firstEdge, 0)
}

func TestRenderMermaidShapes(t *testing.T) {
	g := Graph{
		Nodes: []Node{
			{ID: "A", Label: "Start", Shape: ShapeStart},
			{ID: "B", Label: "Read n", Shape: ShapeProcess},
			{ID: "C", Label: "n > 0", Shape: ShapeDecision},
			{ID: "D", Label: "End", Shape: ShapeEnd},
		},
	}
	output := RenderMermaid(g)

	assert.Contains(t, output, `A(["Start"])`)
	assert.Contains(t, output, `B["Read n"]`)
	assert.Contains(t, output, `C{"n > 0"}`)
	assert.Contains(t, output, `D(["End"])`)
}

func TestRenderMermaidLabelsNotEscaped(t *testing.T) {
	g := mustBuild(t, `1. Output: "Number is even"`)
	assert.Contains(t, RenderMermaid(g), `B["Output: "Number is even""]`)
}

func TestRenderValidateRoundTrip(t *testing.T) {
	texts := []string{"", ifElseAlgorithm, evenOdd, loopSum, "1. Only one step"}
	for _, text := range texts {
		g, err := FallbackGraph(text)
		require.NoError(t, err)

		rendered := RenderMermaid(g)
		assert.NoError(t, Validate(rendered))

		prepared, err := Check(rendered)
		assert.NoError(t, err)
		assert.Equal(t, strings.TrimSpace(rendered), prepared)
	}
}
