package diagram

import (
	"fmt"
	"strings"
	"testing"

	"github.com/manukrishna804/logic-solver-ai/internal/steps"
	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test algorithm texts ---

const ifElseAlgorithm = "1. Start\n2. If x > 0\n3. Output positive\n4. Else\n5. Output non-positive\n6. End"

const evenOdd = `1. Start
2. Input: Get the number from user
3. If number % 2 == 0
4. Output: "Number is even"
5. Else
6. Output: "Number is odd"
7. End`

const loopSum = `1. Read n
2. Set total = 0
3. For i from 1 to n
4. Add i to total
5. While total is greater than the configured limit value
6. Subtract limit
7. Print total`

func mustBuild(t *testing.T, text string) Graph {
	t.Helper()
	g, err := Build(steps.Parse(text))
	require.NoError(t, err)
	return g
}

// assertInvariants checks the structural properties every built graph holds.
func assertInvariants(t *testing.T, g Graph) {
	t.Helper()

	assert.Equal(t, 1, g.CountShape(ShapeStart), "exactly one start")
	assert.Equal(t, 1, g.CountShape(ShapeEnd), "exactly one end")

	seen := make(map[string]bool, len(g.Nodes))
	for i, n := range g.Nodes {
		assert.False(t, seen[n.ID], "duplicate id %s", n.ID)
		seen[n.ID] = true
		assert.Equal(t, alphabet[i], n.ID, "ids follow creation order")
	}

	for _, n := range g.Nodes {
		out := g.Outgoing(n.ID)
		switch n.Shape {
		case ShapeDecision:
			require.Len(t, out, 2, "decision %s", n.ID)
			assert.Equal(t, EdgeYes, out[0].Label)
			assert.Equal(t, EdgeNo, out[1].Label)
		default:
			for _, e := range out {
				assert.Equal(t, EdgePlain, e.Label, "only decisions carry labels")
			}
		}
		if n.Shape != ShapeStart {
			assert.NotEmpty(t, g.Incoming(n.ID), "node %s has no incoming edge", n.ID)
		}
	}

	for _, e := range g.Edges {
		_, ok := g.Node(e.From)
		assert.True(t, ok, "edge source %s exists", e.From)
		_, ok = g.Node(e.To)
		assert.True(t, ok, "edge target %s exists", e.To)
	}
}

// --- Tests ---

func TestBuildIfElse(t *testing.T) {
	g := mustBuild(t, ifElseAlgorithm)
	assertInvariants(t, g)

	assert.Equal(t, 1, g.CountShape(ShapeDecision))

	// Start, decision, Yes, No, "Output positive", "Else", "Output non-positive", End.
	require.Len(t, g.Nodes, 8)
	assert.Equal(t, Node{ID: "A", Label: "Start", Shape: ShapeStart}, g.Nodes[0])
	assert.Equal(t, Node{ID: "B", Label: "If x > 0", Shape: ShapeDecision}, g.Nodes[1])
	assert.Equal(t, Node{ID: "C", Label: "Yes", Shape: ShapeProcess}, g.Nodes[2])
	assert.Equal(t, Node{ID: "D", Label: "No", Shape: ShapeProcess}, g.Nodes[3])
	assert.Equal(t, Node{ID: "H", Label: "End", Shape: ShapeEnd}, g.Nodes[7])

	// Both branch nodes are process leaves hanging off the decision.
	assert.Equal(t, []Edge{
		{From: "B", To: "C", Label: EdgeYes},
		{From: "B", To: "D", Label: EdgeNo},
	}, g.Outgoing("B"))

	// The cursor continues from the Yes branch; No is a dead end.
	assert.Equal(t, []Edge{{From: "C", To: "E"}}, g.Outgoing("C"))
	assert.Empty(t, g.Outgoing("D"))
	assert.Equal(t, []Edge{{From: "G", To: "H"}}, g.Incoming("H"))
}

func TestBuildLinear(t *testing.T) {
	g := mustBuild(t, "1. Read a\n2. Read b\n3. Print a + b")
	assertInvariants(t, g)

	require.Len(t, g.Nodes, 5)
	assert.Equal(t, []Edge{
		{From: "A", To: "B"},
		{From: "B", To: "C"},
		{From: "C", To: "D"},
		{From: "D", To: "E"},
	}, g.Edges)
}

func TestBuildMultipleDecisions(t *testing.T) {
	g := mustBuild(t, loopSum)
	assertInvariants(t, g)
	assert.Equal(t, 2, g.CountShape(ShapeDecision))
}

func TestBuildEmptyStepsConnectsStartToEnd(t *testing.T) {
	g, err := Build(nil)
	require.NoError(t, err)
	assertInvariants(t, g)

	require.Len(t, g.Nodes, 2)
	assert.Equal(t, []Edge{{From: "A", To: "B"}}, g.Edges)
}

func TestBuildSkipsTerminalSteps(t *testing.T) {
	g := mustBuild(t, "1. Start\n2. Begin\n3. Stop\n4. End")
	assert.Len(t, g.Nodes, 2)
}

func TestBuildTruncatesLabels(t *testing.T) {
	long := "Compute the running average of every element in the list"
	g := mustBuild(t, "1. "+long+"\n2. If the running average exceeds the configured threshold")
	assertInvariants(t, g)

	assert.Equal(t, long[:MaxLabelLength]+"...", g.Nodes[1].Label)
	assert.True(t, strings.HasSuffix(g.Nodes[2].Label, "..."))
	assert.Equal(t, MaxLabelLength+len("..."), len(g.Nodes[2].Label))
}

func TestBuildCapacityExceeded(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= Capacity; i++ {
		fmt.Fprintf(&b, "%d. Step number %d\n", i, i)
	}

	_, err := Build(steps.Parse(b.String()))
	require.Error(t, err)
	assert.True(t, schema.IsCode(err, schema.ErrCodeGraphCapacityExceeded))
}

func TestBuildExactCapacity(t *testing.T) {
	// 24 process steps + start + end fill the alphabet exactly.
	var b strings.Builder
	for i := 1; i <= Capacity-2; i++ {
		fmt.Fprintf(&b, "%d. Step number %d\n", i, i)
	}

	g, err := Build(steps.Parse(b.String()))
	require.NoError(t, err)
	assert.Len(t, g.Nodes, Capacity)
	assert.Equal(t, "Z", g.Nodes[Capacity-1].ID)
}

func TestTruncateLabel(t *testing.T) {
	exact := strings.Repeat("x", MaxLabelLength)
	assert.Equal(t, exact, TruncateLabel(exact))
	assert.Equal(t, exact+"...", TruncateLabel(exact+"y"))
	assert.Equal(t, "short", TruncateLabel("short"))

	// Counted in characters, not bytes.
	wide := strings.Repeat("é", MaxLabelLength)
	assert.Equal(t, wide, TruncateLabel(wide))
}
