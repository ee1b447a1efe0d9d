package diagram

import (
	"fmt"

	"github.com/manukrishna804/logic-solver-ai/internal/steps"
)

// FallbackGraph builds the heuristic flow graph for algorithm text. It never
// fails: if the steps cannot be turned into a graph, MinimalGraph is returned
// together with the reason, which callers should only log.
func FallbackGraph(algorithm string) (g Graph, degraded error) {
	defer func() {
		if r := recover(); r != nil {
			g = MinimalGraph()
			degraded = fmt.Errorf("diagram: fallback build panicked: %v", r)
		}
	}()

	g, err := Build(steps.Parse(algorithm))
	if err != nil {
		return MinimalGraph(), fmt.Errorf("diagram: fallback build: %w", err)
	}
	return g, nil
}

// Fallback renders the heuristic flow graph for algorithm text as Mermaid.
func Fallback(algorithm string) (string, error) {
	g, degraded := FallbackGraph(algorithm)
	return RenderMermaid(g), degraded
}

// MinimalGraph is the last-resort diagram: a start, one generic input step, a
// decision with two actions, and an end joined by both branches.
func MinimalGraph() Graph {
	var b builder
	start := b.mustAdd(ShapeStart, "Start")
	input := b.mustAdd(ShapeProcess, "Process Input")
	decision := b.mustAdd(ShapeDecision, "Decision Point")
	yes := b.mustAdd(ShapeProcess, "Action 1")
	no := b.mustAdd(ShapeProcess, "Action 2")
	end := b.mustAdd(ShapeEnd, "End")

	b.connect(start, input, EdgePlain)
	b.connect(input, decision, EdgePlain)
	b.connect(decision, yes, EdgeYes)
	b.connect(decision, no, EdgeNo)
	b.connect(yes, end, EdgePlain)
	b.connect(no, end, EdgePlain)
	return b.graph
}

// mustAdd is addNode for graphs known to fit the alphabet.
func (b *builder) mustAdd(shape Shape, label string) string {
	id, err := b.addNode(shape, label)
	if err != nil {
		panic(err)
	}
	return id
}
