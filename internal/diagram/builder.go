package diagram

import (
	"github.com/manukrishna804/logic-solver-ai/internal/steps"
	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

// builder accumulates one graph. Identifiers are handed out in creation
// order and never reused.
type builder struct {
	graph Graph
	next  int
}

// addNode appends a node with the next free identifier.
func (b *builder) addNode(shape Shape, label string) (string, error) {
	if b.next >= Capacity {
		return "", schema.NewErrorf(schema.ErrCodeGraphCapacityExceeded,
			"flow graph needs more than %d nodes", Capacity).
			WithDetails(map[string]any{"capacity": Capacity})
	}
	id := alphabet[b.next]
	b.next++
	b.graph.Nodes = append(b.graph.Nodes, Node{ID: id, Label: label, Shape: shape})
	return id, nil
}

func (b *builder) connect(from, to string, label EdgeLabel) {
	b.graph.Edges = append(b.graph.Edges, Edge{From: from, To: to, Label: label})
}

// Build constructs a Graph from classified steps.
//
// A start node opens the graph and an end node closes it. Sequential steps
// become process nodes chained from a cursor. A decision step becomes a
// decision node with "Yes" and "No" process nodes; the cursor continues from
// the Yes branch and the No branch is left as a dead end. Terminal steps are
// skipped since start and end are always emitted.
//
// Build fails with GRAPH_CAPACITY_EXCEEDED when the graph needs more nodes
// than the identifier alphabet holds.
func Build(stepList []steps.Step) (Graph, error) {
	var b builder

	cursor, err := b.addNode(ShapeStart, "Start")
	if err != nil {
		return Graph{}, err
	}

	for _, step := range stepList {
		switch step.Kind {
		case steps.KindTerminal:
			continue

		case steps.KindDecision:
			decision, err := b.addNode(ShapeDecision, TruncateLabel(step.Content))
			if err != nil {
				return Graph{}, err
			}
			b.connect(cursor, decision, EdgePlain)

			yes, err := b.addNode(ShapeProcess, string(EdgeYes))
			if err != nil {
				return Graph{}, err
			}
			no, err := b.addNode(ShapeProcess, string(EdgeNo))
			if err != nil {
				return Graph{}, err
			}
			b.connect(decision, yes, EdgeYes)
			b.connect(decision, no, EdgeNo)
			cursor = yes

		default:
			process, err := b.addNode(ShapeProcess, TruncateLabel(step.Content))
			if err != nil {
				return Graph{}, err
			}
			b.connect(cursor, process, EdgePlain)
			cursor = process
		}
	}

	end, err := b.addNode(ShapeEnd, "End")
	if err != nil {
		return Graph{}, err
	}
	b.connect(cursor, end, EdgePlain)

	return b.graph, nil
}
