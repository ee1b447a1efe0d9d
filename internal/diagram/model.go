package diagram

// Shape classifies a flow node by how it is drawn.
type Shape string

const (
	ShapeStart    Shape = "start"
	ShapeEnd      Shape = "end"
	ShapeProcess  Shape = "process"
	ShapeDecision Shape = "decision"
)

// EdgeLabel marks the branch an edge leaves a decision on.
type EdgeLabel string

const (
	EdgePlain EdgeLabel = ""
	EdgeYes   EdgeLabel = "Yes"
	EdgeNo    EdgeLabel = "No"
)

// MaxLabelLength is the number of characters kept from step content before
// the ellipsis marker is appended.
const MaxLabelLength = 30

const ellipsis = "..."

// alphabet is the ordered set of node identifiers. A graph never holds more
// nodes than there are symbols.
var alphabet = [...]string{
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
}

// Capacity is the maximum number of nodes in one graph.
const Capacity = len(alphabet)

// Graph is the intermediate representation used by all renderers.
// Nodes and edges keep their creation order.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// Node is a single vertex of the flow graph.
type Node struct {
	ID    string
	Label string
	Shape Shape
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From  string
	To    string
	Label EdgeLabel
}

// Node looks up a node by ID.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Outgoing returns the edges leaving id, in creation order.
func (g Graph) Outgoing(id string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.From == id {
			out = append(out, e)
		}
	}
	return out
}

// Incoming returns the edges entering id, in creation order.
func (g Graph) Incoming(id string) []Edge {
	var in []Edge
	for _, e := range g.Edges {
		if e.To == id {
			in = append(in, e)
		}
	}
	return in
}

// CountShape returns how many nodes have the given shape.
func (g Graph) CountShape(shape Shape) int {
	n := 0
	for _, node := range g.Nodes {
		if node.Shape == shape {
			n++
		}
	}
	return n
}

// TruncateLabel shortens s to MaxLabelLength characters followed by an
// ellipsis. Shorter content is returned unchanged.
func TruncateLabel(s string) string {
	r := []rune(s)
	if len(r) <= MaxLabelLength {
		return s
	}
	return string(r[:MaxLabelLength]) + ellipsis
}
