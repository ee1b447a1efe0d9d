package diagram

import (
	"fmt"
	"strings"
)

// Header is the first line of every flowchart, naming a top-down layout.
const Header = Keyword + " TD"

// RenderMermaid renders a Graph as a Mermaid flowchart string: the header,
// one declaration per node in creation order, then one line per edge.
// Labels are emitted as-is.
func RenderMermaid(g Graph) string {
	var b strings.Builder

	b.WriteString(Header + "\n")

	for _, node := range g.Nodes {
		b.WriteString(fmt.Sprintf("    %s\n", mermaidNodeDef(node)))
	}

	for _, edge := range g.Edges {
		b.WriteString(fmt.Sprintf("    %s\n", mermaidEdgeDef(edge)))
	}

	return b.String()
}

// mermaidNodeDef returns a Mermaid node definition with the appropriate shape.
func mermaidNodeDef(node Node) string {
	opener, closer := mermaidBrackets(node.Shape)
	return node.ID + opener + `"` + node.Label + `"` + closer
}

func mermaidBrackets(shape Shape) (string, string) {
	switch shape {
	case ShapeStart, ShapeEnd:
		return "([", "])" // stadium
	case ShapeDecision:
		return "{", "}" // rhombus
	default:
		return "[", "]"
	}
}

func mermaidEdgeDef(edge Edge) string {
	if edge.Label == EdgePlain {
		return fmt.Sprintf("%s %s %s", edge.From, ArrowToken, edge.To)
	}
	return fmt.Sprintf("%s %s|%s| %s", edge.From, ArrowToken, edge.Label, edge.To)
}
