package diagram

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// RenderASCII renders a Graph as a text diagram. Nodes are drawn as boxes in
// creation order. A single plain edge into the next box is drawn as a
// vertical connector; every other edge is listed under its source box.
func RenderASCII(g Graph) string {
	var b strings.Builder

	for i, node := range g.Nodes {
		for _, line := range makeBox(node).lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}

		edges := g.Outgoing(node.ID)
		if len(edges) == 0 {
			continue
		}
		if len(edges) == 1 && edges[0].Label == EdgePlain &&
			i+1 < len(g.Nodes) && edges[0].To == g.Nodes[i+1].ID {
			renderConnector(&b)
			continue
		}
		renderEdgeList(&b, edges)
	}

	return b.String()
}

// asciiBox holds the rendered lines of a single box.
type asciiBox struct {
	lines []string
	width int
}

// makeBox creates an ASCII box for a node. Start and end use rounded
// corners; decisions are marked with a diamond.
func makeBox(node Node) asciiBox {
	content := fmt.Sprintf("%s: %s", node.ID, firstLine(node.Label))
	if node.Shape == ShapeDecision {
		content = "◆ " + content
	}

	contentLen := utf8.RuneCountInString(content)
	width := contentLen + 4 // 2 border + 2 padding

	tl, tr, bl, br := "┌", "┐", "└", "┘"
	if node.Shape == ShapeStart || node.Shape == ShapeEnd {
		tl, tr, bl, br = "╭", "╮", "╰", "╯"
	}

	lines := []string{
		tl + strings.Repeat("─", width-2) + tr,
		"│ " + content + " │",
		bl + strings.Repeat("─", width-2) + br,
	}
	return asciiBox{lines: lines, width: width}
}

// firstLine returns only the first line of a multi-line label.
func firstLine(s string) string {
	if i := strings.Index(s, "\n"); i >= 0 {
		return s[:i]
	}
	return s
}

// renderConnector draws a vertical connector to the next box.
func renderConnector(b *strings.Builder) {
	b.WriteString("    │\n")
	b.WriteString("    ▼\n")
}

// renderEdgeList writes one branch line per edge.
func renderEdgeList(b *strings.Builder, edges []Edge) {
	for i, edge := range edges {
		branch := "├"
		if i == len(edges)-1 {
			branch = "└"
		}
		label := "──"
		if edge.Label != EdgePlain {
			label = "─" + string(edge.Label) + "─"
		}
		b.WriteString(fmt.Sprintf("    %s%s▶ %s\n", branch, label, edge.To))
	}
}
