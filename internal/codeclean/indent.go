package codeclean

import "strings"

// indentUnit is one level of rebuilt indentation.
const indentUnit = "    "

// Reindent rebuilds block indentation from clause structure alone, ignoring
// whatever leading whitespace the lines carry. A line ending in ":" opens a
// block for the lines after it; a dedent clause (else, elif, except,
// finally) is emitted one level above the block it closes. Blank lines are
// emitted empty and do not affect the level.
//
// This is a single-pass heuristic. It does not track balanced nesting, so a
// block that ends without a dedent clause stays open.
func Reindent(lines []string) []string {
	out := make([]string, 0, len(lines))
	level := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			out = append(out, "")
			continue
		}
		if isDedent(trimmed) && level > 0 {
			level--
		}
		out = append(out, strings.Repeat(indentUnit, level)+trimmed)
		if strings.HasSuffix(trimmed, ":") {
			level++
		}
	}
	return out
}
