// Package codeclean turns raw generated code into clean source text. It keeps
// fenced regions verbatim, drops explanatory prose around unfenced code, and
// rebuilds indentation for indentation-significant notations.
package codeclean

import (
	"strings"

	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

// Normalize cleans raw code text for the target notation.
//
// Blank input fails with EMPTY_INPUT. Every other failure is recovered: the
// least-processed text available is returned together with a
// NORMALIZATION_DEGRADED error that callers should log, not surface.
// Normalizing already-cleaned code returns it unchanged.
func Normalize(raw, notation string) (cleaned string, degraded error) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", schema.NewError(schema.ErrCodeEmptyInput, "no code text provided")
	}

	best := text
	defer func() {
		if r := recover(); r != nil {
			cleaned = best
			degraded = schema.NewErrorf(schema.ErrCodeNormalizationDegraded,
				"code normalization aborted: %v", r)
		}
	}()

	lines := strings.Split(raw, "\n")
	kept, fenced := extractFenced(lines)
	if !fenced {
		kept = filterProse(lines)
	}
	if !hasContent(kept) {
		return text, schema.NewError(schema.ErrCodeNormalizationDegraded,
			"no code lines found").WithDetails(map[string]any{"fenced": fenced})
	}
	best = finish(kept)

	if IsIndentSignificant(notation) {
		kept = Reindent(kept)
	}
	return finish(kept), nil
}

// extractFenced returns the lines inside fenced regions. Fence state toggles
// on every marker line; an unterminated fence runs to the end of the text.
// The second result is false when the text has no fence at all.
func extractFenced(lines []string) ([]string, bool) {
	var (
		out     []string
		inFence bool
		seen    bool
	)
	for _, line := range lines {
		if isFence(line) {
			inFence = !inFence
			seen = true
			continue
		}
		if inFence {
			out = append(out, line)
		}
	}
	return out, seen
}

// filterProse keeps the lines of unfenced text that look like code. Leading
// blank lines are dropped. Lines inside triple-quoted strings or an open
// bracket are kept as-is.
func filterProse(lines []string) []string {
	var (
		out      []string
		inString bool
		depth    int
	)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		code := stripLiterals(trimmed)

		keep := false
		switch {
		case inString, depth > 0:
			keep = true
		case trimmed == "":
			keep = len(out) > 0
		case isComment(trimmed), hasTripleQuote(trimmed):
			keep = true
		case isStatement(code):
			keep = true
		case isProse(code):
			keep = false
		default:
			keep = looksLikeCode(trimmed)
		}
		if !keep {
			continue
		}

		out = append(out, line)
		if !inString && !isComment(trimmed) {
			depth = max(0, depth+bracketDelta(code))
		}
		if tripleQuoteCount(trimmed)%2 == 1 {
			inString = !inString
		}
	}
	return out
}

func hasTripleQuote(s string) bool {
	return tripleQuoteCount(s) > 0
}

func tripleQuoteCount(s string) int {
	return strings.Count(s, `"""`) + strings.Count(s, "'''")
}

func hasContent(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return true
		}
	}
	return false
}

// finish collapses blank runs and trims surrounding whitespace.
func finish(lines []string) string {
	return strings.TrimSpace(strings.Join(collapseBlankRuns(lines), "\n"))
}

// collapseBlankRuns replaces three or more consecutive blank lines with one.
func collapseBlankRuns(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		if strings.TrimSpace(lines[i]) != "" {
			out = append(out, lines[i])
			i++
			continue
		}
		j := i
		for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			j++
		}
		run := j - i
		if run >= 3 {
			run = 1
		}
		for k := 0; k < run; k++ {
			out = append(out, "")
		}
		i = j
	}
	return out
}
