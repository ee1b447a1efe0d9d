// Package steps parses numbered algorithm text into classified step records.
package steps

import (
	"strconv"
	"strings"
	"unicode"
)

// Kind classifies a step by how it shapes control flow.
type Kind string

const (
	KindSequential Kind = "sequential"
	KindDecision   Kind = "decision"
	KindTerminal   Kind = "terminal"
)

// Step is one numbered line of algorithm text.
type Step struct {
	Index   int    // numbering as written; not necessarily contiguous
	Content string // text after the numeral/period prefix
	Kind    Kind
}

// Parse splits algorithm text into ordered step records. Only lines whose
// first non-space character is a digit take part; headings, prose and blank
// lines are ignored. Steps with empty content are dropped. Parse never fails:
// malformed input yields an empty slice.
func Parse(text string) []Step {
	var out []Step
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		first := []rune(line)[0]
		if !unicode.IsDigit(first) {
			continue
		}

		content := line
		if _, rest, ok := strings.Cut(line, "."); ok {
			content = strings.TrimSpace(rest)
		}
		if content == "" {
			continue
		}

		index := leadingNumber(line)
		if index == 0 {
			index = len(out) + 1
		}
		out = append(out, Step{
			Index:   index,
			Content: content,
			Kind:    Classify(content),
		})
	}
	return out
}

// Classify returns the kind of a single step's content.
func Classify(content string) Kind {
	words := Words(content)

	for _, w := range words {
		if IsDecisionKeyword(w) {
			return KindDecision
		}
	}
	if len(words) == 1 && IsTerminalWord(words[0]) {
		return KindTerminal
	}
	return KindSequential
}

// Words lowercases s and splits it into letter/digit runs.
func Words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

// HasBranchKeyword reports whether content continues an earlier decision
// (for example "Else" or "Otherwise, else print").
func HasBranchKeyword(content string) bool {
	for _, w := range Words(content) {
		if IsBranchKeyword(w) {
			return true
		}
	}
	return false
}

// leadingNumber parses the ASCII digit prefix of line, or returns 0.
func leadingNumber(line string) int {
	end := 0
	for end < len(line) && line[end] >= '0' && line[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(line[:end])
	if err != nil {
		return 0
	}
	return n
}
