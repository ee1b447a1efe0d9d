package steps

// decisionKeywords open a branch point when present as a whole word.
var decisionKeywords = map[string]struct{}{
	"if":    {},
	"while": {},
	"for":   {},
}

// branchKeywords mark the continuation of an earlier decision. On their own
// they do not open a new branch point.
var branchKeywords = map[string]struct{}{
	"else": {},
}

// terminalWords are whole-step contents that restate the diagram's own
// start and end nodes.
var terminalWords = map[string]struct{}{
	"start": {},
	"begin": {},
	"end":   {},
	"stop":  {},
}

// IsDecisionKeyword reports whether word (lowercase) opens a decision.
func IsDecisionKeyword(word string) bool {
	_, ok := decisionKeywords[word]
	return ok
}

// IsBranchKeyword reports whether word (lowercase) continues a decision.
func IsBranchKeyword(word string) bool {
	_, ok := branchKeywords[word]
	return ok
}

// IsTerminalWord reports whether word (lowercase) names a start or end step.
func IsTerminalWord(word string) bool {
	_, ok := terminalWords[word]
	return ok
}
