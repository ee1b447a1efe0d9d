package diagram

import (
	"strings"

	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

const (
	// Keyword introduces a flow diagram.
	Keyword = "flowchart"
	// ArrowToken joins two nodes.
	ArrowToken = "-->"

	fenceMarker = "```"
)

// Prepare cleans externally supplied diagram text before validation. When the
// text opens with a code fence, every fence line is removed. Text that does
// not start with the diagram keyword gets the default header prepended.
func Prepare(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, fenceMarker) {
		lines := strings.Split(text, "\n")
		kept := lines[:0]
		for _, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), fenceMarker) {
				continue
			}
			kept = append(kept, line)
		}
		text = strings.TrimSpace(strings.Join(kept, "\n"))
	}

	if !strings.HasPrefix(text, Keyword) {
		text = Header + "\n" + text
	}
	return text
}

// Validate performs the minimal syntactic check on diagram text: it must
// start with the diagram keyword and contain at least one arrow. Graph-level
// invariants are not checked.
func Validate(text string) error {
	if !strings.HasPrefix(text, Keyword) {
		return schema.NewErrorf(schema.ErrCodeValidationFailed,
			"diagram must start with %q", Keyword)
	}
	if !strings.Contains(text, ArrowToken) {
		return schema.NewErrorf(schema.ErrCodeValidationFailed,
			"diagram has no %q connections", ArrowToken)
	}
	return nil
}

// Check prepares text and validates the result. The prepared text is
// returned even when validation fails.
func Check(text string) (string, error) {
	prepared := Prepare(text)
	return prepared, Validate(prepared)
}
