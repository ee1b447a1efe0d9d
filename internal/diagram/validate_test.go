package diagram

import (
	"testing"

	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		valid bool
	}{
		{"well formed", "flowchart TD\n    A --> B", true},
		{"labeled edge", "flowchart LR\nA -->|Yes| B", true},
		{"no arrow", "flowchart TD\n    A[\"x\"]", false},
		{"wrong preamble", "graph TD\nA --> B", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.text)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, schema.IsCode(err, schema.ErrCodeValidationFailed))
		})
	}
}

func TestPrepareStripsFences(t *testing.T) {
	text := "```mermaid\nflowchart TD\n    A --> B\n```"
	assert.Equal(t, "flowchart TD\n    A --> B", Prepare(text))
}

func TestPrepareLeavesInnerFencesWhenNotLeading(t *testing.T) {
	// Fence stripping only applies when the text opens with a fence.
	text := "flowchart TD\nA --> B\n```"
	assert.Equal(t, text, Prepare(text))
}

func TestPreparePrependsHeader(t *testing.T) {
	// A missing header is added rather than rejected.
	prepared, err := Check("A([\"Start\"])\nA --> B")
	require.NoError(t, err)
	assert.Equal(t, "flowchart TD\nA([\"Start\"])\nA --> B", prepared)
}

func TestCheckFencedWithoutHeader(t *testing.T) {
	prepared, err := Check("```\nA --> B\n```\n")
	require.NoError(t, err)
	assert.Equal(t, "flowchart TD\nA --> B", prepared)
}

func TestCheckRejectsTextWithoutArrows(t *testing.T) {
	prepared, err := Check("I could not draw this algorithm.")
	require.Error(t, err)
	assert.True(t, schema.IsCode(err, schema.ErrCodeValidationFailed))
	assert.Equal(t, "flowchart TD\nI could not draw this algorithm.", prepared)
}
