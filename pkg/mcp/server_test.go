package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSolverServer(t *testing.T) {
	s := NewSolverServer(SolverServerDeps{})
	require.NotNil(t, s)
	assert.NotNil(t, s.mcpServer)
	assert.NotNil(t, s.logger)
	assert.NotNil(t, s.service)
	assert.Same(t, s.mcpServer, s.MCPServer())
}

func TestToolRegistration(t *testing.T) {
	s := NewSolverServer(SolverServerDeps{})

	tools := s.mcpServer.ListTools()
	require.Len(t, tools, 7)

	expectedTools := []string{
		"logic.algorithm",
		"logic.flowchart",
		"logic.code",
		"logic.clean",
		"logic.validate_diagram",
		"logic.render",
		"logic.history",
	}
	for _, name := range expectedTools {
		tool := s.mcpServer.GetTool(name)
		assert.NotNil(t, tool, "tool %s should be registered", name)
	}
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name        string
		toolName    string
		description string
	}{
		{"algorithm", "logic.algorithm", "Generate a numbered step-by-step algorithm for a coding question"},
		{"clean", "logic.clean", "Strip commentary and code fences from code text and rebuild python indentation"},
		{"validate", "logic.validate_diagram", "Check Mermaid flowchart text, stripping fences and adding a missing header"},
	}

	s := NewSolverServer(SolverServerDeps{})

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tool := s.mcpServer.GetTool(tc.toolName)
			require.NotNil(t, tool)
			assert.Equal(t, tc.description, tool.Tool.Description)
		})
	}
}

func TestRequiredArguments(t *testing.T) {
	s := NewSolverServer(SolverServerDeps{})

	tests := map[string][]string{
		"logic.algorithm":        {"coding_question"},
		"logic.flowchart":        {"algorithm"},
		"logic.code":             {"algorithm"},
		"logic.clean":            {"code"},
		"logic.validate_diagram": {"diagram"},
		"logic.render":           {"algorithm"},
	}
	for name, required := range tests {
		tool := s.mcpServer.GetTool(name)
		require.NotNil(t, tool, name)
		assert.ElementsMatch(t, required, tool.Tool.InputSchema.Required, name)
	}
	assert.Empty(t, s.mcpServer.GetTool("logic.history").Tool.InputSchema.Required)
}
