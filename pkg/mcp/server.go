// Package mcp exposes the solver operations as MCP tools over stdio.
package mcp

import (
	"context"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/manukrishna804/logic-solver-ai/internal/solver"
	"github.com/manukrishna804/logic-solver-ai/internal/validation"
)

// SolverServerDeps holds the dependencies for creating a SolverServer.
type SolverServerDeps struct {
	Service   *solver.Service
	Validator *validation.JSONSchemaValidator
	Version   string
	Logger    *slog.Logger
}

// SolverServer wraps an MCP server with solver-specific tool handlers.
type SolverServer struct {
	service   *solver.Service
	validator *validation.JSONSchemaValidator
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewSolverServer creates a new SolverServer with all 7 tools registered.
func NewSolverServer(deps SolverServerDeps) *SolverServer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	service := deps.Service
	if service == nil {
		service = solver.New(solver.Options{Logger: logger})
	}
	version := deps.Version
	if version == "" {
		version = "dev"
	}

	s := &SolverServer{
		service:   service,
		validator: deps.Validator,
		logger:    logger,
	}

	mcpSrv := server.NewMCPServer(
		"logic-solver",
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions("Logic Solver turns coding questions into numbered algorithms, Mermaid flowcharts and cleaned source code. Use logic.algorithm to draft steps, logic.flowchart and logic.code to turn them into a diagram or code, logic.render for an offline diagram in mermaid, ascii, png or svg, logic.clean to tidy code text, logic.validate_diagram to check Mermaid text, and logic.history to browse past results."),
	)

	mcpSrv.AddTools(s.tools()...)
	s.mcpServer = mcpSrv
	return s
}

// Serve starts the stdio transport and blocks until ctx is cancelled or stdin closes.
func (s *SolverServer) Serve(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcpServer)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// MCPServer returns the underlying MCPServer for testing or custom transports.
func (s *SolverServer) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// tools returns the registered MCP tools as ServerTool entries.
func (s *SolverServer) tools() []server.ServerTool {
	return []server.ServerTool{
		{Tool: algorithmTool(), Handler: s.handleAlgorithm},
		{Tool: flowchartTool(), Handler: s.handleFlowchart},
		{Tool: codeTool(), Handler: s.handleCode},
		{Tool: cleanTool(), Handler: s.handleClean},
		{Tool: validateDiagramTool(), Handler: s.handleValidateDiagram},
		{Tool: renderTool(), Handler: s.handleRender},
		{Tool: historyTool(), Handler: s.handleHistory},
	}
}
