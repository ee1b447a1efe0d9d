package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/manukrishna804/logic-solver-ai/internal/logging"
	"github.com/manukrishna804/logic-solver-ai/internal/solver"
	"github.com/manukrishna804/logic-solver-ai/internal/validation"
	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

// --- Tool definitions ---

func algorithmTool() mcp.Tool {
	return mcp.NewTool("logic.algorithm",
		mcp.WithDescription("Generate a numbered step-by-step algorithm for a coding question"),
		mcp.WithString("coding_question", mcp.Required(), mcp.Description("The problem to solve")),
	)
}

func flowchartTool() mcp.Tool {
	return mcp.NewTool("logic.flowchart",
		mcp.WithDescription("Convert numbered algorithm text into a Mermaid flowchart, falling back to a heuristic diagram when generation fails"),
		mcp.WithString("algorithm", mcp.Required(), mcp.Description("Numbered algorithm steps, one per line")),
	)
}

func codeTool() mcp.Tool {
	return mcp.NewTool("logic.code",
		mcp.WithDescription("Generate cleaned source code implementing numbered algorithm text"),
		mcp.WithString("algorithm", mcp.Required(), mcp.Description("Numbered algorithm steps, one per line")),
		mcp.WithString("language", mcp.Description("Target language (default: python)")),
	)
}

func cleanTool() mcp.Tool {
	return mcp.NewTool("logic.clean",
		mcp.WithDescription("Strip commentary and code fences from code text and rebuild python indentation"),
		mcp.WithString("code", mcp.Required(), mcp.Description("Raw code text, possibly with prose and fences")),
		mcp.WithString("language", mcp.Description("Language of the code (default: python)")),
	)
}

func validateDiagramTool() mcp.Tool {
	return mcp.NewTool("logic.validate_diagram",
		mcp.WithDescription("Check Mermaid flowchart text, stripping fences and adding a missing header"),
		mcp.WithString("diagram", mcp.Required(), mcp.Description("Mermaid flowchart text")),
	)
}

func renderTool() mcp.Tool {
	return mcp.NewTool("logic.render",
		mcp.WithDescription("Render the heuristic flowchart of algorithm text offline. Returns Mermaid text, ASCII art, SVG markup or a base64-encoded PNG image"),
		mcp.WithString("algorithm", mcp.Required(), mcp.Description("Numbered algorithm steps, one per line")),
		mcp.WithString("format",
			mcp.Enum(solver.FormatMermaid, solver.FormatASCII, solver.FormatPNG, solver.FormatSVG),
			mcp.Description("Output format (default: mermaid)"),
		),
	)
}

func historyTool() mcp.Tool {
	return mcp.NewTool("logic.history",
		mcp.WithDescription("List recorded generations, newest first, optionally reshaped with a jq expression"),
		mcp.WithString("kind", mcp.Enum("algorithm", "flowchart", "code"), mcp.Description("Only this kind")),
		mcp.WithString("source", mcp.Enum("ai", "fallback"), mcp.Description("Only results from this path")),
		mcp.WithNumber("limit", mcp.Description("Maximum records (default: 50)")),
		mcp.WithNumber("offset", mcp.Description("Records to skip")),
		mcp.WithString("jq", mcp.Description("jq expression applied to the record list, e.g. map(.id)")),
		mcp.WithString("id", mcp.Description("Fetch a single record by ID; other filters are ignored")),
	)
}

// --- Handlers ---

// handleAlgorithm generates algorithm text for a coding question.
func (s *SolverServer) handleAlgorithm(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = s.toolContext(ctx, "algorithm")
	if res := s.validate(validation.SchemaAlgorithm, req); res != nil {
		return res, nil
	}
	question, err := req.RequireString("coding_question")
	if err != nil {
		return mcp.NewToolResultError("coding_question is required"), nil
	}

	out, genErr := s.service.Algorithm(ctx, schema.AlgorithmRequest{CodingQuestion: question})
	if genErr != nil {
		return s.toolError(ctx, "algorithm generation failed", genErr), nil
	}
	return mcp.NewToolResultText(out.Algorithm), nil
}

// handleFlowchart turns algorithm text into a Mermaid flowchart.
func (s *SolverServer) handleFlowchart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = s.toolContext(ctx, "flowchart")
	if res := s.validate(validation.SchemaFlowchart, req); res != nil {
		return res, nil
	}
	algorithm, err := req.RequireString("algorithm")
	if err != nil {
		return mcp.NewToolResultError("algorithm is required"), nil
	}

	out, fcErr := s.service.Flowchart(ctx, schema.FlowchartRequest{Algorithm: algorithm})
	if fcErr != nil {
		return s.toolError(ctx, "flowchart generation failed", fcErr), nil
	}
	return marshalResult(out)
}

// handleCode generates and cleans code for algorithm text.
func (s *SolverServer) handleCode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = s.toolContext(ctx, "code")
	if res := s.validate(validation.SchemaCode, req); res != nil {
		return res, nil
	}
	algorithm, err := req.RequireString("algorithm")
	if err != nil {
		return mcp.NewToolResultError("algorithm is required"), nil
	}

	out, codeErr := s.service.Code(ctx, schema.CodeRequest{
		Algorithm: algorithm,
		Language:  req.GetString("language", ""),
	})
	if codeErr != nil {
		return s.toolError(ctx, "code generation failed", codeErr), nil
	}
	return marshalResult(out)
}

// handleClean normalizes code text without generation.
func (s *SolverServer) handleClean(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = s.toolContext(ctx, "clean")
	if res := s.validate(validation.SchemaClean, req); res != nil {
		return res, nil
	}
	code, err := req.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError("code is required"), nil
	}

	out, cleanErr := s.service.Clean(ctx, schema.CleanRequest{
		Code:     code,
		Language: req.GetString("language", ""),
	})
	if cleanErr != nil {
		return s.toolError(ctx, "clean failed", cleanErr), nil
	}
	return marshalResult(out)
}

// handleValidateDiagram checks Mermaid text.
func (s *SolverServer) handleValidateDiagram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = s.toolContext(ctx, "validate_diagram")
	if res := s.validate(validation.SchemaValidateDiagram, req); res != nil {
		return res, nil
	}
	text, err := req.RequireString("diagram")
	if err != nil {
		return mcp.NewToolResultError("diagram is required"), nil
	}

	out, vErr := s.service.ValidateDiagram(ctx, schema.ValidateDiagramRequest{Diagram: text})
	if vErr != nil {
		return s.toolError(ctx, "diagram validation failed", vErr), nil
	}
	return marshalResult(out)
}

// handleRender draws the heuristic flowchart in the requested format.
func (s *SolverServer) handleRender(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = s.toolContext(ctx, "render")
	if res := s.validate(validation.SchemaRender, req); res != nil {
		return res, nil
	}
	algorithm, err := req.RequireString("algorithm")
	if err != nil {
		return mcp.NewToolResultError("algorithm is required"), nil
	}

	out, renderErr := s.service.Render(ctx, schema.RenderRequest{
		Algorithm: algorithm,
		Format:    req.GetString("format", ""),
	})
	if renderErr != nil {
		return s.toolError(ctx, "render failed", renderErr), nil
	}
	if out.Format == solver.FormatPNG {
		return mcp.NewToolResultText(base64.StdEncoding.EncodeToString(out.Body)), nil
	}
	return mcp.NewToolResultText(out.Text()), nil
}

// handleHistory lists or fetches recorded generations.
func (s *SolverServer) handleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx = s.toolContext(ctx, "history")

	if id := req.GetString("id", ""); id != "" {
		gen, err := s.service.Generation(ctx, id)
		if err != nil {
			return s.toolError(ctx, "history lookup failed", err), nil
		}
		return marshalResult(gen)
	}

	args := req.GetArguments()
	filter := make(map[string]any, len(args))
	for _, key := range []string{"kind", "source", "limit", "offset", "jq"} {
		if v, ok := args[key]; ok {
			filter[key] = v
		}
	}
	if s.validator != nil {
		if err := s.validator.ValidateValue(validation.SchemaHistory, filter); err != nil {
			return s.toolError(ctx, "invalid history query", err), nil
		}
	}

	out, err := s.service.History(ctx, solver.HistoryQuery{
		Kind:   schema.Kind(req.GetString("kind", "")),
		Source: schema.Source(req.GetString("source", "")),
		Limit:  req.GetInt("limit", 0),
		Offset: req.GetInt("offset", 0),
		JQ:     req.GetString("jq", ""),
	})
	if err != nil {
		return s.toolError(ctx, "history query failed", err), nil
	}
	return marshalResult(out)
}

// --- Helpers ---

// toolContext tags ctx with a fresh request ID, the operation and the mcp
// transport so logs and history records can be correlated.
func (s *SolverServer) toolContext(ctx context.Context, op string) context.Context {
	return logging.WithIDs(ctx, uuid.New().String(), op, "mcp")
}

// validate checks the tool arguments against a request schema. It returns a
// tool error result on failure and nil otherwise.
func (s *SolverServer) validate(schemaName string, req mcp.CallToolRequest) *mcp.CallToolResult {
	if s.validator == nil {
		return nil
	}
	args := req.GetArguments()
	if args == nil {
		args = map[string]any{}
	}
	if err := s.validator.ValidateValue(schemaName, args); err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return nil
}

// toolError logs err and converts it to a tool error result.
func (s *SolverServer) toolError(ctx context.Context, msg string, err error) *mcp.CallToolResult {
	logging.LogWith(ctx, s.logger).WarnContext(ctx, msg, "error", err)
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", msg, err))
}

// marshalResult converts a value to a JSON text tool result.
func marshalResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultJSON(json.RawMessage(data))
}
