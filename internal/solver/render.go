package solver

import (
	"context"

	"github.com/manukrishna804/logic-solver-ai/internal/diagram"
	"github.com/manukrishna804/logic-solver-ai/internal/logging"
	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

// Render formats.
const (
	FormatMermaid = "mermaid"
	FormatASCII   = "ascii"
	FormatPNG     = "png"
	FormatSVG     = "svg"
)

// Rendering is an offline rendering of the heuristic flow graph.
type Rendering struct {
	Format      string
	ContentType string
	Body        []byte
	// Degraded is set when the algorithm text could not be turned into a
	// graph and the minimal diagram was rendered instead.
	Degraded bool
}

// Text returns the body as a string for the text formats.
func (r *Rendering) Text() string { return string(r.Body) }

// IsText reports whether the body is printable text.
func (r *Rendering) IsText() bool {
	return r.Format == FormatMermaid || r.Format == FormatASCII
}

// Render draws the heuristic flow graph for algorithm text without calling the
// generator. An empty format means mermaid.
func (s *Service) Render(ctx context.Context, req schema.RenderRequest) (*Rendering, error) {
	ctx = withOperation(ctx, "render")
	if err := requireText("algorithm", req.Algorithm); err != nil {
		return nil, err
	}

	format := req.Format
	if format == "" {
		format = FormatMermaid
	}
	switch format {
	case FormatMermaid, FormatASCII, FormatPNG, FormatSVG:
	default:
		return nil, schema.NewErrorf(schema.ErrCodeInvalidRequest, "unsupported format %q", req.Format).
			WithDetails(map[string]any{"formats": []string{FormatMermaid, FormatASCII, FormatPNG, FormatSVG}})
	}

	g, degraded := diagram.FallbackGraph(req.Algorithm)
	if degraded != nil {
		logging.LogWith(ctx, s.logger).WarnContext(ctx, "fallback diagram degraded to minimal graph", "error", degraded)
	}

	out := &Rendering{Format: format, Degraded: degraded != nil}
	switch format {
	case FormatMermaid:
		out.ContentType = "text/plain; charset=utf-8"
		out.Body = []byte(diagram.RenderMermaid(g))
	case FormatASCII:
		out.ContentType = "text/plain; charset=utf-8"
		out.Body = []byte(diagram.RenderASCII(g))
	case FormatPNG, FormatSVG:
		img, err := diagram.RenderImage(ctx, g, diagram.ImageFormat(format))
		if err != nil {
			return nil, schema.NewErrorf(schema.ErrCodeGenerationFailed, "render %s", format).WithCause(err)
		}
		out.Body = img
		out.ContentType = "image/png"
		if format == FormatSVG {
			out.ContentType = "image/svg+xml"
		}
	}
	return out, nil
}

// ValidateDiagram prepares and checks externally supplied diagram text. A
// failed check is reported in the result, not as an error.
func (s *Service) ValidateDiagram(ctx context.Context, req schema.ValidateDiagramRequest) (*schema.ValidateDiagramResult, error) {
	if err := requireText("diagram", req.Diagram); err != nil {
		return nil, err
	}
	prepared, err := diagram.Check(req.Diagram)
	res := &schema.ValidateDiagramResult{Valid: err == nil, Diagram: prepared}
	if err != nil {
		res.Error = err.Error()
	}
	return res, nil
}
