package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/manukrishna804/logic-solver-ai/internal/solver"
	"github.com/manukrishna804/logic-solver-ai/internal/validation"
	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

type indexData struct {
	schema.Health
	Version string
	Events  bool
}

func (s *Server) handleIndex(c *gin.Context) {
	data := indexData{
		Health:  s.deps.Service.Health(c.Request.Context()),
		Version: s.deps.Version,
		Events:  s.deps.Hub != nil,
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := s.index.Execute(c.Writer, data); err != nil {
		_ = c.Error(err)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	respondOK(c, s.deps.Service.Health(c.Request.Context()))
}

func (s *Server) handleAlgorithm(c *gin.Context) {
	var req schema.AlgorithmRequest
	if !s.bind(c, validation.SchemaAlgorithm, &req) {
		return
	}
	res, err := s.deps.Service.Algorithm(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, res)
}

func (s *Server) handleFlowchart(c *gin.Context) {
	var req schema.FlowchartRequest
	if !s.bind(c, validation.SchemaFlowchart, &req) {
		return
	}
	res, err := s.deps.Service.Flowchart(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, res)
}

func (s *Server) handleCode(c *gin.Context) {
	var req schema.CodeRequest
	if !s.bind(c, validation.SchemaCode, &req) {
		return
	}
	res, err := s.deps.Service.Code(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, res)
}

func (s *Server) handleClean(c *gin.Context) {
	var req schema.CleanRequest
	if !s.bind(c, validation.SchemaClean, &req) {
		return
	}
	res, err := s.deps.Service.Clean(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, res)
}

func (s *Server) handleRender(c *gin.Context) {
	var req schema.RenderRequest
	if !s.bind(c, validation.SchemaRender, &req) {
		return
	}
	out, err := s.deps.Service.Render(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	if out.Degraded {
		c.Header(DegradedHeader, "true")
	}
	c.Data(http.StatusOK, out.ContentType, out.Body)
}

func (s *Server) handleValidateDiagram(c *gin.Context) {
	var req schema.ValidateDiagramRequest
	if !s.bind(c, validation.SchemaValidateDiagram, &req) {
		return
	}
	res, err := s.deps.Service.ValidateDiagram(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, res)
}

// handleHistory serves GET /history?kind=&source=&limit=&offset=&jq=.
func (s *Server) handleHistory(c *gin.Context) {
	args := map[string]any{}
	for _, key := range []string{"kind", "source", "jq"} {
		if v, ok := c.GetQuery(key); ok {
			args[key] = v
		}
	}
	for _, key := range []string{"limit", "offset"} {
		v, ok := c.GetQuery(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(c, schema.NewErrorf(schema.ErrCodeInvalidRequest, "%s must be an integer", key))
			return
		}
		args[key] = n
	}
	if s.deps.Validator != nil {
		if err := s.deps.Validator.ValidateValue(validation.SchemaHistory, args); err != nil {
			respondError(c, err)
			return
		}
	}

	q := solver.HistoryQuery{
		Kind:   schema.Kind(c.Query("kind")),
		Source: schema.Source(c.Query("source")),
		JQ:     c.Query("jq"),
	}
	q.Limit, _ = args["limit"].(int)
	q.Offset, _ = args["offset"].(int)

	out, err := s.deps.Service.History(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, out)
}

func (s *Server) handleGeneration(c *gin.Context) {
	gen, err := s.deps.Service.Generation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gen)
}
