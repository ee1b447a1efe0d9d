package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// statusFor maps an error code to its HTTP status.
func statusFor(code string) int {
	switch code {
	case schema.ErrCodeEmptyInput, schema.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case schema.ErrCodeNotFound:
		return http.StatusNotFound
	case schema.ErrCodeCircuitOpen:
		return http.StatusServiceUnavailable
	case schema.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	var se *schema.Error
	if !errors.As(err, &se) {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorBody{Error: "internal server error"})
		return
	}
	c.JSON(statusFor(se.Code), ErrorBody{Error: se.Message, Code: se.Code, Details: se.Details})
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// bind reads the request body, validates it against the named schema and
// decodes it into dst. On failure the error response is already written.
func (s *Server) bind(c *gin.Context, schemaName string, dst any) bool {
	raw, err := c.GetRawData()
	if err != nil {
		respondError(c, schema.NewError(schema.ErrCodeInvalidRequest, "failed to read request body").WithCause(err))
		return false
	}
	if s.deps.Validator != nil {
		if err := s.deps.Validator.ValidateJSON(schemaName, raw); err != nil {
			respondError(c, err)
			return false
		}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		respondError(c, schema.NewError(schema.ErrCodeInvalidRequest, "request body is not valid JSON").WithCause(err))
		return false
	}
	return true
}
