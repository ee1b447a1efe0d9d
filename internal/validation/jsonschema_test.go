package validation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

func newValidator(t *testing.T) *JSONSchemaValidator {
	t.Helper()
	v, err := NewJSONSchemaValidator()
	require.NoError(t, err)
	return v
}

func violations(t *testing.T, err error) []string {
	t.Helper()
	var se *schema.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, schema.ErrCodeInvalidRequest, se.Code)
	require.Contains(t, se.Details, "violations")
	vs, ok := se.Details["violations"].([]string)
	require.True(t, ok)
	return vs
}

func TestNewJSONSchemaValidator(t *testing.T) {
	v := newValidator(t)
	assert.Equal(t, []string{
		SchemaAlgorithm, SchemaClean, SchemaCode, SchemaFlowchart,
		SchemaHistory, SchemaRender, SchemaSettings, SchemaValidateDiagram,
	}, v.Names())
}

func TestValidateJSON_ValidRequests(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		schema string
		body   string
	}{
		{SchemaAlgorithm, `{"coding_question": "Check if a number is even"}`},
		{SchemaAlgorithm, `{}`},
		{SchemaFlowchart, `{"algorithm": "1. Start\n2. End"}`},
		{SchemaCode, `{"algorithm": "1. Read n", "language": "C++"}`},
		{SchemaCode, `{"algorithm": "1. Read n", "language": "c#"}`},
		{SchemaClean, `{"code": "print(1)", "language": "python"}`},
		{SchemaRender, `{"algorithm": "1. Read n", "format": "png"}`},
		{SchemaRender, `{"algorithm": "1. Read n", "format": ""}`},
		{SchemaValidateDiagram, `{"diagram": "flowchart TD\n    A --> B"}`},
		{SchemaHistory, `{"kind": "flowchart", "limit": 10, "jq": "map(.id)"}`},
		{SchemaAlgorithm, `{"coding_question": "x", "extra": true}`},
	}
	for _, tt := range tests {
		t.Run(tt.schema, func(t *testing.T) {
			assert.NoError(t, v.ValidateJSON(tt.schema, []byte(tt.body)))
		})
	}
}

func TestValidateJSON_WrongType(t *testing.T) {
	v := newValidator(t)
	err := v.ValidateJSON(SchemaAlgorithm, []byte(`{"coding_question": 42}`))
	vs := violations(t, err)
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0], "/coding_question")
}

func TestValidateJSON_UnknownFormat(t *testing.T) {
	v := newValidator(t)
	err := v.ValidateJSON(SchemaRender, []byte(`{"algorithm": "1. x", "format": "gif"}`))
	vs := violations(t, err)
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0], "/format")
}

func TestValidateJSON_BadLanguage(t *testing.T) {
	v := newValidator(t)
	err := v.ValidateJSON(SchemaCode, []byte(`{"algorithm": "1. x", "language": "python; rm -rf /"}`))
	vs := violations(t, err)
	assert.Contains(t, vs[0], "/language")
}

func TestValidateJSON_MultipleViolations(t *testing.T) {
	v := newValidator(t)
	err := v.ValidateJSON(SchemaHistory, []byte(`{"kind": "poem", "limit": -1}`))
	vs := violations(t, err)
	assert.Len(t, vs, 2)

	var se *schema.Error
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Message, "2 errors")
	assert.Equal(t, SchemaHistory, se.Details["schema"])
}

func TestValidateJSON_HistoryRejectsUnknownField(t *testing.T) {
	v := newValidator(t)
	err := v.ValidateJSON(SchemaHistory, []byte(`{"sort": "asc"}`))
	assert.True(t, schema.IsCode(err, schema.ErrCodeInvalidRequest))
}

func TestValidateJSON_NotAnObject(t *testing.T) {
	v := newValidator(t)
	err := v.ValidateJSON(SchemaFlowchart, []byte(`["1. Start"]`))
	assert.True(t, schema.IsCode(err, schema.ErrCodeInvalidRequest))
}

func TestValidateJSON_EmptyBody(t *testing.T) {
	v := newValidator(t)
	err := v.ValidateJSON(SchemaFlowchart, []byte("  "))
	require.Error(t, err)
	assert.True(t, schema.IsCode(err, schema.ErrCodeInvalidRequest))
	assert.Contains(t, err.Error(), "required")
}

func TestValidateJSON_MalformedBody(t *testing.T) {
	v := newValidator(t)
	err := v.ValidateJSON(SchemaFlowchart, []byte(`{"algorithm": `))
	assert.True(t, schema.IsCode(err, schema.ErrCodeInvalidRequest))
}

func TestValidateJSON_UnknownSchema(t *testing.T) {
	v := newValidator(t)
	err := v.ValidateJSON("poem", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestValidateValue_Struct(t *testing.T) {
	v := newValidator(t)
	assert.NoError(t, v.ValidateValue(SchemaRender, schema.RenderRequest{Algorithm: "1. x", Format: "svg"}))

	err := v.ValidateValue(SchemaRender, schema.RenderRequest{Algorithm: "1. x", Format: "bmp"})
	assert.True(t, schema.IsCode(err, schema.ErrCodeInvalidRequest))
}

func TestValidateValue_MapFromToolArguments(t *testing.T) {
	v := newValidator(t)
	assert.NoError(t, v.ValidateValue(SchemaHistory, map[string]any{"limit": float64(5)}))

	err := v.ValidateValue(SchemaHistory, map[string]any{"limit": 2.5})
	assert.True(t, schema.IsCode(err, schema.ErrCodeInvalidRequest))
}

func TestValidateValue_Nil(t *testing.T) {
	v := newValidator(t)
	err := v.ValidateValue(SchemaClean, nil)
	assert.True(t, schema.IsCode(err, schema.ErrCodeInvalidRequest))
}

func TestValidateJSON_Settings(t *testing.T) {
	v := newValidator(t)

	valid := `{
		"listen_addr": ":8080",
		"log_level": "debug",
		"retention": "168h",
		"allowed_origins": ["http://localhost:3000"],
		"retry": {"max": 3, "backoff": "linear", "delay": "250ms"},
		"breaker_threshold": 2,
		"breaker_cooldown": "1m30s"
	}`
	assert.NoError(t, v.ValidateJSON(SchemaSettings, []byte(valid)))

	tests := map[string]string{
		"bad duration":  `{"retention": "thirty days"}`,
		"bad level":     `{"log_level": "loud"}`,
		"unknown field": `{"api_key": "secret"}`,
		"retry no max":  `{"retry": {"backoff": "linear"}}`,
		"zero breaker":  `{"breaker_threshold": 0}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			err := v.ValidateJSON(SchemaSettings, []byte(body))
			assert.True(t, schema.IsCode(err, schema.ErrCodeInvalidRequest))
		})
	}
}

func TestValidator_Concurrent(t *testing.T) {
	v := newValidator(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, v.ValidateJSON(SchemaFlowchart, []byte(`{"algorithm": "1. x"}`)))
			assert.Error(t, v.ValidateJSON(SchemaFlowchart, []byte(`{"algorithm": 1}`)))
		}()
	}
	wg.Wait()
}
