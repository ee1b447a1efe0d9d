// Package validation checks request payloads and the settings file against
// embedded JSON Schema (Draft 2020-12) documents.
package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema names, one per embedded document.
const (
	SchemaAlgorithm       = "algorithm"
	SchemaFlowchart       = "flowchart"
	SchemaCode            = "code"
	SchemaClean           = "clean"
	SchemaRender          = "render"
	SchemaValidateDiagram = "validate_diagram"
	SchemaHistory         = "history"
	SchemaSettings        = "settings"
)

const schemaBaseURL = "https://logicsolver.dev/schemas/"

// JSONSchemaValidator validates documents against the embedded schemas.
// All schemas are compiled once at construction; it is safe for concurrent use.
type JSONSchemaValidator struct {
	schemas map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator compiles every embedded schema.
func NewJSONSchemaValidator() (*JSONSchemaValidator, error) {
	entries, err := fs.ReadDir(schemaFS, "schemas")
	if err != nil {
		return nil, fmt.Errorf("read schemas: %w", err)
	}

	c := jsonschema.NewCompiler()
	c.AssertFormat()

	var names []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		data, err := schemaFS.ReadFile(path.Join("schemas", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("unmarshal schema %s: %w", e.Name(), err)
		}
		name := strings.TrimSuffix(e.Name(), ".json")
		if err := c.AddResource(schemaBaseURL+e.Name(), doc); err != nil {
			return nil, fmt.Errorf("add schema resource %s: %w", e.Name(), err)
		}
		names = append(names, name)
	}

	v := &JSONSchemaValidator{schemas: make(map[string]*jsonschema.Schema, len(names))}
	for _, name := range names {
		sch, err := c.Compile(schemaBaseURL + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		v.schemas[name] = sch
	}
	return v, nil
}

// Names lists the compiled schema names in sorted order.
func (v *JSONSchemaValidator) Names() []string {
	out := make([]string, 0, len(v.schemas))
	for name := range v.schemas {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ValidateJSON validates a raw JSON document against the named schema.
func (v *JSONSchemaValidator) ValidateJSON(name string, raw []byte) error {
	sch, err := v.lookup(name)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return schema.NewError(schema.ErrCodeInvalidRequest, "request body is required")
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return schema.NewError(schema.ErrCodeInvalidRequest, "request body is not valid JSON").WithCause(err)
	}
	if err := sch.Validate(doc); err != nil {
		return toSchemaError(name, err)
	}
	return nil
}

// ValidateValue validates a Go value (a decoded map, a request struct)
// against the named schema.
func (v *JSONSchemaValidator) ValidateValue(name string, value any) error {
	sch, err := v.lookup(name)
	if err != nil {
		return err
	}
	if value == nil {
		return schema.NewError(schema.ErrCodeInvalidRequest, "request is nil")
	}
	doc, err := toJSONValue(value)
	if err != nil {
		return schema.NewError(schema.ErrCodeInvalidRequest, "failed to serialize request").WithCause(err)
	}
	if err := sch.Validate(doc); err != nil {
		return toSchemaError(name, err)
	}
	return nil
}

func (v *JSONSchemaValidator) lookup(name string) (*jsonschema.Schema, error) {
	sch, ok := v.schemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}
	return sch, nil
}

// toJSONValue round-trips a Go value through JSON encoding/decoding so that
// numeric values become json.Number (required by the jsonschema library).
func toJSONValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(b))
}

// toSchemaError converts a jsonschema.ValidationError into an INVALID_REQUEST
// error listing every violation with its instance location.
func toSchemaError(name string, err error) *schema.Error {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return schema.NewError(schema.ErrCodeInvalidRequest, err.Error())
	}

	violations := collectViolations(verr)
	details := map[string]any{"schema": name, "violations": violations}
	switch len(violations) {
	case 0:
		return schema.NewError(schema.ErrCodeInvalidRequest, verr.Error()).WithDetails(details)
	case 1:
		return schema.NewError(schema.ErrCodeInvalidRequest, violations[0]).WithDetails(details)
	default:
		return schema.NewErrorf(schema.ErrCodeInvalidRequest,
			"validation failed with %d errors", len(violations)).WithDetails(details)
	}
}

// collectViolations walks a ValidationError tree and collects leaf messages.
func collectViolations(verr *jsonschema.ValidationError) []string {
	if len(verr.Causes) == 0 {
		loc := "/" + strings.Join(verr.InstanceLocation, "/")
		return []string{fmt.Sprintf("%s: %s", loc, leafMessage(verr))}
	}

	var violations []string
	for _, cause := range verr.Causes {
		violations = append(violations, collectViolations(cause)...)
	}
	return violations
}

// leafMessage returns the last line of a leaf error, which holds the
// human-readable reason without the schema URL preamble.
func leafMessage(verr *jsonschema.ValidationError) string {
	msg := strings.TrimSpace(verr.Error())
	if i := strings.LastIndex(msg, "\n"); i >= 0 {
		msg = strings.TrimSpace(msg[i+1:])
	}
	return strings.TrimPrefix(msg, "- ")
}
