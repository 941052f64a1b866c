// Package schema validates raw tool arguments against a tool's declared
// input schema before any handler logic or backend side effect runs.
//
// Validation is exhaustive: every violated constraint is collected so the
// caller can fix all problems in one round trip. Unknown extra fields are
// ignored for forward compatibility, and defaults declared in the schema
// are applied during normalization. Validate has no side effects and is
// idempotent on its own output.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mitchellh/mapstructure"
)

// ValidationError enumerates every constraint a call violated.
type ValidationError struct {
	Tool       string
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %s", e.Tool, strings.Join(e.Violations, "; "))
}

// Validate checks raw against the tool's input schema and returns the
// normalized argument map (declared fields only, defaults applied) or a
// *ValidationError listing every violation.
func Validate(tool mcp.Tool, raw map[string]any) (map[string]any, error) {
	if raw == nil {
		raw = map[string]any{}
	}

	required := map[string]bool{}
	for _, name := range tool.InputSchema.Required {
		required[name] = true
	}

	normalized := map[string]any{}
	var violations []string

	// Deterministic order keeps violation lists stable across calls.
	names := make([]string, 0, len(tool.InputSchema.Properties))
	for name := range tool.InputSchema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop, ok := tool.InputSchema.Properties[name].(map[string]any)
		if !ok {
			continue
		}

		value, present := raw[name]
		if !present || value == nil {
			if def, hasDefault := prop["default"]; hasDefault {
				normalized[name] = def
			} else if required[name] {
				violations = append(violations, fmt.Sprintf("missing required field %q", name))
			}
			continue
		}

		violations = append(violations, checkProperty(name, prop, value)...)
		normalized[name] = value
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Tool: tool.Name, Violations: violations}
	}
	return normalized, nil
}

// checkProperty validates one present value against its declared
// property schema, returning every violation it finds.
func checkProperty(name string, prop map[string]any, value any) []string {
	var violations []string

	declaredType, _ := prop["type"].(string)
	if declaredType != "" && !matchesType(value, declaredType) {
		violations = append(violations,
			fmt.Sprintf("field %q must be of type %s, got %T", name, declaredType, value))
		// Bounds and enum checks assume the declared type; stop here.
		return violations
	}

	if enum, ok := prop["enum"]; ok {
		if !inEnum(value, enum) {
			violations = append(violations,
				fmt.Sprintf("field %q must be one of %s", name, enumValues(enum)))
		}
	}

	switch declaredType {
	case "string":
		s, _ := value.(string)
		if min, ok := numericBound(prop["minLength"]); ok && float64(len(s)) < min {
			violations = append(violations,
				fmt.Sprintf("field %q must be at least %d characters", name, int(min)))
		}
		if max, ok := numericBound(prop["maxLength"]); ok && float64(len(s)) > max {
			violations = append(violations,
				fmt.Sprintf("field %q must be at most %d characters", name, int(max)))
		}
	case "number", "integer":
		n, _ := asFloat(value)
		if min, ok := numericBound(prop["minimum"]); ok && n < min {
			violations = append(violations,
				fmt.Sprintf("field %q must be >= %g", name, min))
		}
		if max, ok := numericBound(prop["maximum"]); ok && n > max {
			violations = append(violations,
				fmt.Sprintf("field %q must be <= %g", name, max))
		}
	}

	return violations
}

// matchesType checks a decoded JSON value against a JSON schema type.
func matchesType(value any, declaredType string) bool {
	switch declaredType {
	case "string":
		_, ok := value.(string)
		return ok
	case "number":
		_, ok := asFloat(value)
		return ok
	case "integer":
		n, ok := asFloat(value)
		return ok && n == float64(int64(n))
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	case "object":
		_, ok := value.(map[string]any)
		return ok
	}
	return true
}

// asFloat normalizes the numeric shapes JSON decoding and in-process
// callers produce.
func asFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func numericBound(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return asFloat(v)
}

func inEnum(value any, enum any) bool {
	switch values := enum.(type) {
	case []string:
		s, ok := value.(string)
		if !ok {
			return false
		}
		for _, v := range values {
			if v == s {
				return true
			}
		}
	case []any:
		for _, v := range values {
			if fmt.Sprint(v) == fmt.Sprint(value) {
				return true
			}
		}
	}
	return false
}

func enumValues(enum any) string {
	switch values := enum.(type) {
	case []string:
		return strings.Join(values, ", ")
	case []any:
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = fmt.Sprint(v)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(enum)
}

// Decode maps a normalized argument bag onto a typed struct using json
// tags. Handlers use it to recover compile-time checked inputs after
// Validate has run.
func Decode(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("building argument decoder: %w", err)
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("decoding arguments: %w", err)
	}
	return nil
}
