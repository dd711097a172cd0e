// schema.go implements declarative argument contracts for tools.
//
// A Schema is plain data. The same Schema drives both validation (Check) and
// the MCP input schema advertised to clients (see internal/mcp).

package validate

import (
	"fmt"
	"net/url"
	"strings"
)

// Kind is the JSON type a field must have.
type Kind int

const (
	String Kind = iota
	StringArray
	Boolean
	Number
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case StringArray:
		return "array of strings"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	default:
		return "unknown"
	}
}

// Field describes one argument.
type Field struct {
	Name        string
	Kind        Kind
	Required    bool
	Description string

	// String constraints.
	MinLen        int    // minimum length in bytes (0 = none)
	MinLenMessage string // message when MinLen fails; defaults to a generic one
	URL           bool   // must be an absolute URL with scheme and host
}

// Schema is an ordered list of fields.
type Schema struct {
	Fields []Field
}

// Args holds arguments that passed Check. Accessors return zero values for
// absent optional fields.
type Args map[string]any

// String returns a string argument.
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Strings returns a string-array argument.
func (a Args) Strings(name string) []string {
	s, _ := a[name].([]string)
	return s
}

// Bool returns a boolean argument.
func (a Args) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// Number returns a numeric argument. JSON numbers decode as float64.
func (a Args) Number(name string) float64 {
	n, _ := a[name].(float64)
	return n
}

// Has reports whether the argument was supplied.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Check validates raw against the schema. All violations are reported,
// joined by "; ", in field order.
func (s Schema) Check(raw map[string]any) (Args, error) {
	args := make(Args, len(s.Fields))
	var problems []string

	for _, f := range s.Fields {
		v, ok := raw[f.Name]
		if !ok || v == nil {
			if f.Required {
				problems = append(problems, f.Name+": required")
			}
			continue
		}

		val, problem := f.check(v)
		if problem != "" {
			problems = append(problems, f.Name+": "+problem)
			continue
		}
		args[f.Name] = val
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArguments, strings.Join(problems, "; "))
	}
	return args, nil
}

// check validates a single present value and returns it in its Go form.
func (f Field) check(v any) (any, string) {
	switch f.Kind {
	case String:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Sprintf("expected string, got %s", typeName(v))
		}
		if f.MinLen > 0 && len(s) < f.MinLen {
			if f.MinLenMessage != "" {
				return nil, f.MinLenMessage
			}
			return nil, fmt.Sprintf("must be at least %d characters", f.MinLen)
		}
		if f.URL && !isURL(s) {
			return nil, "Invalid URL format."
		}
		return s, ""

	case StringArray:
		// Callers in Go may pass []string directly; JSON decodes to []any.
		if ss, ok := v.([]string); ok {
			return ss, ""
		}
		arr, ok := v.([]any)
		if !ok {
			return nil, fmt.Sprintf("expected array of strings, got %s", typeName(v))
		}
		out := make([]string, len(arr))
		for i, item := range arr {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Sprintf("[%d]: expected string, got %s", i, typeName(item))
			}
			out[i] = s
		}
		return out, ""

	case Boolean:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Sprintf("expected boolean, got %s", typeName(v))
		}
		return b, ""

	case Number:
		switch n := v.(type) {
		case float64:
			return n, ""
		case int:
			return float64(n), ""
		}
		return nil, fmt.Sprintf("expected number, got %s", typeName(v))
	}
	return nil, "unsupported field kind"
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
