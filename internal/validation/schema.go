package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"

	"golang.org/x/text/unicode/norm"

	domainerrors "github.com/bookcatalog/catalog-server/internal/errors"
)

// bodyField keys violations that belong to the payload as a whole.
const bodyField = "body"

type kind int

const (
	kindString kind = iota
	kindInteger
)

type field struct {
	name     string
	kind     kind
	required bool
}

// schema describes the structural shape of one payload.
type schema struct {
	fields []field
	// strict rejects keys that are not listed in fields.
	strict bool
}

var (
	authorSchema = schema{
		fields: []field{
			{name: "name", kind: kindString, required: true},
			{name: "bio", kind: kindString, required: true},
		},
		strict: true,
	}

	bookSchema = schema{
		fields: []field{
			{name: "author_id", kind: kindString, required: true},
			{name: "title", kind: kindString, required: true},
			{name: "pub_year", kind: kindInteger, required: true},
			{name: "genre", kind: kindString, required: true},
		},
		strict: true,
	}

	bookUpdateSchema = schema{
		fields: []field{
			{name: "author_id", kind: kindString},
			{name: "title", kind: kindString},
			{name: "pub_year", kind: kindInteger},
			{name: "genre", kind: kindString},
		},
		strict: true,
	}

	loginSchema = schema{
		fields: []field{
			{name: "username", kind: kindString, required: true},
			{name: "password", kind: kindString, required: true},
		},
	}
)

// values holds the fields that passed the structural check, already converted.
type values map[string]any

func (v values) str(name string) string {
	s, _ := v[name].(string)
	return s
}

func (v values) strPtr(name string) *string {
	s, ok := v[name].(string)
	if !ok {
		return nil
	}
	return &s
}

func (v values) integer(name string) int {
	n, _ := v[name].(int)
	return n
}

func (v values) integerPtr(name string) *int {
	n, ok := v[name].(int)
	if !ok {
		return nil
	}
	return &n
}

// check runs the structural pass. It returns the converted values of fields
// that passed and a message for every field that did not.
func (s schema) check(raw map[string]any) (values, map[string]string) {
	out := make(values, len(s.fields))
	problems := make(map[string]string)

	if s.strict {
		known := make(map[string]struct{}, len(s.fields))
		for _, f := range s.fields {
			known[f.name] = struct{}{}
		}
		for key := range raw {
			if _, ok := known[key]; !ok {
				problems[key] = "is not an allowed field"
			}
		}
	}

	for _, f := range s.fields {
		rv, present := raw[f.name]
		if !present {
			if f.required {
				problems[f.name] = "is required"
			}
			continue
		}

		switch f.kind {
		case kindString:
			str, ok := rv.(string)
			if !ok {
				problems[f.name] = "must be a string"
				continue
			}
			out[f.name] = norm.NFC.String(str)
		case kindInteger:
			n, ok := toInt(rv)
			if !ok {
				problems[f.name] = "must be an integer"
				continue
			}
			out[f.name] = n
		}
	}

	return out, problems
}

// anyPresent reports whether raw carries at least one of the schema's fields.
func (s schema) anyPresent(raw map[string]any) bool {
	for _, f := range s.fields {
		if _, ok := raw[f.name]; ok {
			return true
		}
	}
	return false
}

// toInt accepts JSON numbers with an integral value. 1917 and 1917.0 are the
// same number in JSON.
func toInt(v any) (int, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), i >= math.MinInt32 && i <= math.MaxInt32
		}
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case int:
		return n, true
	default:
		return 0, false
	}

	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// DecodeJSON decodes a request body into a raw field map for validation.
// An empty body decodes to an empty map so that presence checks report every
// missing field.
func DecodeJSON(body []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, domainerrors.Validation("request body is not valid JSON").WithCause(err)
	}
	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		return nil, domainerrors.Validation("request body must contain a single JSON object")
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, domainerrors.ValidationWithDetails(
			"request body must be a JSON object",
			map[string]string{bodyField: "must be a JSON object"},
		)
	}
	return obj, nil
}
