// Package form models submitted request parameters as a tagged tree and
// locates the canonical (name, email, message) triple inside it without
// knowledge of the submitter's form schema.
package form

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ParamValue is one node in a submitted parameter tree: either a Scalar
// string or a Nested set of parameters.
type ParamValue interface {
	isParamValue()
}

// Scalar is a leaf parameter value.
type Scalar string

func (Scalar) isParamValue() {}

// Nested is a parameter object containing further parameters.
type Nested map[string]ParamValue

func (Nested) isParamValue() {}

// FromJSON decodes a JSON object into a parameter tree. Non-object leaves
// are stringified the way a form post would carry them.
func FromJSON(data []byte) (Nested, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode parameters: %w", err)
	}
	return fromMap(raw), nil
}

func fromMap(m map[string]interface{}) Nested {
	out := make(Nested, len(m))
	for key, value := range m {
		out[key] = fromValue(value)
	}
	return out
}

func fromValue(value interface{}) ParamValue {
	switch v := value.(type) {
	case map[string]interface{}:
		return fromMap(v)
	case string:
		return Scalar(v)
	case nil:
		return Scalar("")
	case bool:
		return Scalar(strconv.FormatBool(v))
	case float64:
		return Scalar(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return Scalar(fmt.Sprint(v))
	}
}

// FromValues decodes url.Values with Rails-style bracket keys, so
// "contact[name]=J" becomes {contact: {name: "J"}}. Repeated keys keep the
// first value.
func FromValues(values url.Values) Nested {
	out := Nested{}
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		insert(out, splitBracketKey(key), vals[0])
	}
	return out
}

// splitBracketKey turns "contact[name]" into ["contact", "name"]. Empty
// segments from array-style keys ("tags[]") are dropped.
func splitBracketKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return []string{key}
	}

	segments := []string{key[:open]}
	rest := key[open:]
	for len(rest) > 0 {
		if rest[0] != '[' {
			break
		}
		close := strings.IndexByte(rest, ']')
		if close < 0 {
			segments = append(segments, rest[1:])
			break
		}
		if seg := rest[1:close]; seg != "" {
			segments = append(segments, seg)
		}
		rest = rest[close+1:]
	}
	return segments
}

func insert(params Nested, path []string, value string) {
	if len(path) == 0 {
		return
	}
	if len(path) == 1 {
		params[path[0]] = Scalar(value)
		return
	}

	child, ok := params[path[0]].(Nested)
	if !ok {
		child = Nested{}
		params[path[0]] = child
	}
	insert(child, path[1:], value)
}
