package form

import "strings"

// candidateKeys are the top-level parameter keys scanned for a nested form
// object when no explicit key is configured, in priority order.
var candidateKeys = []string{"commission", "contact", "inquiry", "message", "form"}

// Fields is the canonical triple pulled out of a submission. Any field may
// be empty when the submission did not carry it.
type Fields struct {
	Name    string
	Email   string
	Message string
}

// Complete reports whether all three fields are non-blank after trimming.
func (f Fields) Complete() bool {
	return strings.TrimSpace(f.Name) != "" &&
		strings.TrimSpace(f.Email) != "" &&
		strings.TrimSpace(f.Message) != ""
}

// Extractor locates form fields inside a parameter tree.
type Extractor struct {
	formParam string
}

// NewExtractor creates an extractor. formParam optionally names the
// top-level key holding the form object; when empty the candidate keys are
// scanned instead.
func NewExtractor(formParam string) *Extractor {
	return &Extractor{formParam: formParam}
}

// Extract finds the triple. An explicit form param wins when it holds a
// nested object; otherwise the first candidate key holding one is used;
// otherwise the top level itself is treated as the form (flat fallback).
func (e *Extractor) Extract(params Nested) Fields {
	if e.formParam != "" {
		if nested, ok := params[e.formParam].(Nested); ok {
			return extractFrom(nested)
		}
	}

	for _, key := range candidateKeys {
		if nested, ok := params[key].(Nested); ok {
			return extractFrom(nested)
		}
	}

	return extractFrom(params)
}

func extractFrom(params Nested) Fields {
	name := scalar(params, "name")
	if name == "" {
		name = strings.TrimSpace(scalar(params, "first_name") + " " + scalar(params, "last_name"))
	}

	message := scalar(params, "message")
	if message == "" {
		message = scalar(params, "body")
	}
	if message == "" {
		message = scalar(params, "content")
	}

	return Fields{
		Name:    name,
		Email:   scalar(params, "email"),
		Message: message,
	}
}

func scalar(params Nested, key string) string {
	if s, ok := params[key].(Scalar); ok {
		return string(s)
	}
	return ""
}
