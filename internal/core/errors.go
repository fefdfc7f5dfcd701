package core

import "fmt"

// ConfigurationError is returned when the client is constructed with
// missing or empty credentials. It is never produced by a network call.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// ValidationError carries per-field validation messages. StatusCode is zero
// for local validation failures (no request was sent) and 422 when the API
// rejected the submission.
type ValidationError struct {
	Message    string
	Errors     map[string][]string
	StatusCode int
	Body       string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Errors)
}

// RateLimitError is returned for 429 responses.
type RateLimitError struct {
	Message    string
	StatusCode int
	Body       string
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// APIError covers every other failure: non-2xx statuses, transport errors,
// timeouts, and unparseable success bodies. Body holds the raw response
// body when one was received.
type APIError struct {
	Message    string
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
