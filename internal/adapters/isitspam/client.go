// Package isitspam implements the core.SpamChecker port against the
// is-it-spam.com REST API.
package isitspam

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/its-bede/is-it-spam-go/internal/core"
	"github.com/its-bede/is-it-spam-go/internal/version"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://is-it-spam.com"

	// DefaultTimeout bounds one full request/response cycle.
	DefaultTimeout = 30 * time.Second

	checkPath  = "/api/v1/spam_checks"
	healthPath = "/up"
)

// Deliberately minimal: exactly one @, no whitespace, non-empty parts.
// The API applies the same check server-side; do not tighten.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

// Client is a thin HTTP client for the spam check API. It owns immutable
// copies of its credentials and is safe for concurrent use.
type Client struct {
	apiKey     string
	apiSecret  string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	userAgent  string
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. A trailing slash is stripped.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying transport entirely.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger attaches a logger for debug-level request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client. Both credentials are required; the key is
// checked before the secret so the error names the first missing one.
func NewClient(apiKey, apiSecret string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &core.ConfigurationError{Message: "API key is required"}
	}
	if strings.TrimSpace(apiSecret) == "" {
		return nil, &core.ConfigurationError{Message: "API secret is required"}
	}

	c := &Client{
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
		userAgent:  version.UserAgent(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseURL = strings.TrimSuffix(c.baseURL, "/")

	return c, nil
}

// checkRequest is the wire shape of the POST body.
type checkRequest struct {
	SpamCheck checkParams `json:"spam_check"`
}

type checkParams struct {
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	Message          string            `json:"message"`
	AdditionalFields map[string]string `json:"additional_fields"`
	EndUserIP        string            `json:"end_user_ip,omitempty"`
}

// checkResponse is the wire shape of a successful response.
type checkResponse struct {
	Spam       bool       `json:"spam"`
	Confidence confidence `json:"confidence"`
	Reasons    []string   `json:"reasons"`
}

// confidence accepts both numeric and numeric-string encodings. Anything
// else fails the parse rather than defaulting to zero.
type confidence float64

func (v *confidence) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > 0 && s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		s = unquoted
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("confidence %q is not numeric", s)
	}
	*v = confidence(f)
	return nil
}

// errorResponse is the wire shape of API error bodies.
type errorResponse struct {
	Error  string              `json:"error"`
	Errors map[string][]string `json:"errors"`
}

// CheckSpam classifies one submission. Invalid input fails locally with a
// ValidationError before any request is sent.
func (c *Client) CheckSpam(ctx context.Context, req *core.SpamCheckRequest) (*core.SpamCheckResult, error) {
	if fieldErrors := validate(req); len(fieldErrors) > 0 {
		return nil, &core.ValidationError{
			Message: "Validation failed",
			Errors:  fieldErrors,
		}
	}

	customFields := req.CustomFields
	if customFields == nil {
		customFields = map[string]string{}
	}
	body, err := json.Marshal(checkRequest{
		SpamCheck: checkParams{
			Name:             req.Name,
			Email:            req.Email,
			Message:          req.Message,
			AdditionalFields: customFields,
			EndUserIP:        req.EndUserIP,
		},
	})
	if err != nil {
		return nil, &core.APIError{Message: "API request failed", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+checkPath, bytes.NewReader(body))
	if err != nil {
		return nil, &core.APIError{Message: "API request failed", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.setAuthHeaders(httpReq)

	status, raw, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	if status >= 200 && status < 300 {
		return parseResult(status, raw)
	}
	return nil, c.statusError(status, raw)
}

// HealthCheck probes GET /up. A 503 means the service declared itself
// unavailable, which is a healthy "no", not an error.
func (c *Client) HealthCheck(ctx context.Context) (bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return false, &core.APIError{Message: "API request failed", Err: err}
	}
	c.setAuthHeaders(httpReq)

	status, raw, err := c.do(httpReq)
	if err != nil {
		return false, err
	}

	switch {
	case status >= 200 && status < 300:
		return true, nil
	case status == http.StatusServiceUnavailable:
		return false, nil
	default:
		return false, c.statusError(status, raw)
	}
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("X-API-Secret", c.apiSecret)
	req.Header.Set("User-Agent", c.userAgent)
}

// do runs the request and reads the full body. Transport failures,
// including timeouts, surface as APIError like any other request failure.
func (c *Client) do(req *http.Request) (int, []byte, error) {
	c.logger.Debug("Sending API request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &core.APIError{Message: "API request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &core.APIError{Message: "API request failed", StatusCode: resp.StatusCode, Err: err}
	}

	c.logger.Debug("Received API response",
		zap.Int("status", resp.StatusCode),
		zap.Int("body_size", len(raw)))

	return resp.StatusCode, raw, nil
}

// statusError maps a non-2xx status onto the error taxonomy.
func (c *Client) statusError(status int, raw []byte) error {
	switch {
	case status == http.StatusNotFound:
		// Body deliberately ignored; a 404 here is a routing problem,
		// not an API-level message.
		return &core.APIError{Message: "Endpoint not found", StatusCode: status, Body: string(raw)}
	case status == http.StatusUnprocessableEntity:
		message, fieldErrors := parseValidationBody(raw)
		return &core.ValidationError{
			Message:    message,
			Errors:     fieldErrors,
			StatusCode: status,
			Body:       string(raw),
		}
	case status == http.StatusTooManyRequests:
		return &core.RateLimitError{Message: errorMessage(raw), StatusCode: status, Body: string(raw)}
	case status == http.StatusBadRequest, status == http.StatusUnauthorized, status >= 500 && status < 600:
		return &core.APIError{Message: errorMessage(raw), StatusCode: status, Body: string(raw)}
	default:
		return &core.APIError{
			Message:    fmt.Sprintf("Unexpected response code: %d", status),
			StatusCode: status,
			Body:       string(raw),
		}
	}
}

func parseResult(status int, raw []byte) (*core.SpamCheckResult, error) {
	var resp checkResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &core.APIError{Message: "API request failed", StatusCode: status, Body: string(raw), Err: err}
	}
	return core.NewSpamCheckResult(resp.Spam, float64(resp.Confidence), resp.Reasons), nil
}

// errorMessage extracts the "error" field from an API error body, falling
// back to a generic message when the body is not usable JSON.
func errorMessage(raw []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(raw, &resp); err != nil || resp.Error == "" {
		return "API request failed"
	}
	return resp.Error
}

func parseValidationBody(raw []byte) (string, map[string][]string) {
	message := "Validation failed"
	fieldErrors := map[string][]string{}

	var resp errorResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return message, fieldErrors
	}
	if resp.Error != "" {
		message = resp.Error
	}
	if resp.Errors != nil {
		fieldErrors = resp.Errors
	}
	return message, fieldErrors
}

// validate collects every violation; it never short-circuits. The format
// check only applies to a non-blank email since a blank one already carries
// its own message.
func validate(req *core.SpamCheckRequest) map[string][]string {
	fieldErrors := map[string][]string{}

	if strings.TrimSpace(req.Name) == "" {
		fieldErrors["name"] = append(fieldErrors["name"], "can't be blank")
	}
	if strings.TrimSpace(req.Email) == "" {
		fieldErrors["email"] = append(fieldErrors["email"], "can't be blank")
	} else if !emailPattern.MatchString(req.Email) {
		fieldErrors["email"] = append(fieldErrors["email"], "is not a valid email address")
	}
	if strings.TrimSpace(req.Message) == "" {
		fieldErrors["message"] = append(fieldErrors["message"], "can't be blank")
	}

	return fieldErrors
}
