// Package gate provides the fail-open HTTP middleware that runs a spam
// check against submitted form parameters before the protected handler.
package gate

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/its-bede/is-it-spam-go/internal/core"
	"github.com/its-bede/is-it-spam-go/internal/form"
)

// maxBodyBytes bounds how much of a request body the gate will buffer for
// parameter extraction.
const maxBodyBytes = 1 << 20

// SpamHandling configures automatic handling of spam verdicts. When nil,
// the gate runs in manual mode: the verdict is attached to the request and
// the protected handler decides.
type SpamHandling struct {
	Redirect RedirectTarget
	Notice   string
	Alert    string
}

// Options configure a Gate.
type Options struct {
	// FormParam optionally names the top-level parameter key holding the
	// form object.
	FormParam string

	// OnSpam enables automatic redirect handling.
	OnSpam *SpamHandling

	// TrackEndUserIP forwards the client IP with each check.
	TrackEndUserIP bool
}

// Gate is the middleware. Any failure in the check path is logged and
// swallowed; the protected handler always runs unless a spam verdict with
// automatic handling short-circuits it.
type Gate struct {
	service    *core.SpamCheckService
	extractor  *form.Extractor
	redirector Redirector
	logger     *zap.Logger
	opts       Options
}

// New creates a gate around the given service. A nil redirector gets the
// cookie-based default.
func New(service *core.SpamCheckService, redirector Redirector, logger *zap.Logger, opts Options) *Gate {
	if redirector == nil {
		redirector = NewCookieRedirector()
	}
	return &Gate{
		service:    service,
		extractor:  form.NewExtractor(opts.FormParam),
		redirector: redirector,
		logger:     logger,
		opts:       opts,
	}
}

type resultKey struct{}

// ResultFrom returns the spam check result attached to the request by the
// gate, if a check completed.
func ResultFrom(r *http.Request) (*core.SpamCheckResult, bool) {
	result, ok := r.Context().Value(resultKey{}).(*core.SpamCheckResult)
	return result, ok
}

// Middleware wraps a handler with the spam check.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := g.requestParams(r)
		if params == nil {
			next.ServeHTTP(w, r)
			return
		}

		fields := g.extractor.Extract(params)
		if !fields.Complete() {
			// Incomplete submissions are simply not checked.
			next.ServeHTTP(w, r)
			return
		}

		req := &core.SpamCheckRequest{
			Name:    fields.Name,
			Email:   fields.Email,
			Message: fields.Message,
		}
		if g.opts.TrackEndUserIP {
			req.EndUserIP = clientIP(r)
		}

		result, err := g.service.Check(r.Context(), req)
		if err != nil {
			g.logCheckError(err)
			next.ServeHTTP(w, r)
			return
		}

		r = r.WithContext(context.WithValue(r.Context(), resultKey{}, result))

		if result.Spam() && g.opts.OnSpam != nil {
			g.redirector.Redirect(w, r, g.opts.OnSpam.Redirect.Resolve(), Flash{
				Notice: g.opts.OnSpam.Notice,
				Alert:  g.opts.OnSpam.Alert,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requestParams buffers the body, restores it for the next handler, and
// decodes it into a parameter tree. Unsupported content types and decode
// failures yield nil, which the caller treats as "nothing to check".
func (g *Gate) requestParams(r *http.Request) form.Nested {
	if r.Body == nil {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	_ = r.Body.Close()
	if err != nil {
		g.logger.Warn("Failed to read request body for spam check", zap.Error(err))
		r.Body = io.NopCloser(bytes.NewReader(nil))
		return nil
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	if len(body) == 0 {
		return nil
	}

	contentType := r.Header.Get("Content-Type")
	if idx := strings.IndexByte(contentType, ';'); idx >= 0 {
		contentType = contentType[:idx]
	}
	contentType = strings.TrimSpace(contentType)

	switch contentType {
	case "application/json":
		params, err := form.FromJSON(body)
		if err != nil {
			g.logger.Debug("Request body is not a JSON object, skipping spam check", zap.Error(err))
			return nil
		}
		return params
	case "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(body))
		if err != nil {
			g.logger.Debug("Request body is not form-encoded, skipping spam check", zap.Error(err))
			return nil
		}
		return form.FromValues(values)
	default:
		return nil
	}
}

// logCheckError applies the fail-open logging policy: expected API-side
// conditions at warn, everything else at error.
func (g *Gate) logCheckError(err error) {
	var validationErr *core.ValidationError
	var rateLimitErr *core.RateLimitError

	switch {
	case errors.As(err, &validationErr):
		g.logger.Warn("Spam check validation failed", zap.Error(err))
	case errors.As(err, &rateLimitErr):
		g.logger.Warn("Spam check rate limited", zap.Error(err))
	default:
		g.logger.Error("Spam check failed", zap.Error(err))
	}
}

// clientIP prefers the first X-Forwarded-For hop, then RemoteAddr.
func clientIP(r *http.Request) string {
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		if idx := strings.IndexByte(forwarded, ','); idx >= 0 {
			forwarded = forwarded[:idx]
		}
		return strings.TrimSpace(forwarded)
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
