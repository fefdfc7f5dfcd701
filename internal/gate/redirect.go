package gate

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// RedirectTarget is where a spam submission gets sent: either a literal
// path or a resolver evaluated when the redirect happens.
type RedirectTarget interface {
	Resolve() string
}

// Literal is a fixed redirect path.
type Literal string

func (l Literal) Resolve() string {
	return string(l)
}

// Resolver computes the redirect path at redirect time.
type Resolver func() string

func (f Resolver) Resolve() string {
	return f()
}

// Flash carries the optional notice and alert messages attached to a spam
// redirect. Normally only one is set, but both are carried when given.
type Flash struct {
	Notice string `json:"notice,omitempty"`
	Alert  string `json:"alert,omitempty"`
}

// Redirector issues the redirect-with-flash primitive.
type Redirector interface {
	Redirect(w http.ResponseWriter, r *http.Request, path string, flash Flash)
}

// FlashCookieName holds the flash payload for the next request.
const FlashCookieName = "spam_gate_flash"

// CookieRedirector is the default Redirector. It stores the flash payload
// as a URL-encoded JSON cookie and answers 303 so the browser re-requests
// the target with GET.
type CookieRedirector struct{}

// NewCookieRedirector creates the default redirector.
func NewCookieRedirector() *CookieRedirector {
	return &CookieRedirector{}
}

func (*CookieRedirector) Redirect(w http.ResponseWriter, r *http.Request, path string, flash Flash) {
	if flash.Notice != "" || flash.Alert != "" {
		payload, err := json.Marshal(flash)
		if err == nil {
			http.SetCookie(w, &http.Cookie{
				Name:     FlashCookieName,
				Value:    url.QueryEscape(string(payload)),
				Path:     "/",
				HttpOnly: true,
			})
		}
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// ReadFlash decodes and clears the flash cookie set by a previous spam
// redirect. It returns false when no flash is present.
func ReadFlash(w http.ResponseWriter, r *http.Request) (Flash, bool) {
	cookie, err := r.Cookie(FlashCookieName)
	if err != nil {
		return Flash{}, false
	}

	http.SetCookie(w, &http.Cookie{
		Name:   FlashCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	decoded, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return Flash{}, false
	}
	var flash Flash
	if err := json.Unmarshal([]byte(decoded), &flash); err != nil {
		return Flash{}, false
	}
	return flash, true
}
