package whitelist

import (
	"strings"

	"go.uber.org/zap"
)

// Checker decides whether a submitter's email domain is trusted enough to
// skip the remote spam check.
type Checker struct {
	domains []string
	logger  *zap.Logger
}

// NewChecker creates a checker from a list of trusted domains. Domains are
// trimmed and lowercased; empty entries are dropped.
func NewChecker(domains []string, logger *zap.Logger) *Checker {
	normalized := make([]string, 0, len(domains))
	for _, domain := range domains {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain != "" {
			normalized = append(normalized, domain)
		}
	}

	if len(normalized) > 0 && logger != nil {
		logger.Info("Initialized domain whitelist", zap.Strings("domains", normalized))
	}

	return &Checker{
		domains: normalized,
		logger:  logger,
	}
}

// IsWhitelisted reports whether the domain part of the given email address
// is on the trusted list. Addresses without exactly one @ are never
// whitelisted.
func (c *Checker) IsWhitelisted(email string) bool {
	if len(c.domains) == 0 {
		return false
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	domain := strings.ToLower(parts[1])

	for _, trusted := range c.domains {
		if trusted == domain {
			if c.logger != nil {
				c.logger.Debug("Submitter domain is whitelisted",
					zap.String("domain", domain))
			}
			return true
		}
	}

	return false
}
