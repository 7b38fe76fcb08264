package auth

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-errors"
)

// DefaultLanding is where rejected or missing redirect destinations land
const DefaultLanding = "/products"

// allowedRedirects are the exact top-level destinations a caller-supplied
// return URL may point at.
var allowedRedirects = []string{"/", "/login", "/products", "/dashboard"}

// allowedPrefixes are the catalog browsing namespaces accepted by prefix.
var allowedPrefixes = []string{"/products", "/category"}

// RedirectSanitizer decides whether a caller-supplied destination is safe
// to honor after sign-in or sign-out. A destination is honored only when it
// resolves to the trusted origin and an allow-listed path; anything else
// falls back to the default landing page. This is what keeps the return-URL
// parameter from becoming an open redirect.
type RedirectSanitizer struct {
	base *url.URL
}

// NewRedirectSanitizer creates a sanitizer for the given trusted base URL
func NewRedirectSanitizer(base string) (*RedirectSanitizer, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "invalid base URL")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New("base URL must be absolute", errors.CategoryBadInput)
	}
	return &RedirectSanitizer{base: u}, nil
}

// Sanitize resolves candidate against the trusted base and returns the full
// URL to redirect to. Parse failures, foreign origins, and off-list paths
// all silently downgrade to the default landing page.
func (r *RedirectSanitizer) Sanitize(candidate string) string {
	fallback := r.origin() + DefaultLanding

	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return fallback
	}

	resolved, err := r.base.Parse(candidate)
	if err != nil {
		return fallback
	}

	// never honor a destination that resolves off the trusted origin
	if resolved.Scheme != r.base.Scheme || resolved.Host != r.base.Host {
		return fallback
	}

	if !r.pathAllowed(resolved.Path) {
		return fallback
	}

	out := r.origin() + resolved.Path
	if resolved.RawQuery != "" {
		out += "?" + resolved.RawQuery
	}
	if resolved.Fragment != "" {
		out += "#" + resolved.Fragment
	}
	return out
}

func (r *RedirectSanitizer) pathAllowed(path string) bool {
	for _, allowed := range allowedRedirects {
		if path == allowed {
			return true
		}
	}
	for _, prefix := range allowedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (r *RedirectSanitizer) origin() string {
	return r.base.Scheme + "://" + r.base.Host
}
