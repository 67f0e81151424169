package rules

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/addonreview/cachelint/errors"
)

const (
	// ErrInvalidPattern is returned when the domains or segment cannot form a pattern.
	ErrInvalidPattern = errors.Error("invalid pattern")

	// DefaultSegment is the path segment platform requests must carry.
	DefaultSegment = "/cache/"
)

// DefaultDomains returns the platform domains checked when none are configured.
func DefaultDomains() []string {
	return []string{"shoptet.cz", "myshoptet.com"}
}

// Pattern recognizes platform hosts and the required path segment. It is immutable and safe for
// concurrent use.
type Pattern struct {
	domains []string
	segment string
}

// NewPattern validates domains and segment and builds a pattern from them.
// Domains are bare host suffixes such as "shoptet.cz"; matching is case-insensitive.
func NewPattern(domains []string, segment string) (*Pattern, error) {
	if len(domains) == 0 {
		return nil, ErrInvalidPattern.Wrapf("at least one domain is required")
	}

	normalized := make([]string, 0, len(domains))
	for _, domain := range domains {
		d, err := normalizeDomain(domain)
		if err != nil {
			return nil, ErrInvalidPattern.Wrap(err)
		}
		normalized = append(normalized, d)
	}

	if segment == "" {
		return nil, ErrInvalidPattern.Wrapf("segment must not be empty")
	}
	if strings.IndexFunc(segment, unicode.IsSpace) >= 0 {
		return nil, ErrInvalidPattern.Wrapf("segment %q must not contain whitespace", segment)
	}

	return &Pattern{domains: normalized, segment: segment}, nil
}

func normalizeDomain(domain string) (string, error) {
	switch {
	case strings.TrimSpace(domain) == "":
		return "", fmt.Errorf("domain must not be empty")
	case strings.IndexFunc(domain, unicode.IsSpace) >= 0:
		return "", fmt.Errorf("domain %q must not contain whitespace", domain)
	case strings.Contains(domain, "://"):
		return "", fmt.Errorf("domain %q must not contain a scheme", domain)
	case strings.ContainsAny(domain, "/?#@:"):
		return "", fmt.Errorf("domain %q must be a bare host name", domain)
	case strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") || strings.Contains(domain, ".."):
		return "", fmt.Errorf("domain %q has empty labels", domain)
	}
	return strings.ToLower(domain), nil
}

// Domains returns the configured domains.
func (p *Pattern) Domains() []string {
	return append([]string(nil), p.domains...)
}

// Segment returns the required path segment.
func (p *Pattern) Segment() string {
	return p.segment
}

// MatchesHost reports whether host is a subdomain of one of the configured domains.
// The bare domain itself does not match.
func (p *Pattern) MatchesHost(host string) bool {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	for _, domain := range p.domains {
		if len(host) > len(domain)+1 && strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// HasSegment reports whether rawURL contains the required segment anywhere.
func (p *Pattern) HasSegment(rawURL string) bool {
	return strings.Contains(rawURL, p.segment)
}

// Violates reports whether rawURL targets a platform host without the required segment.
// The extracted host is returned when it matches a configured domain.
func (p *Pattern) Violates(rawURL string) (string, bool) {
	host := HostOf(rawURL)
	if !p.MatchesHost(host) {
		return "", false
	}
	return strings.ToLower(host), !p.HasSegment(rawURL)
}

// HostOf extracts the host from an absolute, protocol-relative or scheme-less URL.
// Relative paths have no host.
func HostOf(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}

	if u, err := url.Parse(rawURL); err == nil {
		if u.Host != "" {
			return u.Hostname()
		}
		if u.Scheme != "" && u.Opaque == "" {
			return ""
		}
	}

	host := rawURL
	switch i := strings.Index(host, "://"); {
	case i >= 0:
		host = host[i+3:]
	case strings.HasPrefix(host, "//"):
		host = host[2:]
	case strings.ContainsAny(host[:1], "/.?#"):
		return ""
	}

	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	if i := strings.LastIndex(host, "@"); i >= 0 {
		host = host[i+1:]
	}
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}

	return host
}
