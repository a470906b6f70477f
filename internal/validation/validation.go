// Package validation checks user-supplied domains and IDs before they reach
// the API client.
package validation

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// MaxDomainLength is the longest host name DNS allows.
const MaxDomainLength = 253

// ValidateDomain checks that domain is a bare host with an optional port,
// such as "school.talentlms.com" or "127.0.0.1:8443". Schemes, paths,
// queries and credentials are rejected.
func ValidateDomain(domain string) error {
	if domain == "" {
		return fmt.Errorf("domain is required")
	}
	if strings.Contains(domain, "://") {
		return fmt.Errorf("invalid domain %q: drop the scheme", domain)
	}
	if strings.ContainsAny(domain, "/?#@ \t") {
		return fmt.Errorf("invalid domain %q: expected a host name such as school.talentlms.com", domain)
	}

	host := domain
	if h, port, err := net.SplitHostPort(domain); err == nil {
		n, perr := strconv.Atoi(port)
		if perr != nil || n <= 0 || n > 65535 {
			return fmt.Errorf("invalid domain %q: bad port", domain)
		}
		host = h
	}

	if len(host) > MaxDomainLength {
		return fmt.Errorf("domain exceeds maximum length of %d characters (got %d)", MaxDomainLength, len(host))
	}
	if net.ParseIP(host) != nil {
		return nil
	}
	for _, label := range strings.Split(host, ".") {
		if !validLabel(label) {
			return fmt.Errorf("invalid domain %q", domain)
		}
	}
	return nil
}

func validLabel(label string) bool {
	if label == "" || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}

// ParsePositiveInt parses a string as a positive integer ID.
// Returns error if the value is not a positive integer or exceeds int32 range.
func ParsePositiveInt(s string, fieldName string) (int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	id64, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", fieldName, err)
	}
	if id64 <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", fieldName)
	}
	return int(id64), nil
}
