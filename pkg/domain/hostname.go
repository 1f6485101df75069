package domain

import (
	"ctwatch/pkg/serrors"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

// wildcardPrefix is the marker certificates use for wildcard SANs.
const wildcardPrefix = "*."

// hostnameRegex matches a fully qualified, lowercase ASCII DNS name with at least two
// labels. The top-level label is alphabetic or an IDNA A-label such as "xn--p1ai".
var hostnameRegex = regexp.MustCompile( //nolint: gochecknoglobals
	`^(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+(?:[a-z]{2,63}|xn--[a-z0-9-]{1,59})$`)

// NormalizeHostname returns the canonical form of a certificate name: surrounding
// whitespace trimmed, a single leading wildcard label removed and the result lowercased.
// An empty string is returned for blank input.
func NormalizeHostname(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, wildcardPrefix)

	return strings.ToLower(name)
}

// NormalizeHostnames normalizes every name, drops blanks and duplicates, and keeps
// the order in which each hostname was first seen.
func NormalizeHostnames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		h := NormalizeHostname(n)
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}

	return out
}

// ParseMonitoredDomain validates operator input and returns the domain to monitor.
//
// The input may carry a scheme, a path or a trailing dot (e.g. "https://Example.com/login"),
// all of which are stripped. Internationalized names are converted to their ASCII form. The remaining host must be a syntactically valid DNS
// name and must not itself be a public suffix such as "co.uk". Failures are reported
// as serrors.ErrBadRequest.
func ParseMonitoredDomain(raw string) (string, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return "", serrors.With(serrors.ErrBadRequest, "domain name required")
	}

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid domain")
	}

	host := strings.TrimSuffix(u.Hostname(), ".")
	host = strings.TrimPrefix(host, wildcardPrefix)
	if host == "" {
		return "", serrors.With(serrors.ErrBadRequest, "invalid domain name %q", host)
	}

	// certificates carry A-labels, so internationalized input is stored in that form
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid domain name %q", host)
	}
	host = ascii
	if !hostnameRegex.MatchString(host) {
		return "", serrors.With(serrors.ErrBadRequest, "invalid domain name %q", host)
	}

	if _, err = publicsuffix.EffectiveTLDPlusOne(host); err != nil {
		return "", serrors.Wrap(serrors.ErrBadRequest, err, "domain %q is a public suffix", host)
	}

	return host, nil
}
