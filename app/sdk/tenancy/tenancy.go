// Package tenancy derives the tenant label of a request from its host and
// enforces which label each surface of the API is served on.
package tenancy

import (
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// Localhost is the label returned for development hosts and for any host
// that does not belong to the platform domain.
const Localhost = "localhost"

// rootDomain is the platform domain tenants are served under.
var rootDomain = []string{"rifuud", "com"}

var privatePrefixes = []string{"127.", "192.168.", "10."}

// ErrSubdomainMismatch is returned when a request reaches a surface from a
// host with the wrong label.
var ErrSubdomainMismatch = errors.New("subdomain does not match the surface")

// Resolve returns the tenant label for host. A host with at least three
// labels under rifuud.com resolves to its first label. Everything else,
// development hosts included, resolves to Localhost. The result is never
// empty.
func Resolve(host string) string {
	h := stripPort(strings.ToLower(strings.TrimSpace(host)))
	h = strings.TrimSuffix(h, ".")

	if h == "" || h == Localhost || net.ParseIP(h) != nil {
		return Localhost
	}

	for _, prefix := range privatePrefixes {
		if strings.HasPrefix(h, prefix) {
			return Localhost
		}
	}

	labels := strings.Split(h, ".")
	n := len(labels)
	if n < 3 || labels[n-2] != rootDomain[0] || labels[n-1] != rootDomain[1] {
		return Localhost
	}

	if labels[0] == "" {
		return Localhost
	}

	return labels[0]
}

// ClientHost returns the host the client used to reach the API: the host of
// the Origin header, else the host of the Referer header, else the request
// host. Header values that do not parse as absolute URLs are skipped. Ports
// other than 80 and 443 are kept.
func ClientHost(r *http.Request) string {
	for _, header := range []string{"Origin", "Referer"} {
		if h, ok := hostFromURL(r.Header.Get(header)); ok {
			return h
		}
	}

	return r.Host
}

// FromRequest resolves the tenant label of the request.
func FromRequest(r *http.Request) string {
	return Resolve(ClientHost(r))
}

// =============================================================================

// Surface is a part of the API that is only served on one tenant label.
type Surface struct {
	label string
}

// The set of surfaces.
var (
	Backoffice = Surface{"backoffice"}
	Restaurant = Surface{"restaurant"}
)

// String returns the label the surface requires.
func (s Surface) String() string {
	return s.label
}

// Check returns ErrSubdomainMismatch unless label is the one the surface
// requires, or label is Localhost and allowLocalhost is set.
func (s Surface) Check(label string, allowLocalhost bool) error {
	if label == s.label {
		return nil
	}

	if label == Localhost && allowLocalhost {
		return nil
	}

	return ErrSubdomainMismatch
}

// =============================================================================

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}

	return strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
}

func hostFromURL(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}

	host := u.Hostname()
	if host == "" {
		return "", false
	}

	switch port := u.Port(); port {
	case "", "80", "443":
		return host, true
	default:
		return net.JoinHostPort(host, port), true
	}
}
