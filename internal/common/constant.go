package common

// Authorization scheme tokens expected by the HTTP entry points, per the
// paywall proxy API (RFC 2617 auth-scheme values).
const (
	// AuthScheme must be sent verbatim on auth requests.
	AuthScheme = "PolarPaywallProxyAuthv1.0.0"

	// SessionScheme prefixes the session token on validate requests, e.g.
	// "PolarPaywallProxySessionv1.0.0 session:<token>".
	SessionScheme = "PolarPaywallProxySessionv1.0.0"

	// SessionTokenPrefix separates the scheme from the token itself.
	SessionTokenPrefix = "session:"
)
