// Package common defines shared constants and sentinel errors used across
// the contentgate components. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Authentication / validation failures returned by the paywall core.
	// ErrUnknownCredentials deliberately covers both a missing username and
	// a wrong password so the caller cannot enumerate accounts.
	ErrUnknownCredentials = errors.New("unknown credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrProductNotFound    = errors.New("product not found")

	// ErrSessionExpired covers an aged-out token, a token that never
	// existed, and a token presented for a product it was not issued for.
	ErrSessionExpired = errors.New("session expired")

	// Generic flow-control errors.
	ErrorNotFound = errors.New("not found")
	ErrorInternal = errors.New("internal error")
)
