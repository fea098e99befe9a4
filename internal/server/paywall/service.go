package paywall

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/contentgate/contentgate/internal/common"
)

// dummyPassword is compared against when the username is unknown so that a
// missing account costs roughly the same as a wrong password. It is not a
// credential.
const dummyPassword = "0000000000000000"

// Service exposes the two paywall operations to the transport adapter. Both
// run as one atomic sequence under the registry lock; a failed precondition
// leaves state untouched apart from the always-safe expiry sweep.
type Service struct {
	registry *Registry
}

// NewService wraps a registry. The registry must not be nil.
func NewService(r *Registry) (*Service, error) {
	if r == nil {
		return nil, fmt.Errorf("registry is required")
	}
	return &Service{registry: r}, nil
}

// Authenticate checks the supplied credentials against the account table
// and, on success, issues a fresh session token bound to product. The
// returned entitlement list is the account's full product set, not just the
// requested product.
//
// Failures, in check order: common.ErrUnknownCredentials for a missing
// username or wrong password (indistinguishable on purpose),
// common.ErrAccountDisabled, common.ErrProductNotFound.
//
// Re-authenticating an account that already holds sessions issues an
// additional token rather than replacing the old one; multiple concurrent
// sessions per account support multi-device login.
func (s *Service) Authenticate(ctx context.Context, username, password, product string) (string, []string, error) {
	r := s.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[username]
	if !ok {
		subtle.ConstantTimeCompare([]byte(password), []byte(dummyPassword))
		return "", nil, common.ErrUnknownCredentials
	}

	if subtle.ConstantTimeCompare([]byte(acc.password), []byte(password)) != 1 {
		return "", nil, common.ErrUnknownCredentials
	}

	if !acc.valid {
		return "", nil, common.ErrAccountDisabled
	}

	if !acc.entitledTo(product) {
		return "", nil, common.ErrProductNotFound
	}

	// Housekeeping before minting: expired sessions never survive past the
	// next operation touching this account.
	r.sweepSessions(acc)

	token, err := r.issueSession(acc, product)
	if err != nil {
		return "", nil, err
	}

	return token, acc.entitlementList(), nil
}

// Validate resolves a session token, re-checks the owning account and the
// requested product, and returns the account's current entitlements.
//
// A token that never existed, has aged out, or was issued for a different
// product all yield common.ErrSessionExpired; the caller learns nothing
// about which. A disabled account yields common.ErrAccountDisabled and a
// product outside the account's entitlements common.ErrProductNotFound.
func (s *Service) Validate(ctx context.Context, token, product string) ([]string, error) {
	r := s.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, _, ok := r.findToken(token)
	if !ok {
		return nil, common.ErrSessionExpired
	}

	if !acc.valid {
		return nil, common.ErrAccountDisabled
	}

	if !acc.entitledTo(product) {
		return nil, common.ErrProductNotFound
	}

	r.sweepSessions(acc)

	// The sweep may have taken this very token with it.
	sess, ok := acc.sessions[token]
	if !ok {
		return nil, common.ErrSessionExpired
	}

	// Tokens are scoped to the product they were issued for. A mismatch is
	// reported as an expired session, which also covers entitlements
	// withdrawn since issuance.
	if sess.product != product {
		return nil, common.ErrSessionExpired
	}

	return acc.entitlementList(), nil
}
