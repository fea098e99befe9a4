// Package paywall implements the credential and session registry behind the
// gated-content access API: the in-memory account table, the per-account
// session sets with lazy expiry, and the two operations (authenticate,
// validate) the transport adapter calls into.
//
// All state lives in a single Registry instance guarded by one mutex. Every
// public operation holds the lock for its full duration, so a
// check-then-mutate sequence is never interleaved with another caller's
// sweep. This coarse lock is a deliberate simplicity choice; the protected
// sections are bounded by the session count of a single account.
package paywall

import (
	"fmt"
	"sync"
	"time"

	"github.com/contentgate/contentgate/internal/common"
)

// sessionTokenBytes is the number of random bytes per session token; tokens
// are hex-encoded, so the wire form is twice this length.
const sessionTokenBytes = 32

// Registry holds every account and live session in process memory. Construct
// it exactly once with NewRegistry and share the instance; there is no
// package-level singleton.
type Registry struct {
	mu       sync.Mutex
	timeout  time.Duration
	accounts map[string]*account
	tokens   map[string]string // session token -> owning username

	// now is a test seam; production registries use time.Now.
	now func() time.Time
}

// NewRegistry builds a registry from the seed table. The seed is deep-copied
// so later mutation of the input cannot leak into registry state.
func NewRegistry(seed []SeedAccount, timeout time.Duration) (*Registry, error) {
	if timeout <= 0 {
		return nil, fmt.Errorf("session timeout must be positive, got %v", timeout)
	}
	if len(seed) == 0 {
		return nil, fmt.Errorf("account seed is empty")
	}

	accounts := make(map[string]*account, len(seed))
	for _, s := range seed {
		if s.Username == "" {
			return nil, fmt.Errorf("seed account with empty username")
		}
		if _, ok := accounts[s.Username]; ok {
			return nil, fmt.Errorf("duplicate seed account %q", s.Username)
		}
		products := make([]string, len(s.Products))
		copy(products, s.Products)
		accounts[s.Username] = &account{
			username: s.Username,
			password: s.Password,
			valid:    s.Valid,
			products: products,
			sessions: make(map[string]session),
		}
	}

	return &Registry{
		timeout:  timeout,
		accounts: accounts,
		tokens:   make(map[string]string),
		now:      time.Now,
	}, nil
}

// issueSession mints a new token for acc bound to product and records it in
// both the account's session set and the cross-account token index.
// The caller must hold r.mu.
func (r *Registry) issueSession(acc *account, product string) (string, error) {
	var token string
	for {
		t, err := common.MakeRandHexString(sessionTokenBytes)
		if err != nil {
			return "", fmt.Errorf("generating session token: %w", err)
		}
		// A 256-bit collision is not expected in this lifetime; the re-draw
		// keeps global uniqueness an invariant rather than a probability.
		if _, taken := r.tokens[t]; !taken {
			token = t
			break
		}
	}

	acc.sessions[token] = session{product: product, issuedAt: r.now()}
	r.tokens[token] = acc.username
	return token, nil
}

// sweepSessions drops every session on acc whose age has reached the
// configured timeout, keeping the token index in step. Sweeping an already
// clean account is a no-op. The caller must hold r.mu.
func (r *Registry) sweepSessions(acc *account) {
	now := r.now()
	for token, s := range acc.sessions {
		if now.Sub(s.issuedAt) >= r.timeout {
			delete(acc.sessions, token)
			delete(r.tokens, token)
		}
	}
}

// findToken resolves a token to its owning account via the token index.
// Both maps are updated together, so a hit in the index always has a
// matching session entry. The caller must hold r.mu.
func (r *Registry) findToken(token string) (*account, session, bool) {
	username, ok := r.tokens[token]
	if !ok {
		return nil, session{}, false
	}
	acc := r.accounts[username]
	s, ok := acc.sessions[token]
	if !ok {
		return nil, session{}, false
	}
	return acc, s, true
}

// SessionCount reports the number of live sessions held by username,
// including any that are due for the next sweep. Intended for diagnostics
// and tests.
func (r *Registry) SessionCount(username string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[username]
	if !ok {
		return 0
	}
	return len(acc.sessions)
}
