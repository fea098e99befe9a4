package client

import (
	"context"
)

// AuthResult is the outcome of a successful authentication call.
type AuthResult struct {
	SessionKey string
	Products   []string
}

type Client interface {
	Authenticate(ctx context.Context, product string, username string, password []byte) (*AuthResult, error)
	Validate(ctx context.Context, product string, sessionKey string) ([]string, error)
	Ping(ctx context.Context) error
}
