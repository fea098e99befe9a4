package client

import "errors"

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrUnexpectedBody = errors.New("unexpected response body")
)
