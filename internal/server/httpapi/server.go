// Package httpapi is the transport adapter in front of the paywall core: it
// decodes wire requests, calls the two core operations, and encodes results
// or typed failures as JSON. No access-control decision is made here.
package httpapi

import (
	"context"

	"github.com/dmitrymomot/foundation/core/router"
	"github.com/dmitrymomot/foundation/core/server"

	"github.com/contentgate/contentgate/internal/logging"
)

// PaywallService is the surface the adapter needs from the core.
type PaywallService interface {
	Authenticate(ctx context.Context, username, password, product string) (token string, products []string, err error)
	Validate(ctx context.Context, token, product string) (products []string, err error)
}

// Server serves the paywall proxy HTTP API.
type Server struct {
	address string
	logger  logging.Logger
	paywall PaywallService
	metrics *Metrics
	router  router.Router[*Context]
	srv     *server.Server
}

// NewServer wires the routes. The route versions are static: this server
// speaks exactly paywallproxy v1.0.0 in json format.
func NewServer(address string, l logging.Logger, svc PaywallService, m *Metrics) (*Server, error) {
	s := &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		paywall: svc,
		metrics: m,
	}

	r := router.New(router.WithContextFactory(newContext))
	r.Post("/paywallproxy/v1.0.0/json/auth/{product_code}", s.handleAuth)
	r.Get("/paywallproxy/v1.0.0/json/validate/{product_code}", s.handleValidate)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/metrics", s.handleMetrics)

	s.router = r
	s.srv = server.New(address)

	return s, nil
}

// Run starts the server and blocks until ctx is cancelled, then shuts down
// gracefully. A clean shutdown returns nil.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	err := s.srv.Run(ctx, s.router)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "HTTP server stopped")
	return nil
}
