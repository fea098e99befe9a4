// Package server initializes and runs the paywall proxy server.
// It loads the account seed, builds the session registry and the paywall
// service, handles graceful shutdown, and starts the HTTP API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/contentgate/contentgate/internal/logging"
	"github.com/contentgate/contentgate/internal/server/config"
	"github.com/contentgate/contentgate/internal/server/httpapi"
	"github.com/contentgate/contentgate/internal/server/paywall"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	paywallService *paywall.Service
}

func NewApp(c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	seed := paywall.DefaultSeed()
	if c.SeedFile != "" {
		var err error
		seed, err = paywall.LoadSeedFile(c.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("seed load error: %w", err)
		}
	}

	registry, err := paywall.NewRegistry(seed, c.SessionTimeout)
	if err != nil {
		return nil, fmt.Errorf("registry init error: %w", err)
	}

	ps, err := paywall.NewService(registry)
	if err != nil {
		return nil, fmt.Errorf("service init error: %w", err)
	}

	return &App{config: c, logger: logger, paywallService: ps}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.paywallService, httpapi.NewMetrics())

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

}
