package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/contentgate/contentgate/internal/client/client"
	"github.com/contentgate/contentgate/internal/client/config"
)

type App struct {
	config     *config.Config
	api        client.Client
	userName   string
	sessionKey string
	products   []string
	reader     *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewPaywallClientService(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	return &App{config: c, api: apiClient, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) hasSession() bool {
	return a.sessionKey != ""
}
