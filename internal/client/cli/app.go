package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/usermgmt/internal/client/api"
	"github.com/dmitrijs2005/usermgmt/internal/client/config"
)

type App struct {
	config   *config.Config
	client   api.Client
	token    string
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		client: api.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.showLogin, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) showLogin() string {
	if !a.isLoggedIn() {
		return "(not logged in)"
	}
	return a.userName
}
