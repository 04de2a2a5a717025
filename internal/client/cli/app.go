package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/newsroom/internal/client/api"
	"github.com/dmitrijs2005/newsroom/internal/client/config"
	"github.com/dmitrijs2005/newsroom/internal/common"
	"github.com/spf13/cobra"
)

// BuildVersion is set at link time with -ldflags "-X ...cli.BuildVersion=v1.2.3".
var BuildVersion = "dev"

type App struct {
	config *config.Config
	api    *api.Client
	tokens tokenFile
	reader *bufio.Reader
	out    io.Writer

	configPath string
	serverURL  string
	tokenPath  string
	timeout    time.Duration
}

// init resolves the configuration for the command about to run: defaults,
// config file and environment from config.Load, then explicitly set flags.
func (a *App) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.ServerURL = a.serverURL
	}
	if flags.Changed("token-file") {
		cfg.TokenFile = a.tokenPath
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout
	}

	client, err := api.New(cfg.ServerURL, cfg.Timeout)
	if err != nil {
		return err
	}

	a.config = cfg
	a.api = client
	a.tokens = tokenFile{path: cfg.TokenFile}
	return nil
}

// explain adds a hint to errors the user can act on.
func explain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, api.ErrUnavailable):
		return fmt.Errorf("%w (is the server running?)", err)
	case errors.Is(err, common.ErrUnauthenticated):
		return fmt.Errorf("%w: run 'newsctl login' again", err)
	default:
		return err
	}
}
