// Package main provides the groupme CLI application.
package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/guarzo/groupmeapi/common"
	"github.com/guarzo/groupmeapi/modules/groupme"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "groupme",
	Short: "GroupMe API command line client",
	Long: `A command line front end over the GroupMe client library:
list groups, send messages, upload images.

Configuration is read from the environment:
  GROUPME_TOKEN         access token (required)
  GROUPME_CACHE_TTL     enable response caching with this TTL, e.g. 30s
  GROUPME_INSECURE_TLS  disable certificate verification (legacy mode)
  GROUPME_DEBUG         log requests and cache hits to stderr`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

type cliConfig struct {
	Token       string        `env:"GROUPME_TOKEN"`
	CacheTTL    time.Duration `env:"GROUPME_CACHE_TTL" envDefault:"0"`
	InsecureTLS bool          `env:"GROUPME_INSECURE_TLS" envDefault:"false"`
	Debug       bool          `env:"GROUPME_DEBUG" envDefault:"false"`
}

// newService builds a Service from the environment configuration.
func newService() (groupme.Service, error) {
	var cfg cliConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if cfg.Token == "" {
		return nil, errors.New("GROUPME_TOKEN is not set")
	}

	var logger *slog.Logger
	if cfg.Debug {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	httpClient := common.NewHttpClient("groupme-cli", &http.Client{}, cfg.InsecureTLS)
	client := groupme.NewClient(
		groupme.DefaultBaseURL,
		groupme.DefaultImageURL,
		httpClient,
		common.NewResponseCache(),
		common.StaticToken(cfg.Token),
		logger,
	)
	svc := groupme.NewService(client)
	if cfg.CacheTTL > 0 {
		svc.SetCaching(true, cfg.CacheTTL)
	}
	return svc, nil
}
