// Package cli implements the stockaid command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/eisbock/stockaid"
	"github.com/eisbock/stockaid/internal/config"
	"github.com/eisbock/stockaid/providers/index"
	"github.com/eisbock/stockaid/providers/marketdata"
)

// NewRootCmd creates the root cobra command with all subcommands wired up.
func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "stockaid",
		Short:         "Cached, throttled access to stock data providers",
		Long:          "stockaid fetches tabular data from registered providers, throttling requests and caching responses on disk.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "path to the config file")

	cmd.AddCommand(newCallCmd(&configPath))
	cmd.AddCommand(newProvidersCmd(&configPath))
	return cmd
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "stockaid.yaml"
	}
	return filepath.Join(home, ".stockaid", "config.yaml")
}

// buildCache loads the configuration and assembles a cache with the
// builtin providers registered. A missing config file is not an error:
// the defaults give an uncached, keyless client.
func buildCache(configPath string) (*stockaid.Cache, error) {
	cfg := &config.Config{Log: config.LogConfig{Level: "info"}}
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(level)

	c := stockaid.New(stockaid.Options{
		CachePath: cfg.Cache.Folder,
		KeyChain:  cfg.KeyChain(),
	})

	if err := index.Register(c); err != nil {
		return nil, err
	}
	if err := marketdata.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}
