// Package app implements the command line interface.
package app

import (
	"github.com/spf13/cobra"

	"github.com/pushcast/pushcast/internal/config"
	"github.com/pushcast/pushcast/internal/logger"
)

const defaultConfigPath = "./etc/"

var (
	configPath string        //nolint:gochecknoglobals
	cfg        config.Config //nolint:gochecknoglobals

	rootCmd = &cobra.Command{ //nolint:gochecknoglobals
		Use:   "pushcast",
		Short: "pushcast registers push tokens and broadcasts messages to them",
		Long: `pushcast is a push notification backend: browsers register their push
token on the stock or chat channel, operators broadcast a message to every
token of a channel through a GCM style push gateway.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint:gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "directory containing main.toml")
}

// loadConfig reads the configuration and initializes the global logger.
func loadConfig() error {
	var err error
	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err
	}

	return logger.Init(cfg.Log)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
