package main

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/regaudit-backend/internal/config"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the regaudit CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regaudit",
		Short: "regaudit - regulatory compliance audit service",
		Long: `regaudit records conformity assessments against a regulation catalog,
scopes them per editor, and aggregates them into a compliance dashboard.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: $CONFIG_PATH or ./config.yaml)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewTokenCmd())

	return cmd
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadFrom(configFile)
	}
	return config.Load()
}
