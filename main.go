package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-drupal-sync/cmd"
	"github.com/mattsolo1/grove-drupal-sync/cmd/config"
	"github.com/mattsolo1/grove-drupal-sync/pkg/models"
	"github.com/mattsolo1/grove-drupal-sync/pkg/service"
)

var (
	svc      *service.Service
	settings models.Settings
)

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "drupal-sync",
		Short:        "Publish markdown notes to a Drupal site",
		SilenceUsage: true,
	}
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// This runs once before any subcommand
		if err := config.InitConfig(); err != nil {
			return err
		}

		logger, err := config.NewLogger(os.Stderr)
		if err != nil {
			return err
		}

		svc = service.New(nil, logger)
		if config.SkipSettings(cmd) {
			return nil
		}

		settings, err = config.LoadSettings()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		logger.WithField("site_url", settings.SiteURL).Debug("Loaded settings")
		return nil
	}

	rootCmd.AddCommand(cmd.NewRemoteCmd(&svc, &settings))
	rootCmd.AddCommand(cmd.NewSettingsCmd(&settings))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	return rootCmd
}
