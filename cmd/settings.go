package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/grove-drupal-sync/cmd/config"
	"github.com/mattsolo1/grove-drupal-sync/pkg/models"
	"github.com/mattsolo1/grove-drupal-sync/pkg/sync"
)

// NewSettingsCmd creates the `settings` command and its subcommands.
func NewSettingsCmd(settings *models.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the Drupal connection settings",
	}

	cmd.AddCommand(newSettingsShowCmd(settings))
	cmd.AddCommand(newSettingsSetCmd(settings))
	cmd.AddCommand(newSettingsPathCmd())

	return cmd
}

func newSettingsShowCmd(settings *models.Settings) *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shown := settings.Redacted()
			if reveal {
				shown = *settings
			}
			data, err := yaml.Marshal(shown)
			if err != nil {
				return fmt.Errorf("failed to marshal settings: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&reveal, "show-password", false, "Print the password instead of a mask")

	return cmd
}

func newSettingsSetCmd(settings *models.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting and save it",
		// Runs from the file values so it can repair a bad setting
		Annotations: map[string]string{
			config.SkipSettingsAnnotation: "true",
		},
		Long: fmt.Sprintf(`Change one setting and save it to the config file.

Keys: %s
Body formats: plain_text, filtered_html, restricted_html, full_html

Examples:
  drupal-sync settings set site_url https://example.com
  drupal-sync settings set body_format full_html`, strings.Join(config.SettingKeys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := strings.ToLower(args[0]), args[1]
			if !isSettingKey(key) {
				return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(config.SettingKeys, ", "))
			}

			// Start from the file so environment overrides are not persisted
			raw, err := config.LoadFileSettings()
			if err != nil {
				return err
			}
			raw[key] = value

			updated, err := sync.DecodeSettings(raw)
			if err != nil {
				return err
			}
			if err := updated.Validate(); err != nil {
				return fmt.Errorf("invalid settings: %w", err)
			}
			if err := config.SaveSettings(updated); err != nil {
				return err
			}

			viper.Set(key, value)
			effective, err := config.LoadSettings()
			if err != nil {
				return err
			}
			*settings = effective

			path, _ := config.ConfigPath()
			fmt.Fprintf(cmd.OutOrStdout(), "* Set %s in %s\n", key, path)
			return nil
		},
	}
}

func newSettingsPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Annotations: map[string]string{
			config.SkipSettingsAnnotation: "true",
		},
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func isSettingKey(key string) bool {
	for _, k := range config.SettingKeys {
		if k == key {
			return true
		}
	}
	return false
}
