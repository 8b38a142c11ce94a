package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-drupal-sync/pkg/models"
	"github.com/mattsolo1/grove-drupal-sync/pkg/service"
)

// NewRemoteCmd creates the `remote` command and its subcommands.
func NewRemoteCmd(svc **service.Service, settings *models.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Publish notes to Drupal and manage their links",
		Long: `Commands for sending notes to a Drupal site through its REST API.

The site needs the REST, Serialization and HTTP Basic Authentication modules,
with the Content resource accepting POST and PATCH in json format and
basic_auth as an authentication provider.`,
	}

	cmd.AddCommand(NewPublishCmd(svc, settings, true))
	cmd.AddCommand(NewPublishCmd(svc, settings, false))
	cmd.AddCommand(NewStatusCmd(svc, settings))
	cmd.AddCommand(NewUnlinkCmd(svc))

	return cmd
}
