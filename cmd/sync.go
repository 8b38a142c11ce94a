package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-drupal-sync/pkg/models"
	"github.com/mattsolo1/grove-drupal-sync/pkg/service"
	"github.com/mattsolo1/grove-drupal-sync/pkg/sync"
	"github.com/mattsolo1/grove-drupal-sync/pkg/sync/drupal"
)

// newSyncer creates a syncer with the drupal provider registered.
func newSyncer(cmd *cobra.Command, s *service.Service, settings models.Settings) *sync.Syncer {
	syncer := sync.NewSyncer(s, settings)
	syncer.RegisterProvider(drupal.Name, func(settings models.Settings) sync.Provider {
		return drupal.NewProvider(settings, s.Logger)
	})
	syncer.SetNotifier(sync.NotifierFunc(func(message string) {
		fmt.Fprintln(cmd.ErrOrStderr(), message)
	}))
	return syncer
}

// NewPublishCmd creates the `publish` subcommand, or `draft` when published is false.
func NewPublishCmd(svc **service.Service, settings *models.Settings, published bool) *cobra.Command {
	var jsonOutput bool

	use, short, long := "publish <file>", "Save a note to Drupal as published",
		`Creates a published Drupal node from the note, or updates the node recorded in its
drupal_node_id frontmatter field. The node id and URL are written back to the note.`
	if !published {
		use, short, long = "draft <file>", "Save a note to Drupal as unpublished",
			`Same as publish, but the node is saved with status unpublished.`
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := settings.Validate(); err != nil {
				return fmt.Errorf("invalid settings (see `drupal-sync settings`): %w", err)
			}

			syncer := newSyncer(cmd, *svc, *settings)
			report, err := syncer.Publish(cmd.Context(), drupal.Name, args[0], published)
			if err != nil {
				return err
			}

			if jsonOutput {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal report to JSON: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			verb := "Updated"
			if report.Created {
				verb = "Created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s node %s for %q: %s\n", verb, report.NodeID, report.Title, report.NodeURL)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the result in JSON format")

	return cmd
}

// NewStatusCmd creates the `status` subcommand.
func NewStatusCmd(svc **service.Service, settings *models.Settings) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status <file>",
		Short: "Show which Drupal node a note is linked to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			syncer := newSyncer(cmd, *svc, *settings)
			note, err := syncer.Status(args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				data, err := json.MarshalIndent(note, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal status to JSON: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title: %s\n", note.Title)
			if !note.Remote.Linked() {
				fmt.Fprintln(out, "Not published yet, the next publish creates a new node.")
				return nil
			}
			fmt.Fprintf(out, "Node:  %s\n", note.Remote.NodeID)
			fmt.Fprintf(out, "URL:   %s\n", note.Remote.NodeURL)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

// NewUnlinkCmd creates the `unlink` subcommand.
func NewUnlinkCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <file>",
		Short: "Forget the Drupal node a note is linked to",
		Long: `Removes drupal_node_id and drupal_node_url from the note's frontmatter so the next
publish creates a new node. The node on the site is not deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := (*svc).Unlink(args[0])
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "* Removed Drupal link from %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is not linked to a node\n", args[0])
			}
			return nil
		},
	}
}
