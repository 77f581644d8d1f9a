package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/docpick/internal/cli"
	"github.com/pluqqy/docpick/pkg/files"
	"github.com/pluqqy/docpick/pkg/picker"
)

var (
	deleteForce bool
)

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a document",
		Long: `Permanently delete a document. The last remaining document cannot
be deleted. Deleting the open document opens the next one in the
listing first.

Empty documents are deleted without confirmation.

Examples:
  # Delete a document (with confirmation)
  docpick delete "Old draft"

  # Force delete without confirmation
  docpick delete "Old draft" --force`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Force deletion without confirmation")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	return withContext(cmd, func(cc *cli.CommandContext) error {
		entry, err := cc.ResolveEntry(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		controller, err := cc.Controller(cmd.Context())
		if err != nil {
			return operationError(err)
		}

		if !controller.CanDelete(entry) {
			return operationError(picker.ErrLastDocument)
		}

		if !deleteForce && !entry.IsEmpty && cc.Settings.UI.ConfirmDelete {
			prompt := fmt.Sprintf("Permanently delete '%s'? This cannot be undone.", entry.Name)
			confirmed, err := cli.Confirm(prompt, false)
			if err != nil {
				return err
			}
			if !confirmed {
				cli.PrintInfo("Deletion cancelled")
				return nil
			}
		}

		wasOpen := files.SamePath(controller.OpenPath(), entry.Path)
		if err := controller.Delete(cmd.Context(), entry); err != nil {
			return operationError(err)
		}

		cli.PrintSuccess("Deleted: %s", entry.Name)
		if wasOpen {
			cli.PrintInfo("Now open: %s", files.DisplayName(controller.OpenPath()))
		}
		return nil
	})
}
