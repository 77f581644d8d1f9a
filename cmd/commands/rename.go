package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/docpick/internal/cli"
)

// NewRenameCommand creates the rename command
func NewRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rename <name> <new-name>",
		Aliases: []string{"mv"},
		Short:   "Rename a document",
		Long: `Rename a document in place. The extension is kept, and the new
name must not contain a path separator or match another document
(ignoring case). Renaming the open document keeps it open.

Examples:
  docpick rename "Untitled 1" "Weekly plan"`,
		Args: cobra.ExactArgs(2),
		RunE: runRename,
	}

	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	newName := args[1]
	if err := cli.ValidateDocumentName(newName); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	return withContext(cmd, func(cc *cli.CommandContext) error {
		entry, err := cc.ResolveEntry(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		controller, err := cc.Controller(cmd.Context())
		if err != nil {
			return operationError(err)
		}

		if newName == entry.Name {
			cli.PrintInfo("'%s' already has that name", entry.Name)
			return nil
		}

		if err := controller.Rename(cmd.Context(), entry, newName); err != nil {
			return operationError(err)
		}

		cli.PrintSuccess("Renamed '%s' to '%s'", entry.Name, newName)
		return nil
	})
}
