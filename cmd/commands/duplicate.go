package commands

import (
	"github.com/spf13/cobra"

	"github.com/pluqqy/docpick/internal/cli"
	"github.com/pluqqy/docpick/pkg/files"
)

// NewDuplicateCommand creates the duplicate command
func NewDuplicateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "duplicate <name>",
		Aliases: []string{"dup", "cp"},
		Short:   "Copy a document and open the copy",
		Long: `Copy a document to "<name> 2" (or the next free number) and make the
copy the open document.

Examples:
  docpick duplicate "Weekly plan"`,
		Args: cobra.ExactArgs(1),
		RunE: runDuplicate,
	}

	return cmd
}

func runDuplicate(cmd *cobra.Command, args []string) error {
	return withContext(cmd, func(cc *cli.CommandContext) error {
		entry, err := cc.ResolveEntry(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		controller, err := cc.Controller(cmd.Context())
		if err != nil {
			return operationError(err)
		}

		if err := controller.Duplicate(cmd.Context(), entry); err != nil {
			return operationError(err)
		}

		cli.PrintSuccess("Duplicated '%s' as '%s'", entry.Name, files.DisplayName(controller.OpenPath()))
		return nil
	})
}
