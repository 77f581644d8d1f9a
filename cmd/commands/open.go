package commands

import (
	"github.com/spf13/cobra"

	"github.com/pluqqy/docpick/internal/cli"
)

// NewOpenCommand creates the open command
func NewOpenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open <name>",
		Short: "Make a document the open document",
		Long: `Switch the open document to <name>. Opening the document that is
already open does nothing.

Examples:
  docpick open "Meeting notes"`,
		Args: cobra.ExactArgs(1),
		RunE: runOpen,
	}

	return cmd
}

func runOpen(cmd *cobra.Command, args []string) error {
	return withContext(cmd, func(cc *cli.CommandContext) error {
		entry, err := cc.ResolveEntry(cmd.Context(), args[0])
		if err != nil {
			return operationError(err)
		}

		controller, err := cc.Controller(cmd.Context())
		if err != nil {
			return operationError(err)
		}

		if err := controller.Open(cmd.Context(), entry); err != nil {
			return operationError(err)
		}

		cli.PrintSuccess("Opened: %s", entry.Name)
		return nil
	})
}
