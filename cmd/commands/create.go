package commands

import (
	"github.com/spf13/cobra"

	"github.com/pluqqy/docpick/internal/cli"
	"github.com/pluqqy/docpick/pkg/files"
)

// NewCreateCommand creates the new command
func NewCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "new",
		Aliases: []string{"create"},
		Short:   "Create a new empty document and open it",
		Long: `Create a new empty document named "Untitled N" using the first free
number, and make it the open document.

Examples:
  docpick new
  docpick new --dir ~/notes`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	return withContext(cmd, func(cc *cli.CommandContext) error {
		catalog, _ := cc.Listing()

		// Activating an empty directory already creates the first document
		controller, err := cc.Controller(cmd.Context())
		if err != nil {
			return operationError(err)
		}

		if len(catalog) > 0 {
			if err := controller.Create(cmd.Context()); err != nil {
				return operationError(err)
			}
		}

		cli.PrintSuccess("Created and opened: %s", files.DisplayName(controller.OpenPath()))
		return nil
	})
}
