package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pluqqy/docpick/internal/cli"
	"github.com/pluqqy/docpick/pkg/utils"
)

// CurrentResult describes the open document
type CurrentResult struct {
	Name     string          `json:"name" yaml:"name"`
	Path     string          `json:"path" yaml:"path"`
	Modified *time.Time      `json:"modified,omitempty" yaml:"modified,omitempty"`
	IsEmpty  bool            `json:"is_empty" yaml:"is_empty"`
	Stats    utils.TextStats `json:"stats" yaml:"stats"`
}

// NewCurrentCommand creates the current command
func NewCurrentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the open document",
		Long: `Print the name and path of the open document. When nothing has been
opened yet the newest document is opened, or a new one is created.`,
		Args: cobra.NoArgs,
		RunE: runCurrent,
	}

	return cmd
}

func runCurrent(cmd *cobra.Command, args []string) error {
	outputFormat, _ := cmd.Flags().GetString("output")

	return withContext(cmd, func(cc *cli.CommandContext) error {
		controller, err := cc.Controller(cmd.Context())
		if err != nil {
			return operationError(err)
		}

		entry, ok := controller.Snapshot().OpenEntry()
		if !ok {
			return fmt.Errorf("no document is open")
		}

		result := CurrentResult{
			Name:     entry.Name,
			Path:     entry.Path,
			Modified: entry.Modified,
			IsEmpty:  entry.IsEmpty,
		}
		if note, err := cc.Markdown().ReadNote(entry.Path); err == nil {
			result.Stats = utils.Measure(note.Body)
		}

		if outputFormat != string(cli.FormatText) {
			return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", result.Name)
		fmt.Fprintf(out, "  Path:     %s\n", result.Path)
		fmt.Fprintf(out, "  Modified: %s\n", cli.FormatModified(result.Modified))
		if result.IsEmpty {
			fmt.Fprintln(out, "  (empty)")
		} else {
			fmt.Fprintf(out, "  Size:     %s (%s)\n", result.Stats, utils.FormatTokenCount(result.Stats.Tokens))
		}
		return nil
	})
}
