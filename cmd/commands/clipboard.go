package commands

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pluqqy/docpick/internal/cli"
)

var (
	clipboardRaw bool
)

var (
	defaultClipboardWrite = clipboard.WriteAll
	clipboardWrite        = defaultClipboardWrite
)

// NewClipboardCommand creates the copy command
func NewClipboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "copy [name]",
		Aliases: []string{"clip", "clipboard"},
		Short:   "Copy a document's text to the clipboard",
		Long: `Copy a document's body to the system clipboard. Without a name the
open document is copied. Frontmatter is left out unless --raw is given.

Examples:
  docpick copy
  docpick copy "Weekly plan" --raw`,
		Args: cobra.MaximumNArgs(1),
		RunE: runClipboard,
	}

	cmd.Flags().BoolVar(&clipboardRaw, "raw", false, "Copy the file exactly as stored, including frontmatter")

	return cmd
}

func runClipboard(cmd *cobra.Command, args []string) error {
	return withContext(cmd, func(cc *cli.CommandContext) error {
		controller, err := cc.Controller(cmd.Context())
		if err != nil {
			return operationError(err)
		}

		var name, path string
		if len(args) == 1 {
			entry, err := cc.ResolveEntry(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			name, path = entry.Name, entry.Path
		} else {
			entry, ok := controller.Snapshot().OpenEntry()
			if !ok {
				return fmt.Errorf("no document is open")
			}
			name, path = entry.Name, entry.Path
		}

		var content string
		if clipboardRaw {
			raw, err := afero.ReadFile(cc.FS, path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}
			content = string(raw)
		} else {
			note, err := cc.Markdown().ReadNote(path)
			if err != nil {
				return err
			}
			content = note.Body
		}

		if strings.TrimSpace(content) == "" {
			cli.PrintWarning("'%s' is empty, nothing copied", name)
			return nil
		}

		if err := clipboardWrite(content); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}

		cli.PrintSuccess("'%s' copied to clipboard", name)

		lines := strings.Split(strings.TrimSpace(content), "\n")
		preview := lines[0]
		if len(lines) > 1 {
			preview += " ..."
		}
		cli.PrintInfo("Preview: %s", cli.TruncateString(preview, 80))

		return nil
	})
}
