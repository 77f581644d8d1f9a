package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pluqqy/docpick/cmd/commands"
	"github.com/pluqqy/docpick/internal/cli"
	"github.com/pluqqy/docpick/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

func runPicker(cmd *cobra.Command, cc *cli.CommandContext) error {
	controller, err := cc.Controller(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to open document directory: %w", err)
	}

	app := tui.NewApp(tui.Options{
		Controller:    controller,
		Documents:     cc.Markdown(),
		ShowPreview:   cc.Settings.UI.ShowPreview,
		ConfirmDelete: cc.Settings.UI.ConfirmDelete,
	})
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

func main() {
	rootCmd := commands.NewRootCommand(version, runPicker)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
