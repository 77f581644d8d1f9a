package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/docpick/internal/cli"
	"github.com/pluqqy/docpick/internal/logging"
	"github.com/pluqqy/docpick/pkg/picker"
)

// appVersion is stamped on log records and printed by the version command
var appVersion = "dev"

// Runner launches the interactive picker for the bare root command
type Runner func(cmd *cobra.Command, cc *cli.CommandContext) error

// NewRootCommand creates the docpick command tree
func NewRootCommand(version string, run Runner) *cobra.Command {
	appVersion = version

	root := &cobra.Command{
		Use:   "docpick",
		Short: "Pick, create and manage notes in a directory",
		Long: `docpick keeps exactly one Markdown note open and lets you switch to,
create, rename, duplicate and delete its siblings in the same directory.

Run without a subcommand to start the interactive picker.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			quiet, _ := cmd.Flags().GetBool("quiet")
			noColor, _ := cmd.Flags().GetBool("no-color")
			yes, _ := cmd.Flags().GetBool("yes")
			cli.SetGlobalFlags(quiet, noColor, yes)

			output, _ := cmd.Flags().GetString("output")
			return cli.ValidateOutputFormat(output)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if run == nil {
				return cmd.Help()
			}
			return withContext(cmd, func(cc *cli.CommandContext) error {
				return run(cmd, cc)
			})
		},
	}

	flags := root.PersistentFlags()
	flags.String("dir", "", "Document directory (default from config, then current directory)")
	flags.String("config", "", "Config file (default $XDG_CONFIG_HOME/docpick/config.yaml)")
	flags.StringP("output", "o", "text", "Output format: text, json or yaml")
	flags.BoolP("quiet", "q", false, "Suppress informational output")
	flags.Bool("no-color", false, "Disable symbols and colors")
	flags.BoolP("yes", "y", false, "Answer yes to every confirmation")
	flags.String("log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		NewListCommand(),
		NewCreateCommand(),
		NewOpenCommand(),
		NewRenameCommand(),
		NewDuplicateCommand(),
		NewDeleteCommand(),
		NewClipboardCommand(),
		NewCurrentCommand(),
		NewVersionCommand(),
	)

	return root
}

// withContext loads settings and logging, runs fn and tears everything down
func withContext(cmd *cobra.Command, fn func(cc *cli.CommandContext) error) error {
	configPath, _ := cmd.Flags().GetString("config")
	settings, err := cli.LoadSettings(configPath, cmd.Flags())
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Init(settings.Log, logging.Options{
		App:         "docpick",
		Version:     appVersion,
		DefaultFile: cli.DefaultLogFile(),
	})
	if err != nil {
		return err
	}
	defer closeLog()

	cc, err := cli.NewCommandContext(settings, logger)
	if err != nil {
		return err
	}
	if err := cli.ValidateDirectoryPath(cc.FS, cc.Dir()); err != nil {
		return err
	}

	runErr := fn(cc)
	if closeErr := cc.Close(context.Background()); closeErr != nil {
		logger.Warn("failed to close document", "error", closeErr)
	}
	return runErr
}

// operationError turns controller errors into messages for the terminal
func operationError(err error) error {
	switch {
	case err == nil:
		return nil
	case picker.IsSilent(err):
		return fmt.Errorf("docpick is busy, try again")
	case errors.Is(err, picker.ErrLastDocument):
		return fmt.Errorf("%w; create another document first", err)
	default:
		return err
	}
}
