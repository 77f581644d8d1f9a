package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pluqqy/docpick/internal/cli"
	"github.com/pluqqy/docpick/pkg/files"
)

// ListResult represents the output structure for list command
type ListResult struct {
	Dir   string     `json:"dir" yaml:"dir"`
	Items []ListItem `json:"items" yaml:"items"`
	Count int        `json:"count" yaml:"count"`
}

// ListItem represents a single document in the list
type ListItem struct {
	Name     string     `json:"name" yaml:"name"`
	Path     string     `json:"path,omitempty" yaml:"path,omitempty"`
	Modified *time.Time `json:"modified,omitempty" yaml:"modified,omitempty"`
	IsEmpty  bool       `json:"is_empty,omitempty" yaml:"is_empty,omitempty"`
	IsOpen   bool       `json:"is_open,omitempty" yaml:"is_open,omitempty"`
}

const listNameWidth = 40

var (
	listMatch     string
	listShowPaths bool
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List documents, newest first",
		Long: `List every document in the document directory, most recently
modified first. The document that was open last is marked.

Examples:
  # List all documents
  docpick list

  # Only documents whose name matches a glob
  docpick list --match 'meeting*'

  # JSON output with file paths
  docpick list -o json --paths`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().StringVarP(&listMatch, "match", "m", "", "Only list names matching a glob pattern (case-insensitive)")
	cmd.Flags().BoolVar(&listShowPaths, "paths", false, "Show file paths")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	outputFormat, _ := cmd.Flags().GetString("output")

	return withContext(cmd, func(cc *cli.CommandContext) error {
		catalog, openPath := cc.Listing()

		if listMatch != "" {
			filtered, err := files.FilterCatalog(catalog, listMatch)
			if err != nil {
				return err
			}
			catalog = filtered
		}

		result := ListResult{Dir: cc.Dir(), Count: len(catalog)}
		for _, entry := range catalog {
			item := ListItem{
				Name:     entry.Name,
				Modified: entry.Modified,
				IsEmpty:  entry.IsEmpty,
				IsOpen:   files.SamePath(entry.Path, openPath),
			}
			if listShowPaths {
				item.Path = entry.Path
			}
			result.Items = append(result.Items, item)
		}

		if outputFormat != string(cli.FormatText) {
			return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
		}

		return printListText(cmd, result)
	})
}

func printListText(cmd *cobra.Command, result ListResult) error {
	out := cmd.OutOrStdout()
	if result.Count == 0 {
		if listMatch != "" {
			fmt.Fprintf(out, "No documents match '%s'\n", listMatch)
		} else {
			fmt.Fprintln(out, "No documents found")
		}
		return nil
	}

	table := cli.NewTableFormatter(out)
	if listShowPaths {
		table.Header("", "NAME", "MODIFIED", "PATH")
	} else {
		table.Header("", "NAME", "MODIFIED")
	}

	for _, item := range result.Items {
		marker := " "
		if item.IsOpen {
			marker = "*"
		}
		name := cli.TruncateString(item.Name, listNameWidth)
		if item.IsEmpty {
			name += " (empty)"
		}

		if listShowPaths {
			table.Row(marker, name, cli.FormatModified(item.Modified), item.Path)
		} else {
			table.Row(marker, name, cli.FormatModified(item.Modified))
		}
	}
	table.Flush()

	fmt.Fprintf(out, "\n%d document(s) in %s\n", result.Count, result.Dir)
	return nil
}
