package cmd

import (
	"github.com/spf13/cobra"

	"github.com/polarmerge/polarmerge/internal/cmd/output"
	"github.com/polarmerge/polarmerge/internal/cmd/table"
	"github.com/polarmerge/polarmerge/pkg/layout"
)

// layoutsCmd represents the layouts command
var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List the registered intensity layouts",
	Long: `Layouts lists the registered intensity sheet layouts: the block captions
they look for and the rows they read markers, headers, and data from.

Custom layouts load per invocation with --layout-file.`,
	RunE: runLayouts,
}

func init() {
	rootCmd.AddCommand(layoutsCmd)
}

func runLayouts(_ *cobra.Command, _ []string) error {
	return output.Print(globalFlags, table.LayoutsToData(layout.All()))
}
