package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/polarmerge/polarmerge/internal/cmd/output"
)

// versionInfo is the version report, shaped for the output formatter.
type versionInfo struct {
	Version  string `json:"version" yaml:"version"`
	Commit   string `json:"commit" yaml:"commit"`
	Built    string `json:"built" yaml:"built"`
	BuiltBy  string `json:"built_by" yaml:"built_by"`
	Go       string `json:"go_version" yaml:"go_version"`
	Platform string `json:"platform" yaml:"platform"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Show version information for the polarmerge CLI.`,
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(_ *cobra.Command, _ []string) error {
	return output.Print(globalFlags, versionInfo{
		Version:  Version,
		Commit:   Commit,
		Built:    Date,
		BuiltBy:  BuiltBy,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	})
}
