// Package globals holds the flag sets shared across polarmerge commands:
// the persistent output/verbosity flags on the root command and the pipeline
// flags (sample map, cutoff, layout) the merging commands share.
package globals

import "github.com/spf13/cobra"

// Flags are the persistent flags every command inherits.
type Flags struct {
	// Output selects the structured output format (table, json, yaml, wide).
	// Empty means auto-detect from the terminal.
	Output string

	// Quiet suppresses non-essential output.
	Quiet bool

	// Verbose enables debug logging.
	Verbose bool

	// NoColor disables colored terminal output.
	NoColor bool
}

// AddFlags registers the persistent flags on the root command and returns
// the struct they bind to.
func AddFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}
	pf := cmd.PersistentFlags()

	pf.StringVarP(&flags.Output, "output", "o", "", "Output format: table, json, yaml, wide")
	pf.BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress summaries and progress output")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")

	return flags
}

// Parse reads the persistent flag values back off the command hierarchy,
// for code paths that were not handed the bound struct.
func Parse(cmd *cobra.Command) (*Flags, error) {
	pf := cmd.Root().PersistentFlags()

	flags := &Flags{}
	flags.Output, _ = pf.GetString("output")
	flags.Quiet, _ = pf.GetBool("quiet")
	flags.Verbose, _ = pf.GetBool("verbose")
	flags.NoColor, _ = pf.GetBool("no-color")

	return flags, nil
}
