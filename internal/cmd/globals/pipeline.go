package globals

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/polarmerge/polarmerge/pkg/constants"
)

// PipelineFlags holds the flags shared by commands that construct a merge
// pipeline.
type PipelineFlags struct {
	Samples     string
	ScoreCutoff float64
	Layout      string
	LayoutFile  string
}

// AddPipelineFlags adds the shared pipeline flags to a command.
func AddPipelineFlags(cmd *cobra.Command) *PipelineFlags {
	flags := &PipelineFlags{}

	cmd.Flags().StringVarP(&flags.Samples, "samples", "s", "",
		"Sample map file (required)")
	cmd.Flags().Float64Var(&flags.ScoreCutoff, "score-cutoff", constants.DefaultScoreCutoff,
		"Minimum MS1 score an identification must reach")
	cmd.Flags().StringVar(&flags.Layout, "layout", "",
		"Registered intensity layout name")
	cmd.Flags().StringVar(&flags.LayoutFile, "layout-file", "",
		"YAML layout descriptor file")
	cmd.MarkFlagsMutuallyExclusive("layout", "layout-file")

	return flags
}

// Resolve fills in values from the environment and the config file for flags
// the user did not set on the command line, preserving the
// flags > env > config file > defaults precedence.
func (f *PipelineFlags) Resolve(cmd *cobra.Command) {
	if !cmd.Flags().Changed("score-cutoff") && viper.IsSet("score_cutoff") {
		f.ScoreCutoff = viper.GetFloat64("score_cutoff")
	}
	if f.Layout == "" && viper.IsSet("layout") {
		f.Layout = viper.GetString("layout")
	}
	if f.LayoutFile == "" && viper.IsSet("layout_file") {
		f.LayoutFile = viper.GetString("layout_file")
	}
}
