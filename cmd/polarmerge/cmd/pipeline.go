package cmd

import (
	"github.com/polarmerge/polarmerge"
	"github.com/polarmerge/polarmerge/internal/cmd/globals"
	"github.com/polarmerge/polarmerge/pkg/layout"
)

// pipelineOptions converts shared pipeline flags into facade options. A
// layout file takes priority over a registered layout name; the two flags
// are mutually exclusive at the cobra level.
func pipelineOptions(flags *globals.PipelineFlags) ([]polarmerge.Option, error) {
	opts := []polarmerge.Option{
		polarmerge.WithScoreCutoff(flags.ScoreCutoff),
	}

	switch {
	case flags.LayoutFile != "":
		l, err := layout.FromFile(flags.LayoutFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, polarmerge.WithLayout(l))
	case flags.Layout != "":
		opts = append(opts, polarmerge.WithLayoutName(flags.Layout))
	}

	return opts, nil
}
