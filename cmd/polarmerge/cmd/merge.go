package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/polarmerge/polarmerge"
	"github.com/polarmerge/polarmerge/internal/cmd/globals"
	"github.com/polarmerge/polarmerge/internal/cmd/output"
	"github.com/polarmerge/polarmerge/internal/ingest"
	"github.com/polarmerge/polarmerge/pkg/export"
	"github.com/polarmerge/polarmerge/pkg/logging"
	"github.com/polarmerge/polarmerge/pkg/polarity"
)

var (
	mergeMode      string
	mergeIntensity string
	mergeIdents    string
	mergeOut       string
	mergePreview   int
	mergeFlags     *globals.PipelineFlags
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge one polarity's intensity and identification tables",
	Long: `Merge filters the identification table by MS1 score, deduplicates
compounds and descriptions, renames the intensity sample columns through the
sample map, and left-joins the identifications onto the intensity blocks.

The result is written to --out (format chosen by extension: .csv, .tsv, .txt
or .xlsx), or as CSV to stdout when --out is omitted. With --preview N the
first N rows render through the output formatter instead.`,
	Example: `  polarmerge merge --mode pos --intensity pos_intensity.csv \
    --identifications pos_ids.csv --samples samples.csv --out pos_merged.csv
  polarmerge merge -m neg --intensity neg.xlsx --identifications neg_ids.xlsx \
    -s samples.csv --score-cutoff 30 --preview 10`,
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVarP(&mergeMode, "mode", "m", "", "Acquisition mode: pos or neg (required)")
	mergeCmd.Flags().StringVar(&mergeIntensity, "intensity", "", "Intensity grid file (required)")
	mergeCmd.Flags().StringVar(&mergeIdents, "identifications", "", "Identification table file (required)")
	mergeCmd.Flags().StringVar(&mergeOut, "out", "", "Output file; format chosen by extension (stdout CSV when omitted)")
	mergeCmd.Flags().IntVar(&mergePreview, "preview", 0, "Render the first N rows through the output formatter")
	mergeFlags = globals.AddPipelineFlags(mergeCmd)

	_ = mergeCmd.MarkFlagRequired("mode")
	_ = mergeCmd.MarkFlagRequired("intensity")
	_ = mergeCmd.MarkFlagRequired("identifications")
	_ = mergeCmd.MarkFlagRequired("samples")
}

func runMerge(cmd *cobra.Command, _ []string) error {
	mode, err := polarity.Parse(mergeMode)
	if err != nil {
		return err
	}

	mergeFlags.Resolve(cmd)
	opts, err := pipelineOptions(mergeFlags)
	if err != nil {
		return err
	}
	pipe, err := polarmerge.New(opts...)
	if err != nil {
		return err
	}

	ctx := logging.WithMode(cmd.Context(), mode.String())

	grid, err := ingest.Grid(logging.WithInput(ctx, "intensity"), mergeIntensity)
	if err != nil {
		return err
	}
	idents, err := ingest.Table(logging.WithInput(ctx, "identifications"), mergeIdents)
	if err != nil {
		return err
	}
	smap, err := ingest.Samples(logging.WithInput(ctx, "samples"), mergeFlags.Samples)
	if err != nil {
		return err
	}

	merged, err := pipe.MergeMode(mode, grid, idents, smap)
	if err != nil {
		return err
	}

	logging.Info().
		Str("mode", mode.String()).
		Int("rows", merged.Len()).
		Int("columns", merged.Width()).
		Float64("cutoff", pipe.ScoreCutoff()).
		Msg("merge complete")

	if mergePreview > 0 {
		if err := output.PrintTable(globalFlags, merged, mergePreview); err != nil {
			return err
		}
	}

	if mergeOut == "" {
		if mergePreview > 0 {
			return nil
		}
		return export.Delimited(os.Stdout, merged, ',')
	}

	if err := export.Write(mergeOut, merged, export.WithSheetName(mode.String())); err != nil {
		return err
	}
	if !globalFlags.Quiet {
		fmt.Printf("Wrote %d rows to %s\n", merged.Len(), mergeOut)
	}
	return nil
}
