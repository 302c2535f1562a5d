package cmd

import (
	"os"
	"path/filepath"

	"github.com/agentstation/utc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/polarmerge/polarmerge"
	"github.com/polarmerge/polarmerge/internal/cmd/globals"
	"github.com/polarmerge/polarmerge/internal/cmd/output"
	"github.com/polarmerge/polarmerge/internal/ingest"
	"github.com/polarmerge/polarmerge/pkg/constants"
	"github.com/polarmerge/polarmerge/pkg/errors"
	"github.com/polarmerge/polarmerge/pkg/export"
	"github.com/polarmerge/polarmerge/pkg/logging"
	"github.com/polarmerge/polarmerge/pkg/tables"
)

var (
	runPosIntensity string
	runPosIdents    string
	runNegIntensity string
	runNegIdents    string
	runOutDir       string
	runReconcile    bool
	runFlags        *globals.PipelineFlags
)

// runSummary is the report printed after a full pipeline run.
type runSummary struct {
	GeneratedAt    utc.Time `json:"generated_at" yaml:"generated_at"`
	Cutoff         float64  `json:"score_cutoff" yaml:"score_cutoff"`
	PosRows        int      `json:"pos_rows" yaml:"pos_rows"`
	NegRows        int      `json:"neg_rows" yaml:"neg_rows"`
	ReconciledRows int      `json:"reconciled_rows" yaml:"reconciled_rows"`
	OutDir         string   `json:"out_dir" yaml:"out_dir"`
}

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline over one or both polarities",
	Long: `Run merges every polarity whose inputs are given and, when both modes are
present and reconciliation is enabled, reconciles the two result tables into
a single best-hit table per compound.

Results land in --out-dir as pos_merged.csv, neg_merged.csv, and
reconciled.csv; a run summary prints through the output formatter.`,
	Example: `  polarmerge run --pos-intensity pos.csv --pos-identifications pos_ids.csv \
    --neg-intensity neg.csv --neg-identifications neg_ids.csv \
    --samples samples.csv --out-dir results
  polarmerge run --pos-intensity pos.xlsx --pos-identifications pos_ids.xlsx \
    -s samples.csv --score-cutoff 30 --reconcile=false --out-dir results`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runPosIntensity, "pos-intensity", "", "Positive mode intensity grid file")
	runCmd.Flags().StringVar(&runPosIdents, "pos-identifications", "", "Positive mode identification table file")
	runCmd.Flags().StringVar(&runNegIntensity, "neg-intensity", "", "Negative mode intensity grid file")
	runCmd.Flags().StringVar(&runNegIdents, "neg-identifications", "", "Negative mode identification table file")
	runCmd.Flags().StringVar(&runOutDir, "out-dir", "", "Directory the result tables are written to (required)")
	runCmd.Flags().BoolVar(&runReconcile, "reconcile", true, "Reconcile the two modes when both are present")
	runFlags = globals.AddPipelineFlags(runCmd)

	_ = runCmd.MarkFlagRequired("out-dir")
	_ = runCmd.MarkFlagRequired("samples")
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	runFlags.Resolve(cmd)
	reconcile := runReconcile
	if !cmd.Flags().Changed("reconcile") && viper.IsSet("reconcile") {
		reconcile = viper.GetBool("reconcile")
	}

	opts, err := pipelineOptions(runFlags)
	if err != nil {
		return err
	}
	opts = append(opts, polarmerge.WithReconcile(reconcile))

	pipe, err := polarmerge.New(opts...)
	if err != nil {
		return err
	}

	in := polarmerge.RunInput{}
	if runPosIntensity != "" {
		if runPosIdents == "" {
			return errors.NewConfigurationError("pos-identifications", "",
				"positive mode needs --pos-identifications alongside --pos-intensity")
		}
		posCtx := logging.WithMode(ctx, "pos")
		if in.PosIntensity, err = ingest.Grid(posCtx, runPosIntensity); err != nil {
			return err
		}
		if in.PosIdentifications, err = ingest.Table(posCtx, runPosIdents); err != nil {
			return err
		}
	}
	if runNegIntensity != "" {
		if runNegIdents == "" {
			return errors.NewConfigurationError("neg-identifications", "",
				"negative mode needs --neg-identifications alongside --neg-intensity")
		}
		negCtx := logging.WithMode(ctx, "neg")
		if in.NegIntensity, err = ingest.Grid(negCtx, runNegIntensity); err != nil {
			return err
		}
		if in.NegIdentifications, err = ingest.Table(negCtx, runNegIdents); err != nil {
			return err
		}
	}

	if in.Samples, err = ingest.Samples(ctx, runFlags.Samples); err != nil {
		return err
	}

	result, err := pipe.Run(in)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(runOutDir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create directory", runOutDir, err)
	}

	if err := writeResult(result.Pos, runOutDir, "pos_merged.csv", "pos"); err != nil {
		return err
	}
	if err := writeResult(result.Neg, runOutDir, "neg_merged.csv", "neg"); err != nil {
		return err
	}
	if err := writeResult(result.Reconciled, runOutDir, "reconciled.csv", "Reconciled"); err != nil {
		return err
	}

	logging.Info().
		Int("pos_rows", rowCount(result.Pos)).
		Int("neg_rows", rowCount(result.Neg)).
		Int("reconciled_rows", rowCount(result.Reconciled)).
		Float64("cutoff", result.Cutoff).
		Msg("pipeline run complete")

	if globalFlags.Quiet {
		return nil
	}
	return output.Print(globalFlags, runSummary{
		GeneratedAt:    result.GeneratedAt,
		Cutoff:         result.Cutoff,
		PosRows:        rowCount(result.Pos),
		NegRows:        rowCount(result.Neg),
		ReconciledRows: rowCount(result.Reconciled),
		OutDir:         runOutDir,
	})
}

// writeResult writes one result table, skipping modes the run did not produce.
func writeResult(t *tables.Table, dir, name, sheet string) error {
	if t == nil {
		return nil
	}
	return export.Write(filepath.Join(dir, name), t, export.WithSheetName(sheet))
}

func rowCount(t *tables.Table) int {
	if t == nil {
		return 0
	}
	return t.Len()
}
