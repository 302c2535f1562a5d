package polarmerge

import (
	"github.com/agentstation/utc"

	"github.com/polarmerge/polarmerge/pkg/errors"
	"github.com/polarmerge/polarmerge/pkg/polarity"
	"github.com/polarmerge/polarmerge/pkg/samples"
	"github.com/polarmerge/polarmerge/pkg/tables"
)

// RunInput carries the raw inputs for a full pipeline run. A mode is absent
// when its intensity grid is nil; at least one mode must be present.
type RunInput struct {
	PosIntensity       tables.Grid
	PosIdentifications *tables.Table
	NegIntensity       tables.Grid
	NegIdentifications *tables.Table
	Samples            *samples.Map
}

// RunResult holds the tables produced by a pipeline run. Reconciled is nil
// when reconciliation is disabled or fewer than two modes were merged.
type RunResult struct {
	Pos         *tables.Table
	Neg         *tables.Table
	Reconciled  *tables.Table
	GeneratedAt utc.Time
	Cutoff      float64
}

// Run merges the modes present in the input and reconciles them when both
// produced tables and reconciliation is enabled.
func (p *pipeline) Run(in RunInput) (*RunResult, error) {
	if in.PosIntensity == nil && in.NegIntensity == nil {
		return nil, errors.NewConfigurationError("input", "", "no intensity grid for either mode")
	}

	result := &RunResult{
		GeneratedAt: utc.Now(),
		Cutoff:      p.merger.ScoreCutoff(),
	}

	var err error
	if in.PosIntensity != nil {
		result.Pos, err = p.MergeMode(polarity.Positive, in.PosIntensity, in.PosIdentifications, in.Samples)
		if err != nil {
			return nil, err
		}
	}
	if in.NegIntensity != nil {
		result.Neg, err = p.MergeMode(polarity.Negative, in.NegIntensity, in.NegIdentifications, in.Samples)
		if err != nil {
			return nil, err
		}
	}

	if p.config.reconcile && result.Pos != nil && result.Neg != nil {
		result.Reconciled, err = p.reconciler.Reconcile(result.Pos, result.Neg)
		if err != nil {
			return nil, err
		}
	}

	p.logger.Debug().
		Bool("reconciled", result.Reconciled != nil).
		Float64("cutoff", result.Cutoff).
		Msg("pipeline run complete")

	return result, nil
}
