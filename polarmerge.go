// Package polarmerge merges per-polarity mass-spectrometry intensity and
// identification exports into compound-centric tables and reconciles the two
// ion modes into a single best-hit table.
//
// The root package exposes the high-level Pipeline. The individual stages
// live in pkg/merge and pkg/reconcile and can be driven directly when finer
// control is needed.
package polarmerge

import (
	"github.com/rs/zerolog"

	"github.com/polarmerge/polarmerge/pkg/layout"
	"github.com/polarmerge/polarmerge/pkg/logging"
	"github.com/polarmerge/polarmerge/pkg/merge"
	"github.com/polarmerge/polarmerge/pkg/polarity"
	"github.com/polarmerge/polarmerge/pkg/reconcile"
	"github.com/polarmerge/polarmerge/pkg/samples"
	"github.com/polarmerge/polarmerge/pkg/tables"
)

// Pipeline is the main interface for merging polarity datasets.
type Pipeline interface {
	// MergeMode merges one polarity's intensity grid with its identification
	// table, resolving sample names through smap.
	MergeMode(mode polarity.Mode, intensity tables.Grid, idents *tables.Table, smap *samples.Map) (*tables.Table, error)

	// Run merges every mode present in the input and, when reconciliation is
	// enabled and both modes produced tables, reconciles them.
	Run(in RunInput) (*RunResult, error)

	// Layout returns the intensity sheet layout the pipeline parses with.
	Layout() layout.Layout

	// ScoreCutoff returns the MS1 score threshold applied during merges.
	ScoreCutoff() float64
}

// pipeline is the internal implementation of the Pipeline interface.
type pipeline struct {
	config     *config
	merger     *merge.Merger
	reconciler reconcile.Reconciler
	logger     *zerolog.Logger
}

// New creates a new Pipeline instance with the given options.
func New(opts ...Option) (Pipeline, error) {
	cfg := &config{reconcile: true}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	merger, err := merge.New(cfg.mergeOpts...)
	if err != nil {
		return nil, err
	}

	reconciler, err := reconcile.New(cfg.reconcileOpts...)
	if err != nil {
		return nil, err
	}

	logger := cfg.logger
	if logger == nil {
		logger = logging.Default()
	}

	return &pipeline{
		config:     cfg,
		merger:     merger,
		reconciler: reconciler,
		logger:     logger,
	}, nil
}

// Layout returns the intensity sheet layout the pipeline parses with.
func (p *pipeline) Layout() layout.Layout {
	return p.merger.Layout()
}

// ScoreCutoff returns the MS1 score threshold applied during merges.
func (p *pipeline) ScoreCutoff() float64 {
	return p.merger.ScoreCutoff()
}

// MergeMode merges a single polarity's datasets into one table.
func (p *pipeline) MergeMode(mode polarity.Mode, intensity tables.Grid, idents *tables.Table, smap *samples.Map) (*tables.Table, error) {
	merged, err := p.merger.Merge(intensity, idents, mode, smap)
	if err != nil {
		return nil, err
	}

	p.logger.Debug().
		Str("mode", mode.String()).
		Int("rows", merged.Len()).
		Int("columns", merged.Width()).
		Msg("merged mode")

	return merged, nil
}
