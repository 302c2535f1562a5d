package polarmerge

import (
	"github.com/rs/zerolog"

	"github.com/polarmerge/polarmerge/pkg/layout"
	"github.com/polarmerge/polarmerge/pkg/merge"
	"github.com/polarmerge/polarmerge/pkg/reconcile"
)

// config collects pipeline settings before construction.
type config struct {
	mergeOpts     []merge.Option
	reconcileOpts []reconcile.Option
	reconcile     bool
	logger        *zerolog.Logger
}

// Option is a function that configures a Pipeline instance.
type Option func(*config) error

// WithLayout configures the intensity sheet layout to parse with.
func WithLayout(l layout.Layout) Option {
	return func(c *config) error {
		c.mergeOpts = append(c.mergeOpts, merge.WithLayout(l))
		return nil
	}
}

// WithLayoutName selects a registered layout by name.
func WithLayoutName(name string) Option {
	return func(c *config) error {
		c.mergeOpts = append(c.mergeOpts, merge.WithLayoutName(name))
		return nil
	}
}

// WithScoreCutoff configures the minimum MS1 score an identification row
// must reach to survive filtering.
func WithScoreCutoff(cutoff float64) Option {
	return func(c *config) error {
		c.mergeOpts = append(c.mergeOpts, merge.WithScoreCutoff(cutoff))
		return nil
	}
}

// WithReconcile configures whether Run reconciles the two modes after
// merging. Enabled by default.
func WithReconcile(enabled bool) Option {
	return func(c *config) error {
		c.reconcile = enabled
		return nil
	}
}

// WithKeyColumn configures the column reconciliation groups rows by.
func WithKeyColumn(name string) Option {
	return func(c *config) error {
		c.reconcileOpts = append(c.reconcileOpts, reconcile.WithKeyColumn(name))
		return nil
	}
}

// WithLogger configures the logger the pipeline reports progress through.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = &logger
		return nil
	}
}
