package merge

import (
	"github.com/polarmerge/polarmerge/pkg/errors"
	"github.com/polarmerge/polarmerge/pkg/layout"
)

// Option is a function that configures a Merger
type Option func(*Merger) error

// WithLayout configures the intensity table layout. The descriptor is
// validated when the Merger is constructed.
func WithLayout(l layout.Layout) Option {
	return func(m *Merger) error {
		m.layout = l
		return nil
	}
}

// WithLayoutName configures the layout by registry name.
func WithLayoutName(name string) Option {
	return func(m *Merger) error {
		l, err := layout.Get(name)
		if err != nil {
			return err
		}
		m.layout = l
		return nil
	}
}

// WithScoreCutoff configures the identification score threshold. Rows whose
// Score is below the cutoff are discarded; rows equal to it are kept.
func WithScoreCutoff(cutoff float64) Option {
	return func(m *Merger) error {
		if cutoff < 0 {
			return errors.NewConfigurationError("score_cutoff", cutoff, "must not be negative")
		}
		m.cutoff = cutoff
		return nil
	}
}
