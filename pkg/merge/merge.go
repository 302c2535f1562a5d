// Package merge implements the single-mode merger: one polarity's intensity
// grid and identification table become one annotated table, with sample
// columns renamed to unique names, identifications filtered by score and
// deduplicated, and the surviving rows joined onto their intensities.
package merge

import (
	"fmt"
	"strings"

	"github.com/polarmerge/polarmerge/pkg/constants"
	"github.com/polarmerge/polarmerge/pkg/errors"
	"github.com/polarmerge/polarmerge/pkg/layout"
	"github.com/polarmerge/polarmerge/pkg/logging"
	"github.com/polarmerge/polarmerge/pkg/polarity"
	"github.com/polarmerge/polarmerge/pkg/samples"
	"github.com/polarmerge/polarmerge/pkg/tables"
)

// Merger merges one acquisition mode's tables. A Merger is stateless across
// invocations and safe for concurrent use.
type Merger struct {
	layout layout.Layout
	cutoff float64
}

// New creates a Merger. Defaults: stock vendor layout, score cutoff 0.
func New(opts ...Option) (*Merger, error) {
	m := &Merger{
		layout: layout.Default(),
		cutoff: constants.DefaultScoreCutoff,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	if err := m.layout.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// Layout returns the configured layout descriptor.
func (m *Merger) Layout() layout.Layout {
	return m.layout
}

// ScoreCutoff returns the configured identification score threshold.
func (m *Merger) ScoreCutoff() float64 {
	return m.cutoff
}

// Merge produces one mode's annotated table:
//
//  1. the sample map is resolved for the mode,
//  2. the intensity grid is split into annotation, raw, and normalized
//     blocks per the layout,
//  3. both abundance blocks are narrowed to the mapped samples and renamed
//     to prefixed unique names,
//  4. the blocks are column-bound and all-blank columns pruned,
//  5. identifications are score-filtered and deduplicated by Compound then
//     Description,
//  6. the surviving identifications are left-joined onto the intensities,
//  7. rows are ordered by descending Fragmentation_Score and tagged with
//     the mode in a leading Polarity column.
//
// The transform is pure: inputs are never mutated and no partial output is
// produced on error.
func (m *Merger) Merge(grid tables.Grid, idents *tables.Table, mode polarity.Mode, smap *samples.Map) (*tables.Table, error) {
	if smap == nil {
		return nil, errors.NewMalformedInputError("sample map", "no sample map provided")
	}

	pairs, err := smap.Resolve(mode)
	if err != nil {
		return nil, err
	}

	blocks, err := m.layout.Resolve(grid)
	if err != nil {
		return nil, err
	}

	annotation, err := annotationTable(grid, blocks.Annotation, m.layout)
	if err != nil {
		return nil, err
	}
	if !annotation.Has(constants.ColCompound) {
		return nil, errors.NewMalformedInputError("intensity",
			fmt.Sprintf("annotation block has no %s column", constants.ColCompound))
	}

	raw, err := abundanceTable(grid, blocks.Raw, m.layout, pairs, m.layout.RawPrefix, mode, "raw")
	if err != nil {
		return nil, err
	}
	norm, err := abundanceTable(grid, blocks.Normalized, m.layout, pairs, m.layout.NormalizedPrefix, mode, "normalized")
	if err != nil {
		return nil, err
	}

	wide, err := annotation.Bind(raw, norm)
	if err != nil {
		return nil, err
	}
	wide = wide.DropBlankColumns()

	logging.Debug().
		Str("mode", mode.String()).
		Int("rows", wide.Len()).
		Int("columns", wide.Width()).
		Msg("assembled intensity table")

	filtered, err := m.filterIdentifications(idents, mode)
	if err != nil {
		return nil, err
	}

	joined, err := filtered.LeftJoin(wide, constants.ColCompound)
	if err != nil {
		return nil, err
	}

	return finalize(joined, mode)
}

// filterIdentifications sanitizes, score-filters, and deduplicates the
// identification table: headers normalized, Score and Fragmentation_Score
// coerced numeric, rows sorted by descending Score, rows below the cutoff
// (or without a numeric score) dropped, then one row kept per Compound and
// one per Description, first occurrence winning.
func (m *Merger) filterIdentifications(idents *tables.Table, mode polarity.Mode) (*tables.Table, error) {
	if idents == nil {
		return nil, errors.NewMalformedInputError("identifications", "no identification table provided")
	}

	t, err := idents.WithNames(tables.SanitizeNames(idents.Names()))
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, req := range []string{
		constants.ColCompound,
		constants.ColScore,
		constants.ColFragmentationScore,
		constants.ColDescription,
	} {
		if !t.Has(req) {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewMalformedInputError("identifications",
			"missing required column(s) "+strings.Join(missing, ", "))
	}

	t = t.CoerceNumber(constants.ColScore, constants.ColFragmentationScore)

	t, err = t.SortByNumberDesc(constants.ColScore)
	if err != nil {
		return nil, err
	}

	score, _ := t.Column(constants.ColScore)
	t = t.Filter(func(row int) bool {
		n, ok := score.Cells[row].Number()
		return ok && n >= m.cutoff
	})
	afterCutoff := t.Len()

	t, err = t.DedupBy(constants.ColCompound)
	if err != nil {
		return nil, err
	}
	t, err = t.DedupBy(constants.ColDescription)
	if err != nil {
		return nil, err
	}

	logging.Debug().
		Str("mode", mode.String()).
		Float64("cutoff", m.cutoff).
		Int("passed_cutoff", afterCutoff).
		Int("after_dedup", t.Len()).
		Msg("filtered identifications")

	return t, nil
}

// finalize orders rows by descending Fragmentation_Score, tags each row
// with its polarity, and moves the key columns to the front.
func finalize(t *tables.Table, mode polarity.Mode) (*tables.Table, error) {
	t, err := t.SortByNumberDesc(constants.ColFragmentationScore)
	if err != nil {
		return nil, err
	}

	t, err = t.Drop(constants.ColPolarity).WithConstant(constants.ColPolarity, tables.Text(mode.String()))
	if err != nil {
		return nil, err
	}

	return t.MoveToFront(constants.ColCompound, constants.ColPolarity), nil
}
