// Package layout describes the column structure of vendor intensity exports.
//
// An intensity sheet carries three column blocks: compound annotation, raw
// abundance, and normalized abundance. The exporting tool marks the start of
// each abundance block with a literal caption in the first row. A Layout
// captures those captions together with the header/data row positions and the
// prefixes applied when sample columns are renamed, so the structure is
// validated up front as an explicit descriptor instead of being probed
// mid-merge.
package layout

import (
	"fmt"
	"strings"

	"github.com/polarmerge/polarmerge/pkg/constants"
	"github.com/polarmerge/polarmerge/pkg/errors"
	"github.com/polarmerge/polarmerge/pkg/tables"
)

// Layout is a typed descriptor of an intensity export's column structure.
// Row indexes are zero-based.
type Layout struct {
	// Name identifies the layout in the registry and in error messages.
	Name string `yaml:"name"`

	// RawMarker is the caption above the first raw abundance column.
	RawMarker string `yaml:"raw_marker"`

	// NormalizedMarker is the caption above the first normalized abundance column.
	NormalizedMarker string `yaml:"normalized_marker"`

	// MarkerRow is the row holding the block captions.
	MarkerRow int `yaml:"marker_row"`

	// HeaderRow is the row holding annotation names and original sample names.
	HeaderRow int `yaml:"header_row"`

	// DataRow is the first data row.
	DataRow int `yaml:"data_row"`

	// RawPrefix is prepended to unique sample names when renaming raw block
	// columns. The established lab workflow ships these two prefixes
	// crossed (raw exports under Norm_); keep whatever downstream tooling
	// already expects.
	RawPrefix string `yaml:"raw_prefix"`

	// NormalizedPrefix is prepended to unique sample names when renaming
	// normalized block columns.
	NormalizedPrefix string `yaml:"normalized_prefix"`
}

// Span is a half-open column range [Start, End).
type Span struct {
	Start int
	End   int
}

// Width returns the number of columns in the span.
func (s Span) Width() int {
	return s.End - s.Start
}

// Empty reports whether the span holds no columns.
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Blocks is the resolved column structure of one intensity grid.
type Blocks struct {
	// Annotation spans the compound metadata columns before the first marker.
	Annotation Span

	// Raw spans the raw abundance columns.
	Raw Span

	// Normalized spans the normalized abundance columns.
	Normalized Span
}

// Default returns the layout of the stock vendor export: captions
// "Raw abundance" and "Normalised abundance" in row 1, headers in row 2,
// data from row 3, raw block renamed under Norm_ and normalized block under
// Raw_ (the established workflow's inverted pairing, preserved deliberately).
func Default() Layout {
	return Layout{
		Name:             constants.DefaultLayoutName,
		RawMarker:        constants.MarkerRaw,
		NormalizedMarker: constants.MarkerNormalized,
		MarkerRow:        0,
		HeaderRow:        1,
		DataRow:          2,
		RawPrefix:        constants.PrefixRaw,
		NormalizedPrefix: constants.PrefixNormalized,
	}
}

// Validate checks the descriptor's internal consistency.
func (l Layout) Validate() error {
	if strings.TrimSpace(l.RawMarker) == "" {
		return errors.NewConfigurationError("raw_marker", l.RawMarker, "must not be empty")
	}
	if strings.TrimSpace(l.NormalizedMarker) == "" {
		return errors.NewConfigurationError("normalized_marker", l.NormalizedMarker, "must not be empty")
	}
	if strings.TrimSpace(l.RawMarker) == strings.TrimSpace(l.NormalizedMarker) {
		return errors.NewConfigurationError("normalized_marker", l.NormalizedMarker,
			"must differ from raw_marker")
	}
	if l.MarkerRow < 0 {
		return errors.NewConfigurationError("marker_row", l.MarkerRow, "must not be negative")
	}
	if l.HeaderRow < 0 {
		return errors.NewConfigurationError("header_row", l.HeaderRow, "must not be negative")
	}
	if l.DataRow <= l.HeaderRow {
		return errors.NewConfigurationError("data_row", l.DataRow, "must come after header_row")
	}
	return nil
}

// Resolve locates the abundance markers in the grid and returns the three
// validated column spans. The header row's width bounds the normalized
// block, and the two abundance blocks must be equally wide.
func (l Layout) Resolve(grid tables.Grid) (Blocks, error) {
	if err := l.Validate(); err != nil {
		return Blocks{}, err
	}

	if grid.Rows() < l.DataRow {
		return Blocks{}, errors.NewMalformedInputError("intensity",
			fmt.Sprintf("grid has %d rows, need at least %d (marker and header rows)",
				grid.Rows(), l.DataRow))
	}

	rawAt := l.findMarker(grid, l.RawMarker)
	if rawAt < 0 {
		return Blocks{}, errors.NewMalformedInputError("intensity",
			fmt.Sprintf("marker %q not found in row %d", l.RawMarker, l.MarkerRow+1))
	}
	normAt := l.findMarker(grid, l.NormalizedMarker)
	if normAt < 0 {
		return Blocks{}, errors.NewMalformedInputError("intensity",
			fmt.Sprintf("marker %q not found in row %d", l.NormalizedMarker, l.MarkerRow+1))
	}
	if normAt <= rawAt {
		return Blocks{}, errors.NewMalformedInputError("intensity",
			fmt.Sprintf("marker %q (column %d) must come before %q (column %d)",
				l.RawMarker, rawAt+1, l.NormalizedMarker, normAt+1))
	}

	width := len(grid.Row(l.HeaderRow))

	blocks := Blocks{
		Annotation: Span{Start: 0, End: rawAt},
		Raw:        Span{Start: rawAt, End: normAt},
		Normalized: Span{Start: normAt, End: width},
	}

	if blocks.Annotation.Empty() {
		return Blocks{}, errors.NewMalformedInputError("intensity",
			fmt.Sprintf("no annotation columns before marker %q", l.RawMarker))
	}
	if blocks.Normalized.Empty() {
		return Blocks{}, errors.NewMalformedInputError("intensity",
			fmt.Sprintf("no columns after marker %q", l.NormalizedMarker))
	}
	if blocks.Raw.Width() != blocks.Normalized.Width() {
		return Blocks{}, errors.NewMalformedInputError("intensity",
			fmt.Sprintf("raw block has %d columns but normalized block has %d",
				blocks.Raw.Width(), blocks.Normalized.Width()))
	}

	return blocks, nil
}

// findMarker returns the first column whose marker-row cell matches, or -1.
// Matching trims surrounding whitespace; vendor captions are otherwise exact.
func (l Layout) findMarker(grid tables.Grid, marker string) int {
	row := grid.Row(l.MarkerRow)
	want := strings.TrimSpace(marker)
	for i, cell := range row {
		if strings.TrimSpace(cell) == want {
			return i
		}
	}
	return -1
}
