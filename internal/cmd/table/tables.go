// Package table converts result tables and layout descriptors into the
// display shape the output formatters render.
package table

import (
	"strconv"

	"github.com/polarmerge/polarmerge/pkg/layout"
	"github.com/polarmerge/polarmerge/pkg/tables"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data.
type Data struct {
	Headers         []string   `json:"headers" yaml:"headers"`
	Rows            [][]string `json:"rows" yaml:"rows"`
	ColumnAlignment []Align    `json:"-" yaml:"-"` // Optional: column alignment
}

// FromTable converts a result table to display data. Columns holding numeric
// cells are right-aligned. When limit is positive, only the first limit rows
// are kept.
func FromTable(t *tables.Table, limit int) Data {
	n := t.Len()
	if limit > 0 && limit < n {
		n = limit
	}

	rows := make([][]string, n)
	for i := range rows {
		rows[i] = make([]string, t.Width())
	}

	alignment := make([]Align, t.Width())
	for c := 0; c < t.Width(); c++ {
		column := t.ColumnAt(c)
		for r := 0; r < n; r++ {
			rows[r][c] = column.Cells[r].String()
			if _, ok := column.Cells[r].Number(); ok {
				alignment[c] = AlignRight
			}
		}
	}

	return Data{
		Headers:         t.Names(),
		Rows:            rows,
		ColumnAlignment: alignment,
	}
}

// LayoutsToData converts layout descriptors to display data. Row positions
// are shown one-based, the way spreadsheet tools number them.
func LayoutsToData(all []layout.Layout) Data {
	headers := []string{"NAME", "RAW MARKER", "NORMALIZED MARKER", "MARKER ROW", "HEADER ROW", "DATA ROW"}

	rows := make([][]string, 0, len(all))
	for _, l := range all {
		rows = append(rows, []string{
			l.Name,
			l.RawMarker,
			l.NormalizedMarker,
			strconv.Itoa(l.MarkerRow + 1),
			strconv.Itoa(l.HeaderRow + 1),
			strconv.Itoa(l.DataRow + 1),
		})
	}

	return Data{
		Headers: headers,
		Rows:    rows,
		ColumnAlignment: []Align{
			AlignDefault, // NAME
			AlignDefault, // RAW MARKER
			AlignDefault, // NORMALIZED MARKER
			AlignCenter,  // MARKER ROW
			AlignCenter,  // HEADER ROW
			AlignCenter,  // DATA ROW
		},
	}
}
