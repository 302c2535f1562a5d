package merge

import (
	"fmt"
	"strings"

	"github.com/polarmerge/polarmerge/pkg/errors"
	"github.com/polarmerge/polarmerge/pkg/layout"
	"github.com/polarmerge/polarmerge/pkg/polarity"
	"github.com/polarmerge/polarmerge/pkg/samples"
	"github.com/polarmerge/polarmerge/pkg/tables"
)

// annotationTable extracts the annotation block as a text table. Header
// names are sanitized (so the join key reads Compound whatever punctuation
// the export used); marker and header rows are dropped; blank cells become
// missing.
func annotationTable(grid tables.Grid, span layout.Span, l layout.Layout) (*tables.Table, error) {
	names := make([]string, 0, span.Width())
	for c := span.Start; c < span.End; c++ {
		names = append(names, grid.Cell(l.HeaderRow, c))
	}
	names = tables.SanitizeNames(names)

	rows := dataRowCount(grid, l)
	cols := make([]tables.Column, span.Width())
	for j := 0; j < span.Width(); j++ {
		cells := make([]tables.Cell, rows)
		for i := 0; i < rows; i++ {
			cells[i] = tables.Text(grid.Cell(l.DataRow+i, span.Start+j))
		}
		cols[j] = tables.Column{Name: names[j], Cells: cells}
	}

	return tables.New(cols...)
}

// abundanceTable extracts one abundance block, narrowed to the mapped
// samples in map order and renamed to <prefix><unique name>. The block's
// sample set and the map's must match exactly in both directions; cells are
// parsed as numbers with non-numeric input becoming missing.
func abundanceTable(grid tables.Grid, span layout.Span, l layout.Layout,
	pairs []samples.Pair, prefix string, mode polarity.Mode, block string) (*tables.Table, error) {

	// Original sample name -> grid column.
	at := make(map[string]int, span.Width())
	order := make([]string, 0, span.Width())
	for c := span.Start; c < span.End; c++ {
		name := strings.TrimSpace(grid.Cell(l.HeaderRow, c))
		if _, dup := at[name]; dup {
			return nil, errors.NewMalformedInputError("intensity",
				fmt.Sprintf("duplicate sample column %q in %s block", name, block))
		}
		at[name] = c
		order = append(order, name)
	}

	// Every mapped sample must appear in the block...
	var fromTable []string
	mapped := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		mapped[p.Original] = true
		if _, ok := at[p.Original]; !ok {
			fromTable = append(fromTable, p.Original)
		}
	}
	if len(fromTable) > 0 {
		return nil, errors.NewMissingSampleError(mode.String(), block, "intensity table", fromTable)
	}

	// ...and every block column must be mapped. A silent drop here would
	// hide a sample from the merged output.
	var fromMap []string
	for _, name := range order {
		if !mapped[name] {
			fromMap = append(fromMap, name)
		}
	}
	if len(fromMap) > 0 {
		return nil, errors.NewMissingSampleError(mode.String(), block, "sample map", fromMap)
	}

	rows := dataRowCount(grid, l)
	cols := make([]tables.Column, len(pairs))
	for j, p := range pairs {
		c := at[p.Original]
		cells := make([]tables.Cell, rows)
		for i := 0; i < rows; i++ {
			cells[i] = tables.ParseNumber(grid.Cell(l.DataRow+i, c))
		}
		cols[j] = tables.Column{Name: prefix + p.Unique, Cells: cells}
	}

	return tables.New(cols...)
}

func dataRowCount(grid tables.Grid, l layout.Layout) int {
	n := grid.Rows() - l.DataRow
	if n < 0 {
		return 0
	}
	return n
}
