// Package tables provides the column-oriented value-table model the mergers
// are built from: Cell values (text, number, or missing), raw file Grids, and
// the Table type with the generic operations the merge and reconcile
// pipelines compose — select, rename, bind, filter, stable numeric sort,
// first-occurrence dedup, left join, blank-column pruning, and delimited
// record export.
//
// Tables are immutable: every operation returns a new Table and never
// mutates its receiver, so intermediate pipeline stages can be kept, logged,
// or compared freely.
package tables

import (
	"fmt"

	"github.com/polarmerge/polarmerge/pkg/errors"
)

// Column is a named vector of cells.
type Column struct {
	Name  string
	Cells []Cell
}

// Table is an ordered collection of equally long, uniquely named columns.
type Table struct {
	cols  []Column
	index map[string]int
}

// New constructs a Table from columns, validating that names are unique and
// lengths agree.
func New(cols ...Column) (*Table, error) {
	t := &Table{
		cols:  make([]Column, 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}

	rows := -1
	for _, col := range cols {
		if col.Name == "" {
			return nil, errors.NewMalformedInputError("table", "column with empty name")
		}
		if _, ok := t.index[col.Name]; ok {
			return nil, errors.NewMalformedInputError("table",
				fmt.Sprintf("duplicate column name %q", col.Name))
		}
		if rows == -1 {
			rows = len(col.Cells)
		} else if len(col.Cells) != rows {
			return nil, errors.NewMalformedInputError("table",
				fmt.Sprintf("column %q has %d cells, want %d", col.Name, len(col.Cells), rows))
		}
		t.index[col.Name] = len(t.cols)
		t.cols = append(t.cols, col)
	}

	return t, nil
}

// FromRecords constructs a Table from a header row plus data rows. Header
// names are taken verbatim and must be unique (sanitize first with
// SanitizeNames when reading vendor exports). Short data rows are padded
// with missing cells; long rows are truncated to the header width. Cells are
// text (blank becomes missing); use CoerceNumber afterwards for numeric
// columns.
func FromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, errors.NewMalformedInputError("table", "no header row")
	}

	header := records[0]
	if len(header) == 0 {
		return nil, errors.NewMalformedInputError("table", "empty header row")
	}

	data := records[1:]
	cols := make([]Column, len(header))
	for j, name := range header {
		cells := make([]Cell, len(data))
		for i, row := range data {
			if j < len(row) {
				cells[i] = Text(row[j])
			} else {
				cells[i] = Missing()
			}
		}
		cols[j] = Column{Name: name, Cells: cells}
	}

	return New(cols...)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil || len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Cells)
}

// Width returns the number of columns.
func (t *Table) Width() int {
	if t == nil {
		return 0
	}
	return len(t.cols)
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.cols))
	for i, col := range t.cols {
		names[i] = col.Name
	}
	return names
}

// Has reports whether a column exists.
func (t *Table) Has(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[name]
	return ok
}

// Column returns the named column. The cell slice is shared backing — treat
// it as read-only.
func (t *Table) Column(name string) (Column, bool) {
	if t == nil {
		return Column{}, false
	}
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.cols[i], true
}

// ColumnAt returns the column at position i.
func (t *Table) ColumnAt(i int) Column {
	return t.cols[i]
}

// Cell returns the cell at (row, name), or a missing cell when the column
// does not exist or the row is out of range.
func (t *Table) Cell(row int, name string) Cell {
	if t == nil {
		return Missing()
	}
	i, ok := t.index[name]
	if !ok || row < 0 || row >= t.Len() {
		return Missing()
	}
	return t.cols[i].Cells[row]
}

// Records renders the table as a header row plus data rows in export form:
// numbers in 'g' formatting, text verbatim, missing as empty strings.
func (t *Table) Records() [][]string {
	if t == nil {
		return nil
	}
	out := make([][]string, 0, t.Len()+1)
	out = append(out, t.Names())
	for i := 0; i < t.Len(); i++ {
		row := make([]string, len(t.cols))
		for j, col := range t.cols {
			row[j] = col.Cells[i].String()
		}
		out = append(out, row)
	}
	return out
}

// clone returns a shallow copy sharing cell slices; column headers and order
// are private to the copy. Ops that replace whole columns build on this.
func (t *Table) clone() *Table {
	nt := &Table{
		cols:  make([]Column, len(t.cols)),
		index: make(map[string]int, len(t.cols)),
	}
	copy(nt.cols, t.cols)
	for name, i := range t.index {
		nt.index[name] = i
	}
	return nt
}
