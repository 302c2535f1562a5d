package tables

import (
	"fmt"
	"sort"

	"github.com/polarmerge/polarmerge/pkg/errors"
)

// Select returns a table holding only the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		col, ok := t.Column(name)
		if !ok {
			return nil, errors.NewMalformedInputError("table",
				fmt.Sprintf("no column %q", name))
		}
		cols = append(cols, col)
	}
	return New(cols...)
}

// Drop returns a table without the named columns. Absent names are ignored.
func (t *Table) Drop(names ...string) *Table {
	dropped := make(map[string]bool, len(names))
	for _, name := range names {
		dropped[name] = true
	}

	cols := make([]Column, 0, len(t.cols))
	for _, col := range t.cols {
		if !dropped[col.Name] {
			cols = append(cols, col)
		}
	}

	nt, _ := New(cols...) // subset of a valid table stays valid
	return nt
}

// WithNames returns a table with all column names replaced positionally.
func (t *Table) WithNames(names []string) (*Table, error) {
	if len(names) != len(t.cols) {
		return nil, errors.NewMalformedInputError("table",
			fmt.Sprintf("%d names for %d columns", len(names), len(t.cols)))
	}
	cols := make([]Column, len(t.cols))
	for i, col := range t.cols {
		cols[i] = Column{Name: names[i], Cells: col.Cells}
	}
	return New(cols...)
}

// WithColumn returns a table with an extra column appended. The cell count
// must match the row count and the name must be new.
func (t *Table) WithColumn(name string, cells []Cell) (*Table, error) {
	if t.Width() > 0 && len(cells) != t.Len() {
		return nil, errors.NewMalformedInputError("table",
			fmt.Sprintf("column %q has %d cells, want %d", name, len(cells), t.Len()))
	}
	cols := make([]Column, 0, len(t.cols)+1)
	cols = append(cols, t.cols...)
	cols = append(cols, Column{Name: name, Cells: cells})
	return New(cols...)
}

// WithConstant returns a table with an extra column holding the same cell in
// every row.
func (t *Table) WithConstant(name string, c Cell) (*Table, error) {
	cells := make([]Cell, t.Len())
	for i := range cells {
		cells[i] = c
	}
	return t.WithColumn(name, cells)
}

// CoerceNumber returns a table with the named columns parsed to numeric
// cells; non-numeric and blank cells become missing. Absent names are
// ignored so callers can coerce a standard set of columns unconditionally.
func (t *Table) CoerceNumber(names ...string) *Table {
	target := make(map[string]bool, len(names))
	for _, name := range names {
		target[name] = true
	}

	nt := t.clone()
	for i, col := range nt.cols {
		if !target[col.Name] {
			continue
		}
		cells := make([]Cell, len(col.Cells))
		for j, c := range col.Cells {
			if n, ok := c.AsNumber(); ok {
				cells[j] = Number(n)
			} else {
				cells[j] = Missing()
			}
		}
		nt.cols[i] = Column{Name: col.Name, Cells: cells}
	}
	return nt
}

// Filter returns a table holding the rows for which keep reports true, in
// input order.
func (t *Table) Filter(keep func(row int) bool) *Table {
	rows := make([]int, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if keep(i) {
			rows = append(rows, i)
		}
	}
	return t.Take(rows)
}

// Take returns a table holding the given rows in the given order. Row
// indexes must be in range; Take is a building block for ops that already
// computed valid positions.
func (t *Table) Take(rows []int) *Table {
	cols := make([]Column, len(t.cols))
	for j, col := range t.cols {
		cells := make([]Cell, len(rows))
		for i, r := range rows {
			cells[i] = col.Cells[r]
		}
		cols[j] = Column{Name: col.Name, Cells: cells}
	}
	nt, _ := New(cols...)
	return nt
}

// SortByNumberDesc returns a table stably sorted by the named column,
// descending. Cells without a numeric value sort last; ties and non-numeric
// runs keep input order.
func (t *Table) SortByNumberDesc(name string) (*Table, error) {
	col, ok := t.Column(name)
	if !ok {
		return nil, errors.NewMalformedInputError("table",
			fmt.Sprintf("no column %q", name))
	}

	rows := make([]int, t.Len())
	for i := range rows {
		rows[i] = i
	}

	sort.SliceStable(rows, func(a, b int) bool {
		va, oka := col.Cells[rows[a]].AsNumber()
		vb, okb := col.Cells[rows[b]].AsNumber()
		if oka && okb {
			return va > vb
		}
		return oka && !okb
	})

	return t.Take(rows), nil
}

// DedupBy returns a table keeping the first row for each distinct export
// string of the named column. Missing cells export as "", so all rows with a
// missing key collapse onto the first of them.
func (t *Table) DedupBy(name string) (*Table, error) {
	col, ok := t.Column(name)
	if !ok {
		return nil, errors.NewMalformedInputError("table",
			fmt.Sprintf("no column %q", name))
	}

	seen := make(map[string]bool, t.Len())
	rows := make([]int, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		key := col.Cells[i].String()
		if seen[key] {
			continue
		}
		seen[key] = true
		rows = append(rows, i)
	}

	return t.Take(rows), nil
}

// DropBlankColumns returns a table without columns whose every cell is
// missing or whitespace-only. A table with zero data rows keeps all its
// columns: an empty export still documents its schema.
func (t *Table) DropBlankColumns() *Table {
	if t.Len() == 0 {
		return t.clone()
	}

	cols := make([]Column, 0, len(t.cols))
	for _, col := range t.cols {
		blank := true
		for _, c := range col.Cells {
			if !c.IsBlank() {
				blank = false
				break
			}
		}
		if !blank {
			cols = append(cols, col)
		}
	}

	nt, _ := New(cols...)
	return nt
}

// Bind column-binds tables positionally: row i of every table becomes one
// row. All tables must have the same row count and disjoint column names.
func (t *Table) Bind(others ...*Table) (*Table, error) {
	cols := make([]Column, 0, len(t.cols))
	cols = append(cols, t.cols...)

	for _, other := range others {
		if other.Len() != t.Len() {
			return nil, errors.NewMalformedInputError("table",
				fmt.Sprintf("bind of %d rows with %d rows", t.Len(), other.Len()))
		}
		cols = append(cols, other.cols...)
	}

	return New(cols...)
}

// Stack row-binds two tables: t's rows first, then other's. The column set
// is the union (t's order, then other's new columns); cells absent from a
// side are missing. A nil other is a no-op.
func (t *Table) Stack(other *Table) *Table {
	if other == nil || other.Width() == 0 {
		return t.clone()
	}

	names := t.Names()
	for _, name := range other.Names() {
		if !t.Has(name) {
			names = append(names, name)
		}
	}

	total := t.Len() + other.Len()
	cols := make([]Column, len(names))
	for j, name := range names {
		cells := make([]Cell, 0, total)
		if col, ok := t.Column(name); ok {
			cells = append(cells, col.Cells...)
		} else {
			for i := 0; i < t.Len(); i++ {
				cells = append(cells, Missing())
			}
		}
		if col, ok := other.Column(name); ok {
			cells = append(cells, col.Cells...)
		} else {
			for i := 0; i < other.Len(); i++ {
				cells = append(cells, Missing())
			}
		}
		cols[j] = Column{Name: name, Cells: cells}
	}

	nt, _ := New(cols...)
	return nt
}

// LeftJoin joins right onto t by the key column: every row of t appears
// exactly once, extended with the first matching right row (matching by key
// export string) or missing cells when there is none. Right columns whose
// names already exist in t are not carried, so the left side's values win
// everywhere but the appended columns.
func (t *Table) LeftJoin(right *Table, key string) (*Table, error) {
	leftKey, ok := t.Column(key)
	if !ok {
		return nil, errors.NewMalformedInputError("join",
			fmt.Sprintf("left side has no column %q", key))
	}
	rightKey, ok := right.Column(key)
	if !ok {
		return nil, errors.NewMalformedInputError("join",
			fmt.Sprintf("right side has no column %q", key))
	}

	// Columns carried over from the right side.
	var carried []Column
	for _, col := range right.cols {
		if col.Name != key && !t.Has(col.Name) {
			carried = append(carried, col)
		}
	}

	// First matching right row per key.
	match := make(map[string]int, right.Len())
	for i := 0; i < right.Len(); i++ {
		k := rightKey.Cells[i].String()
		if _, ok := match[k]; !ok {
			match[k] = i
		}
	}

	cols := make([]Column, 0, len(t.cols)+len(carried))
	cols = append(cols, t.cols...)
	for _, rc := range carried {
		cells := make([]Cell, t.Len())
		for i := 0; i < t.Len(); i++ {
			if r, ok := match[leftKey.Cells[i].String()]; ok {
				cells[i] = rc.Cells[r]
			} else {
				cells[i] = Missing()
			}
		}
		cols = append(cols, Column{Name: rc.Name, Cells: cells})
	}

	return New(cols...)
}

// MoveToFront returns a table with the named columns first, in the given
// order, followed by the remaining columns in their original order. Absent
// names are ignored.
func (t *Table) MoveToFront(names ...string) *Table {
	front := make([]Column, 0, len(names))
	taken := make(map[string]bool, len(names))
	for _, name := range names {
		if col, ok := t.Column(name); ok && !taken[name] {
			front = append(front, col)
			taken[name] = true
		}
	}

	cols := make([]Column, 0, len(t.cols))
	cols = append(cols, front...)
	for _, col := range t.cols {
		if !taken[col.Name] {
			cols = append(cols, col)
		}
	}

	nt, _ := New(cols...)
	return nt
}
