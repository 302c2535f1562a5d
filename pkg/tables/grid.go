package tables

// Grid is a raw rectangular sheet as read from a file. Rows may be ragged;
// cells beyond a short row read as empty. It carries no header semantics —
// interpreting marker, header, and data rows is the layout's job.
type Grid [][]string

// Rows returns the number of rows in the grid.
func (g Grid) Rows() int {
	return len(g)
}

// Width returns the widest row's length.
func (g Grid) Width() int {
	w := 0
	for _, row := range g {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Cell returns the value at (row, col), or the empty string when the
// coordinates fall outside the grid or beyond a ragged row.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Row returns row i, or nil when out of range.
func (g Grid) Row(i int) []string {
	if i < 0 || i >= len(g) {
		return nil
	}
	return g[i]
}
