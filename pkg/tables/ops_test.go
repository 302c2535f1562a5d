package tables_test

import (
	"testing"

	"github.com/polarmerge/polarmerge/pkg/errors"
	"github.com/polarmerge/polarmerge/pkg/tables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, records [][]string) *tables.Table {
	t.Helper()
	tbl, err := tables.FromRecords(records)
	require.NoError(t, err)
	return tbl
}

func column(t *testing.T, tbl *tables.Table, name string) []string {
	t.Helper()
	col, ok := tbl.Column(name)
	require.True(t, ok, "column %q", name)
	out := make([]string, len(col.Cells))
	for i, c := range col.Cells {
		out[i] = c.String()
	}
	return out
}

func TestSelectAndDrop(t *testing.T) {
	tbl := mustTable(t, [][]string{
		{"A", "B", "C"},
		{"1", "2", "3"},
	})

	t.Run("select reorders", func(t *testing.T) {
		got, err := tbl.Select("C", "A")
		require.NoError(t, err)
		assert.Equal(t, []string{"C", "A"}, got.Names())
	})

	t.Run("select missing column errors", func(t *testing.T) {
		_, err := tbl.Select("Z")
		assert.True(t, errors.IsMalformedInput(err))
	})

	t.Run("drop ignores absent names", func(t *testing.T) {
		got := tbl.Drop("B", "Z")
		assert.Equal(t, []string{"A", "C"}, got.Names())
	})
}

func TestWithNamesAndColumns(t *testing.T) {
	tbl := mustTable(t, [][]string{
		{"QC_1", "QC_2"},
		{"10", "20"},
	})

	t.Run("rename positionally", func(t *testing.T) {
		got, err := tbl.WithNames([]string{"Norm_S1", "Norm_S2"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Norm_S1", "Norm_S2"}, got.Names())
		// receiver untouched
		assert.Equal(t, []string{"QC_1", "QC_2"}, tbl.Names())
	})

	t.Run("name count must match", func(t *testing.T) {
		_, err := tbl.WithNames([]string{"only-one"})
		assert.True(t, errors.IsMalformedInput(err))
	})

	t.Run("constant column", func(t *testing.T) {
		got, err := tbl.WithConstant("Polarity", tables.Text("pos"))
		require.NoError(t, err)
		assert.Equal(t, []string{"pos"}, column(t, got, "Polarity"))
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		_, err := tbl.WithConstant("QC_1", tables.Text("x"))
		assert.True(t, errors.IsMalformedInput(err))
	})
}

func TestCoerceNumber(t *testing.T) {
	tbl := mustTable(t, [][]string{
		{"Score", "Description"},
		{"45.2", "Citrate"},
		{"n/a", "Malate"},
		{"", "Fumarate"},
	})

	got := tbl.CoerceNumber("Score", "NotThere")

	n, ok := got.Cell(0, "Score").Number()
	assert.True(t, ok)
	assert.Equal(t, 45.2, n)
	assert.True(t, got.Cell(1, "Score").IsMissing())
	assert.True(t, got.Cell(2, "Score").IsMissing())
	// untargeted column untouched
	assert.Equal(t, "Citrate", got.Cell(0, "Description").String())
}

func TestSortByNumberDesc(t *testing.T) {
	tbl := mustTable(t, [][]string{
		{"Compound", "Score"},
		{"C1", "10"},
		{"C2", ""},
		{"C3", "45.2"},
		{"C4", "10"},
	})

	got, err := tbl.SortByNumberDesc("Score")
	require.NoError(t, err)

	// descending, ties stable (C1 before C4), missing last
	assert.Equal(t, []string{"C3", "C1", "C4", "C2"}, column(t, got, "Compound"))
}

func TestDedupBy(t *testing.T) {
	tbl := mustTable(t, [][]string{
		{"Compound", "Description"},
		{"C1", "Citrate"},
		{"C2", "Citrate"},
		{"C3", ""},
		{"C4", ""},
	})

	t.Run("keeps first per key", func(t *testing.T) {
		got, err := tbl.DedupBy("Description")
		require.NoError(t, err)
		assert.Equal(t, []string{"C1", "C3"}, column(t, got, "Compound"))
	})

	t.Run("missing keys share one slot", func(t *testing.T) {
		got, err := tbl.DedupBy("Description")
		require.NoError(t, err)
		assert.Equal(t, 2, got.Len())
	})
}

func TestDropBlankColumns(t *testing.T) {
	t.Run("all-blank column removed", func(t *testing.T) {
		tbl := mustTable(t, [][]string{
			{"Compound", "Notes", "Score"},
			{"C1", "", "45"},
			{"C2", "  ", "31"},
		})
		got := tbl.DropBlankColumns()
		assert.Equal(t, []string{"Compound", "Score"}, got.Names())
	})

	t.Run("zero data rows keep all columns", func(t *testing.T) {
		tbl := mustTable(t, [][]string{{"Compound", "Notes"}})
		got := tbl.DropBlankColumns()
		assert.Equal(t, []string{"Compound", "Notes"}, got.Names())
	})
}

func TestBind(t *testing.T) {
	left := mustTable(t, [][]string{
		{"Compound"},
		{"C1"},
		{"C2"},
	})
	right := mustTable(t, [][]string{
		{"Norm_S1"},
		{"11"},
		{"22"},
	})

	t.Run("positional bind", func(t *testing.T) {
		got, err := left.Bind(right)
		require.NoError(t, err)
		assert.Equal(t, []string{"Compound", "Norm_S1"}, got.Names())
		assert.Equal(t, "22", got.Cell(1, "Norm_S1").String())
	})

	t.Run("row count mismatch errors", func(t *testing.T) {
		short := mustTable(t, [][]string{{"X"}, {"1"}})
		_, err := left.Bind(short)
		assert.True(t, errors.IsMalformedInput(err))
	})

	t.Run("name collision errors", func(t *testing.T) {
		dup := mustTable(t, [][]string{{"Compound"}, {"x"}, {"y"}})
		_, err := left.Bind(dup)
		assert.True(t, errors.IsMalformedInput(err))
	})
}

func TestStack(t *testing.T) {
	pos := mustTable(t, [][]string{
		{"Compound", "Norm_S1"},
		{"C1", "10"},
	})
	neg := mustTable(t, [][]string{
		{"Compound", "Norm_S2"},
		{"C2", "20"},
	})

	got := pos.Stack(neg)

	assert.Equal(t, []string{"Compound", "Norm_S1", "Norm_S2"}, got.Names())
	assert.Equal(t, 2, got.Len())
	assert.Equal(t, []string{"C1", "C2"}, column(t, got, "Compound"))
	assert.True(t, got.Cell(0, "Norm_S2").IsMissing())
	assert.True(t, got.Cell(1, "Norm_S1").IsMissing())

	t.Run("nil other is a copy", func(t *testing.T) {
		got := pos.Stack(nil)
		assert.Equal(t, pos.Records(), got.Records())
	})
}

func TestLeftJoin(t *testing.T) {
	ids := mustTable(t, [][]string{
		{"Compound", "Score", "Description"},
		{"C1", "45", "Citrate"},
		{"C9", "40", "Unknown"},
	})
	wide := mustTable(t, [][]string{
		{"Compound", "Norm_S1", "Description"},
		{"C1", "101", "stale"},
		{"C1", "999", "stale dup"},
		{"C2", "202", "other"},
	})

	got, err := ids.LeftJoin(wide, "Compound")
	require.NoError(t, err)

	t.Run("every left row exactly once", func(t *testing.T) {
		assert.Equal(t, 2, got.Len())
		assert.Equal(t, []string{"C1", "C9"}, column(t, got, "Compound"))
	})

	t.Run("first matching right row wins", func(t *testing.T) {
		assert.Equal(t, "101", got.Cell(0, "Norm_S1").String())
	})

	t.Run("unmatched left rows get missing", func(t *testing.T) {
		assert.True(t, got.Cell(1, "Norm_S1").IsMissing())
	})

	t.Run("left values win on shared names", func(t *testing.T) {
		assert.Equal(t, "Citrate", got.Cell(0, "Description").String())
	})

	t.Run("missing key errors", func(t *testing.T) {
		_, err := ids.LeftJoin(wide, "Nope")
		assert.True(t, errors.IsMalformedInput(err))
	})
}

func TestFilterAndMoveToFront(t *testing.T) {
	tbl := mustTable(t, [][]string{
		{"Compound", "Score", "Polarity"},
		{"C1", "45", "pos"},
		{"C2", "10", "pos"},
	})

	t.Run("filter by row predicate", func(t *testing.T) {
		score, _ := tbl.Column("Score")
		got := tbl.Filter(func(row int) bool {
			n, ok := score.Cells[row].AsNumber()
			return ok && n >= 30
		})
		assert.Equal(t, []string{"C1"}, column(t, got, "Compound"))
	})

	t.Run("move to front", func(t *testing.T) {
		got := tbl.MoveToFront("Polarity", "Compound")
		assert.Equal(t, []string{"Polarity", "Compound", "Score"}, got.Names())
	})

	t.Run("move ignores absent names", func(t *testing.T) {
		got := tbl.MoveToFront("Nope", "Score")
		assert.Equal(t, []string{"Score", "Compound", "Polarity"}, got.Names())
	})
}
