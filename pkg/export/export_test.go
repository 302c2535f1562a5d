package export_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/polarmerge/polarmerge/pkg/errors"
	"github.com/polarmerge/polarmerge/pkg/export"
	"github.com/polarmerge/polarmerge/pkg/tables"
)

func resultTable(t *testing.T) *tables.Table {
	t.Helper()
	table, err := tables.New(
		tables.Column{Name: "Compound", Cells: []tables.Cell{tables.Text("C1"), tables.Text("C2")}},
		tables.Column{Name: "Score", Cells: []tables.Cell{tables.Number(40.5), tables.Missing()}},
		tables.Column{Name: "Description", Cells: []tables.Cell{tables.Text("alanine"), tables.Missing()}},
	)
	require.NoError(t, err)
	return table
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, export.Write(path, resultTable(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	got := string(data)
	assert.Equal(t, "Compound,Score,Description\nC1,40.5,alanine\nC2,,\n", got)
	assert.NotContains(t, got, "\r", "delimited output must not use CRLF")
}

func TestWriteTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")
	require.NoError(t, export.Write(path, resultTable(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Compound\tScore\tDescription\nC1\t40.5\talanine\nC2\t\t\n", string(data))
}

func TestWriteCustomDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, export.Write(path, resultTable(t), export.WithDelimiter(';')))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Compound;Score;Description\n"))
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, export.Write(path, resultTable(t), export.WithSheetName("pos")))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "pos", f.GetSheetName(0))

	rows, err := f.GetRows("pos")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Compound", "Score", "Description"}, rows[0])
	assert.Equal(t, "C1", rows[1][0])
	assert.Equal(t, "40.5", rows[1][1])
	// The missing trailing cells leave the second data row short.
	assert.Equal(t, "C2", rows[2][0])
}

func TestWriteErrors(t *testing.T) {
	table := resultTable(t)

	err := export.Write(filepath.Join(t.TempDir(), "missing", "out.csv"), table)
	require.Error(t, err)
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)

	err = export.Write(filepath.Join(t.TempDir(), "out.xlsx"), table, export.WithSheetName(""))
	assert.True(t, errors.IsConfiguration(err))
}

func TestDelimitedWriter(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, export.Delimited(&sb, resultTable(t), '\t'))
	assert.Equal(t, "Compound\tScore\tDescription\nC1\t40.5\talanine\nC2\t\t\n", sb.String())
}
