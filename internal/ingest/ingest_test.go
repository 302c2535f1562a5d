package ingest_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polarmerge/polarmerge/internal/ingest"
	"github.com/polarmerge/polarmerge/pkg/errors"
	"github.com/polarmerge/polarmerge/pkg/export"
	"github.com/polarmerge/polarmerge/pkg/tables"
)

func TestGridDelimited(t *testing.T) {
	grid, err := ingest.Grid(context.Background(), filepath.Join("testdata", "intensity.csv"))
	require.NoError(t, err)

	assert.Equal(t, 4, grid.Rows())
	assert.Equal(t, "Raw abundance", grid.Cell(0, 2))
	assert.Equal(t, "Normalised abundance", grid.Cell(0, 4))
	assert.Equal(t, "Compound", grid.Cell(1, 0))
	assert.Equal(t, "0.6", grid.Cell(2, 5))
	// The marker row is one field short; ragged rows survive ingestion.
	assert.Len(t, grid[0], 5)
	assert.Len(t, grid[1], 6)
}

func TestTableDetectsSemicolons(t *testing.T) {
	table, err := ingest.Table(context.Background(), filepath.Join("testdata", "identifications.txt"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Compound", "Score", "Fragmentation_Score", "Description"}, table.Names())
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, "alanine", table.Cell(0, "Description").String())
}

func TestGridUnsupportedExtension(t *testing.T) {
	_, err := ingest.Grid(context.Background(), "input.pdf")
	assert.True(t, errors.IsConfiguration(err))
}

func TestGridMissingFile(t *testing.T) {
	_, err := ingest.Grid(context.Background(), filepath.Join("testdata", "absent.csv"))
	require.Error(t, err)

	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestGridMissingXLS(t *testing.T) {
	_, err := ingest.Grid(context.Background(), filepath.Join("testdata", "absent.xls"))
	require.Error(t, err)

	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestTableXLSXRoundTrip(t *testing.T) {
	table, err := tables.New(
		tables.Column{Name: "Compound", Cells: []tables.Cell{tables.Text("C1"), tables.Text("C2")}},
		tables.Column{Name: "Score", Cells: []tables.Cell{tables.Number(40.5), tables.Missing()}},
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "idents.xlsx")
	require.NoError(t, export.Write(path, table, export.WithSheetName("pos")))

	got, err := ingest.Table(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, table.Records(), got.Records())
}

func TestSamplesCanonicalHeaders(t *testing.T) {
	smap, err := ingest.Samples(context.Background(), filepath.Join("testdata", "samples.csv"))
	require.NoError(t, err)

	require.Equal(t, 2, smap.Len())
	mappings := smap.Mappings()
	assert.Equal(t, "P1", mappings[0].Pos)
	assert.Equal(t, "N1", mappings[0].Neg)
	assert.Equal(t, "QC1", mappings[0].Unique)
	assert.Equal(t, []string{"QC1", "QC2"}, smap.Uniques())
}

func TestSamplesLenientHeaders(t *testing.T) {
	// Headers drifted from the canonical spellings; the lenient grid route
	// picks them up.
	smap, err := ingest.Samples(context.Background(), filepath.Join("testdata", "samples_lenient.tsv"))
	require.NoError(t, err)

	require.Equal(t, 2, smap.Len())
	assert.Equal(t, []string{"QC1", "QC2"}, smap.Uniques())
}

func TestSamplesFromXLSX(t *testing.T) {
	sheet, err := tables.New(
		tables.Column{Name: "Original name (pos)", Cells: []tables.Cell{tables.Text("P1")}},
		tables.Column{Name: "Original name (neg)", Cells: []tables.Cell{tables.Text("N1")}},
		tables.Column{Name: "Unique name", Cells: []tables.Cell{tables.Text("QC1")}},
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "samples.xlsx")
	require.NoError(t, export.Write(path, sheet))

	smap, err := ingest.Samples(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"QC1"}, smap.Uniques())
}

func TestSamplesUnsupportedExtension(t *testing.T) {
	_, err := ingest.Samples(context.Background(), "samples.pdf")
	assert.True(t, errors.IsConfiguration(err))
}
