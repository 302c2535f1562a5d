// Package ingest reads intensity grids, identification tables, and sample
// maps from the spreadsheet and delimited-text formats acquisition software
// exports: CSV/TSV/TXT with delimiter sniffing, xlsx workbooks, and legacy
// xls workbooks.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/polarmerge/polarmerge/pkg/errors"
	"github.com/polarmerge/polarmerge/pkg/logging"
	"github.com/polarmerge/polarmerge/pkg/tables"
)

// Grid reads a supported file into a raw cell grid. Rows keep their ragged
// widths; structural interpretation is left to the caller.
func Grid(ctx context.Context, path string) (tables.Grid, error) {
	var (
		grid tables.Grid
		err  error
	)

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xlsm":
		grid, err = xlsxGrid(path)
	case ".xls":
		grid, err = xlsGrid(path)
	case ".csv", ".tsv", ".txt":
		grid, err = delimitedGrid(path)
	default:
		return nil, errors.NewConfigurationError("input", path,
			fmt.Sprintf("unsupported file extension %q", ext))
	}
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Str("path", path).
		Int("rows", grid.Rows()).
		Msg("read grid")

	return grid, nil
}

// Table reads a file whose first row is a column header into a Table.
func Table(ctx context.Context, path string) (*tables.Table, error) {
	grid, err := Grid(ctx, path)
	if err != nil {
		return nil, err
	}

	t, err := tables.FromRecords(grid)
	if err != nil {
		return nil, errors.WrapMalformed(path, err)
	}
	return t, nil
}
