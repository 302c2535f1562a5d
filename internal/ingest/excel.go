package ingest

import (
	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/polarmerge/polarmerge/pkg/errors"
	"github.com/polarmerge/polarmerge/pkg/tables"
)

// xlsxGrid reads the first sheet of an xlsx workbook.
func xlsxGrid(path string) (tables.Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.NewMalformedInputError(path, "workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}
	return tables.Grid(rows), nil
}

// xlsGrid reads the first sheet of a legacy xls workbook.
func xlsGrid(path string) (tables.Grid, error) {
	book, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, errors.WrapParse("xls", path, err)
	}

	sheet := book.GetSheet(0)
	if sheet == nil {
		return nil, errors.NewMalformedInputError(path, "workbook has no sheets")
	}

	grid := make(tables.Grid, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol()+1)
		for j := 0; j <= row.LastCol(); j++ {
			cells = append(cells, row.Col(j))
		}
		grid = append(grid, cells)
	}
	return grid, nil
}
