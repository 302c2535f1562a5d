// Package export writes result tables to delimited text files or xlsx
// workbooks. The format is chosen by file extension; missing cells are
// written as empty strings either way.
package export

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/polarmerge/polarmerge/pkg/errors"
	"github.com/polarmerge/polarmerge/pkg/tables"
)

// DefaultSheetName is used for xlsx output when no sheet name is configured.
const DefaultSheetName = "Sheet1"

// writer collects output settings before a write.
type writer struct {
	sheet string
	comma rune
}

// Option is a function that configures a write.
type Option func(*writer) error

// WithSheetName names the sheet an xlsx write produces. Ignored for
// delimited output.
func WithSheetName(name string) Option {
	return func(w *writer) error {
		if name == "" {
			return errors.NewConfigurationError("sheet", name, "sheet name must not be empty")
		}
		w.sheet = name
		return nil
	}
}

// WithDelimiter overrides the field delimiter for delimited output. Ignored
// for xlsx output.
func WithDelimiter(comma rune) Option {
	return func(w *writer) error {
		if comma == 0 {
			return errors.NewConfigurationError("delimiter", comma, "delimiter must not be NUL")
		}
		w.comma = comma
		return nil
	}
}

// Write writes t to path. The extension picks the format: .xlsx produces a
// workbook, anything else delimited text with the delimiter implied by the
// extension (tab for .tsv, comma otherwise).
func Write(path string, t *tables.Table, opts ...Option) error {
	w := &writer{sheet: DefaultSheetName}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(w); err != nil {
			return err
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" {
		return w.writeXLSX(path, t)
	}

	if w.comma == 0 {
		w.comma = delimiterFor(ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}

	if err := w.writeDelimited(f, t); err != nil {
		f.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	return nil
}

// Delimited writes t as delimiter-separated text to w. Records are
// newline-terminated without carriage returns.
func Delimited(w io.Writer, t *tables.Table, comma rune) error {
	ew := &writer{comma: comma}
	return ew.writeDelimited(w, t)
}

func (w *writer) writeDelimited(out io.Writer, t *tables.Table) error {
	cw := csv.NewWriter(out)
	if w.comma != 0 {
		cw.Comma = w.comma
	}
	// WriteAll flushes and surfaces any buffered write error itself.
	return cw.WriteAll(t.Records())
}

func (w *writer) writeXLSX(path string, t *tables.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(DefaultSheetName, w.sheet); err != nil {
		return errors.WrapIO("rename sheet", path, err)
	}

	for col, name := range t.Names() {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return errors.WrapIO("address cell", path, err)
		}
		if err := f.SetCellValue(w.sheet, cell, name); err != nil {
			return errors.WrapIO("write cell", path, err)
		}
	}

	for col := 0; col < t.Width(); col++ {
		column := t.ColumnAt(col)
		for row, c := range column.Cells {
			if c.IsMissing() {
				continue
			}
			addr, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return errors.WrapIO("address cell", path, err)
			}
			var value any = c.String()
			if n, ok := c.Number(); ok {
				value = n
			}
			if err := f.SetCellValue(w.sheet, addr, value); err != nil {
				return errors.WrapIO("write cell", path, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.WrapIO("save", path, err)
	}
	return nil
}

// delimiterFor maps a file extension to its conventional delimiter.
func delimiterFor(ext string) rune {
	if ext == ".tsv" {
		return '\t'
	}
	return ','
}
