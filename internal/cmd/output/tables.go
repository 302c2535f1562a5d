package output

import (
	"os"

	"github.com/polarmerge/polarmerge/internal/cmd/globals"
	"github.com/polarmerge/polarmerge/internal/cmd/table"
	"github.com/polarmerge/polarmerge/pkg/tables"
)

// Print formats data to stdout in the globally selected format.
func Print(globalFlags *globals.Flags, data any) error {
	formatter := NewFormatter(Format(globalFlags.Output))
	return formatter.Format(os.Stdout, data)
}

// PrintTable renders a result table to stdout. When limit is positive, only
// the first limit rows are rendered.
func PrintTable(globalFlags *globals.Flags, t *tables.Table, limit int) error {
	return Print(globalFlags, table.FromTable(t, limit))
}
