// Package output renders command results as tables, JSON, or YAML, picking
// a format for the destination when none is forced: tables on a terminal,
// JSON into pipes.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/polarmerge/polarmerge/internal/cmd/table"
)

// Format names an output encoding.
type Format string

// The supported output formats.
const (
	FormatTable Format = "table"
	FormatWide  Format = "wide"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// maxCellWidth is where non-wide table cells are cut. Compound descriptions
// from vendor libraries can run to hundreds of characters.
const maxCellWidth = 60

// Formatter renders a value to a writer in one encoding.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter returns the formatter for a format. Unknown formats render
// as tables.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatWide:
		return &TableFormatter{Wide: true}
	default:
		return &TableFormatter{}
	}
}

// DetectFormat resolves the output format: an explicit choice wins, a
// terminal gets tables, anything else gets JSON.
func DetectFormat(explicit string) Format {
	if explicit != "" {
		return Format(strings.ToLower(explicit))
	}
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return FormatTable
	}
	return FormatJSON
}

// ParseFormat validates a format name from a flag.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case "", FormatTable, FormatWide, FormatJSON, FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml, wide", s)
	}
}

// JSONFormatter renders indented JSON.
type JSONFormatter struct {
	Indent string
}

// Format implements Formatter.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	if f.Indent != "" {
		enc.SetIndent("", f.Indent)
	}
	return enc.Encode(data)
}

// YAMLFormatter renders YAML.
type YAMLFormatter struct{}

// Format implements Formatter.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	out, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// TableFormatter renders terminal tables. Wide tables keep full cell
// contents; regular ones truncate long cells.
type TableFormatter struct {
	Wide bool
}

// Format renders table.Data directly; other structs and struct slices are
// converted through reflection, and anything else falls back to JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if d, ok := data.(table.Data); ok {
		return f.render(w, d)
	}
	if d := reflectToData(data); d != nil {
		return f.render(w, *d)
	}
	return (&JSONFormatter{Indent: "  "}).Format(w, data)
}

func (f *TableFormatter) render(w io.Writer, data table.Data) error {
	var config tablewriter.Config
	if align := alignments(data.ColumnAlignment); align != nil {
		config.Header.Alignment = tw.CellAlignment{PerColumn: align}
		config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}

	tbl := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	if len(data.Headers) > 0 {
		tbl.Header(anySlice(data.Headers)...)
	}
	for _, row := range data.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = f.clip(cell)
		}
		if err := tbl.Append(anySlice(cells)...); err != nil {
			return err
		}
	}

	return tbl.Render()
}

// clip shortens a cell for regular table output.
func (f *TableFormatter) clip(cell string) string {
	if f.Wide || len(cell) <= maxCellWidth {
		return cell
	}
	return cell[:maxCellWidth-3] + "..."
}

// alignments translates the column alignment hints to tablewriter's model.
func alignments(hints []table.Align) []tw.Align {
	if len(hints) == 0 {
		return nil
	}
	out := make([]tw.Align, len(hints))
	for i, hint := range hints {
		switch hint {
		case table.AlignLeft:
			out[i] = tw.AlignLeft
		case table.AlignCenter:
			out[i] = tw.AlignCenter
		case table.AlignRight:
			out[i] = tw.AlignRight
		default:
			out[i] = tw.Skip
		}
	}
	return out
}

func anySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// reflectToData converts a struct or struct slice to table.Data: slices
// become one row per element, a single struct becomes a Property/Value
// listing. Returns nil when data has no tabular shape.
func reflectToData(data any) *table.Data {
	v := reflect.ValueOf(data)
	switch {
	case v.Kind() == reflect.Slice && v.Len() > 0 && v.Index(0).Kind() == reflect.Struct:
		return structRows(v)
	case v.Kind() == reflect.Struct:
		return propertyRows(v)
	default:
		return nil
	}
}

func structRows(v reflect.Value) *table.Data {
	t := v.Index(0).Type()

	headers := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		headers = append(headers, fieldHeader(t.Field(i)))
	}

	rows := make([][]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		row := make([]string, 0, t.NumField())
		for j := 0; j < t.NumField(); j++ {
			row = append(row, fmt.Sprintf("%v", elem.Field(j).Interface()))
		}
		rows = append(rows, row)
	}

	return &table.Data{Headers: headers, Rows: rows}
}

func propertyRows(v reflect.Value) *table.Data {
	t := v.Type()

	rows := make([][]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		rows = append(rows, []string{
			fieldHeader(t.Field(i)),
			fmt.Sprintf("%v", v.Field(i).Interface()),
		})
	}

	return &table.Data{Headers: []string{"Property", "Value"}, Rows: rows}
}

// fieldHeader derives a display header from a struct field: the json tag
// title-cased with underscores as spaces, or the Go field name without one.
func fieldHeader(field reflect.StructField) string {
	tag, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if tag == "" || tag == "-" {
		return field.Name
	}
	return cases.Title(language.English).String(strings.ReplaceAll(tag, "_", " "))
}
