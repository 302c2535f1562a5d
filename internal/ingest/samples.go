package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/polarmerge/polarmerge/pkg/errors"
	"github.com/polarmerge/polarmerge/pkg/logging"
	"github.com/polarmerge/polarmerge/pkg/samples"
)

// sampleRecord is the struct shape gocsv decodes delimited sample maps into.
// The tags carry the canonical header spellings.
type sampleRecord struct {
	Pos    string `csv:"Original name (pos)"`
	Neg    string `csv:"Original name (neg)"`
	Unique string `csv:"Unique name"`
}

// Samples reads a sample map from a supported file. Delimited files are
// decoded through gocsv against the canonical headers; when that matches
// nothing (hand-edited headers), the grid route's lenient header matching
// takes over. Spreadsheets go through the grid route directly.
func Samples(ctx context.Context, path string) (*samples.Map, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xlsm", ".xls":
		return samplesFromGrid(ctx, path)
	case ".csv", ".tsv", ".txt":
	default:
		return nil, errors.NewConfigurationError("samples", path,
			"unsupported file extension "+ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	comma := detectDelimiter(path, bytes.NewReader(probe(data)))
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = comma
		r.LazyQuotes = true
		return r
	})

	var records []*sampleRecord
	if err := gocsv.UnmarshalBytes(data, &records); err != nil {
		return nil, errors.WrapParse("sample map", path, err)
	}

	mappings := make([]samples.Mapping, 0, len(records))
	for _, rec := range records {
		m := samples.Mapping{
			Pos:    strings.TrimSpace(rec.Pos),
			Neg:    strings.TrimSpace(rec.Neg),
			Unique: strings.TrimSpace(rec.Unique),
		}
		if m.Pos == "" && m.Neg == "" && m.Unique == "" {
			continue
		}
		mappings = append(mappings, m)
	}

	if len(mappings) == 0 {
		// Headers did not match the canonical spellings exactly.
		smap, err := samplesFromGrid(ctx, path)
		if err != nil {
			return nil, err
		}
		return smap, nil
	}

	smap, err := samples.New(mappings...)
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Str("path", path).
		Int("samples", smap.Len()).
		Msg("read sample map")

	return smap, nil
}

func samplesFromGrid(ctx context.Context, path string) (*samples.Map, error) {
	grid, err := Grid(ctx, path)
	if err != nil {
		return nil, err
	}
	return samples.FromRecords(grid)
}
