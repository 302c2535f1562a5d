package ingest

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/csimplestring/go-csv/detector"

	"github.com/polarmerge/polarmerge/pkg/constants"
	"github.com/polarmerge/polarmerge/pkg/errors"
	"github.com/polarmerge/polarmerge/pkg/tables"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// delimitedGrid reads a delimiter-separated text file, sniffing the
// delimiter from the content rather than trusting the extension.
func delimitedGrid(path string) (tables.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return parseDelimited(path, data)
}

func parseDelimited(path string, data []byte) (tables.Grid, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = detectDelimiter(path, bytes.NewReader(probe(data)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("delimited", path, err)
	}
	return tables.Grid(records), nil
}

// probe returns the leading rows of the file for delimiter sniffing, so
// detection cost stays flat on large exports.
func probe(data []byte) []byte {
	off := 0
	for i := 0; i < constants.MaxHeaderProbeRows; i++ {
		nl := bytes.IndexByte(data[off:], '\n')
		if nl < 0 {
			return data
		}
		off += nl + 1
	}
	return data[:off]
}

// detectDelimiter returns the single most likely rune that would delimit
// the values in the reader, assuming a CSV-like file. When detection is
// inconclusive the file extension decides.
func detectDelimiter(path string, r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	if strings.ToLower(filepath.Ext(path)) == ".tsv" {
		return '\t'
	}
	return ','
}
