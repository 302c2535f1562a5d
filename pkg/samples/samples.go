// Package samples models the sample map: the per-polarity original sample
// names and the shared unique name each biological sample is exported under.
// The two acquisition runs name their columns independently, so the map is
// what ties a positive mode column and a negative mode column to the same
// specimen.
package samples

import (
	"fmt"
	"strings"

	"github.com/polarmerge/polarmerge/pkg/constants"
	"github.com/polarmerge/polarmerge/pkg/errors"
	"github.com/polarmerge/polarmerge/pkg/polarity"
	"github.com/polarmerge/polarmerge/pkg/tables"
)

// Mapping is one biological sample's row in the map.
type Mapping struct {
	// Pos is the sample's column name in positive mode exports.
	Pos string

	// Neg is the sample's column name in negative mode exports.
	Neg string

	// Unique is the mode-independent name the sample is merged under.
	Unique string
}

// Pair is a resolved (original, unique) name pair for one mode.
type Pair struct {
	Original string
	Unique   string
}

// Map holds the sample mappings in file order.
type Map struct {
	rows []Mapping
}

// New constructs a Map from mappings, validating that unique names are
// present and not repeated.
func New(mappings ...Mapping) (*Map, error) {
	seen := make(map[string]bool, len(mappings))
	for i, m := range mappings {
		unique := strings.TrimSpace(m.Unique)
		if unique == "" {
			return nil, errors.NewMalformedInputError("sample map",
				fmt.Sprintf("row %d has no unique name", i+1))
		}
		if seen[unique] {
			return nil, errors.NewMalformedInputError("sample map",
				fmt.Sprintf("duplicate unique name %q", unique))
		}
		seen[unique] = true
	}

	rows := make([]Mapping, len(mappings))
	copy(rows, mappings)
	return &Map{rows: rows}, nil
}

// FromRecords constructs a Map from a header row plus data rows. Headers are
// matched leniently — sanitized and case-insensitive — against the canonical
// spellings ("Original name (pos)", "Original name (neg)", "Unique name"), so
// hand-edited maps with spacing or punctuation drift still load. Extra
// columns are ignored; rows whose three cells are all blank are skipped.
func FromRecords(records [][]string) (*Map, error) {
	if len(records) == 0 {
		return nil, errors.NewMalformedInputError("sample map", "no header row")
	}

	posAt, err := findHeader(records[0], constants.ColOriginalPos)
	if err != nil {
		return nil, err
	}
	negAt, err := findHeader(records[0], constants.ColOriginalNeg)
	if err != nil {
		return nil, err
	}
	uniqueAt, err := findHeader(records[0], constants.ColUniqueName)
	if err != nil {
		return nil, err
	}

	var mappings []Mapping
	for _, row := range records[1:] {
		m := Mapping{
			Pos:    strings.TrimSpace(at(row, posAt)),
			Neg:    strings.TrimSpace(at(row, negAt)),
			Unique: strings.TrimSpace(at(row, uniqueAt)),
		}
		if m.Pos == "" && m.Neg == "" && m.Unique == "" {
			continue
		}
		mappings = append(mappings, m)
	}

	return New(mappings...)
}

// findHeader locates the canonical column in a header row, comparing
// sanitized lower-cased forms.
func findHeader(header []string, canonical string) (int, error) {
	want := headerKey(canonical)
	for i, cell := range header {
		if headerKey(cell) == want {
			return i, nil
		}
	}
	return -1, errors.NewMalformedInputError("sample map",
		fmt.Sprintf("missing column %q", canonical))
}

func headerKey(name string) string {
	return strings.ToLower(tables.SanitizeName(name))
}

func at(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// Len returns the number of samples in the map.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.rows)
}

// Mappings returns the sample mappings in file order.
func (m *Map) Mappings() []Mapping {
	if m == nil {
		return nil
	}
	out := make([]Mapping, len(m.rows))
	copy(out, m.rows)
	return out
}

// Uniques returns the unique sample names in file order.
func (m *Map) Uniques() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.rows))
	for i, row := range m.rows {
		out[i] = row.Unique
	}
	return out
}

// Resolve returns the (original, unique) pairs for one mode, in map order.
// Every sample must carry an original name for the mode and the names must
// be unique within it — a repeated original would make column selection
// ambiguous.
func (m *Map) Resolve(mode polarity.Mode) ([]Pair, error) {
	if !mode.Valid() {
		return nil, errors.NewConfigurationError("mode", string(mode), "must be pos or neg")
	}

	pairs := make([]Pair, 0, m.Len())
	seen := make(map[string]bool, m.Len())
	for _, row := range m.rows {
		original := row.Pos
		if mode == polarity.Negative {
			original = row.Neg
		}
		if original == "" {
			return nil, errors.NewMalformedInputError("sample map",
				fmt.Sprintf("no %s original name for sample %q", mode, row.Unique))
		}
		if seen[original] {
			return nil, errors.NewMalformedInputError("sample map",
				fmt.Sprintf("duplicate %s original name %q", mode, original))
		}
		seen[original] = true
		pairs = append(pairs, Pair{Original: original, Unique: row.Unique})
	}

	return pairs, nil
}
