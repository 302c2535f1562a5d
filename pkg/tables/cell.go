package tables

import (
	"strconv"
	"strings"
)

// Kind identifies what a Cell holds.
type Kind uint8

// Cell kinds.
const (
	// KindMissing is an absent value. Missing cells export as the empty string.
	KindMissing Kind = iota

	// KindText is a verbatim text value.
	KindText

	// KindNumber is a parsed float64 value.
	KindNumber
)

// Cell is a single table value: text, number, or missing.
type Cell struct {
	kind Kind
	text string
	num  float64
}

// Missing returns the missing cell.
func Missing() Cell {
	return Cell{kind: KindMissing}
}

// Text returns a text cell. The empty string is missing, not text, so blank
// input cells and absent values are indistinguishable downstream.
func Text(s string) Cell {
	if s == "" {
		return Cell{kind: KindMissing}
	}
	return Cell{kind: KindText, text: s}
}

// Number returns a numeric cell.
func Number(f float64) Cell {
	return Cell{kind: KindNumber, num: f}
}

// ParseNumber parses s as a float64 cell. Surrounding whitespace is ignored.
// Empty or non-numeric input becomes missing, never an error: numeric
// coercion is tolerant at cell level even though table structure is strict.
func ParseNumber(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return Cell{kind: KindMissing}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Cell{kind: KindMissing}
	}
	return Cell{kind: KindNumber, num: f}
}

// Kind returns the cell's kind.
func (c Cell) Kind() Kind {
	return c.kind
}

// IsMissing reports whether the cell is missing.
func (c Cell) IsMissing() bool {
	return c.kind == KindMissing
}

// IsBlank reports whether the cell is missing or whitespace-only text.
func (c Cell) IsBlank() bool {
	switch c.kind {
	case KindMissing:
		return true
	case KindText:
		return strings.TrimSpace(c.text) == ""
	default:
		return false
	}
}

// Number returns the numeric value and whether the cell holds one.
func (c Cell) Number() (float64, bool) {
	if c.kind != KindNumber {
		return 0, false
	}
	return c.num, true
}

// AsNumber returns the cell's numeric value, parsing text cells on the fly.
// Missing and non-numeric text report false.
func (c Cell) AsNumber() (float64, bool) {
	switch c.kind {
	case KindNumber:
		return c.num, true
	case KindText:
		parsed := ParseNumber(c.text)
		return parsed.Number()
	default:
		return 0, false
	}
}

// String returns the cell's export form: numbers in strconv 'g' formatting,
// text verbatim, missing as the empty string.
func (c Cell) String() string {
	switch c.kind {
	case KindNumber:
		return strconv.FormatFloat(c.num, 'g', -1, 64)
	case KindText:
		return c.text
	default:
		return ""
	}
}
