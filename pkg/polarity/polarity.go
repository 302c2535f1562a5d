// Package polarity defines the acquisition mode type. Electrospray
// ionisation acquires each sample twice, once per polarity, and every input
// table belongs to exactly one mode.
package polarity

import (
	"strings"

	"github.com/polarmerge/polarmerge/pkg/constants"
	"github.com/polarmerge/polarmerge/pkg/errors"
)

// Mode is an acquisition polarity.
type Mode string

// The two acquisition modes.
const (
	// Positive is positive ionisation mode.
	Positive Mode = constants.ModePositive

	// Negative is negative ionisation mode.
	Negative Mode = constants.ModeNegative
)

// Parse converts a string to a Mode. Matching is case-insensitive and
// trims whitespace, but accepts only the two canonical spellings — "positive"
// and "negative" are rejected so a typo'd configuration fails loudly instead
// of merging under the wrong tag.
func Parse(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case constants.ModePositive:
		return Positive, nil
	case constants.ModeNegative:
		return Negative, nil
	default:
		return "", errors.NewConfigurationError("mode", s, "must be pos or neg")
	}
}

// Valid reports whether the mode is one of the two acquisition modes.
func (m Mode) Valid() bool {
	return m == Positive || m == Negative
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}

// Other returns the opposite mode. Invalid modes return themselves.
func (m Mode) Other() Mode {
	switch m {
	case Positive:
		return Negative
	case Negative:
		return Positive
	default:
		return m
	}
}

// Modes returns both acquisition modes in canonical order.
func Modes() []Mode {
	return []Mode{Positive, Negative}
}
