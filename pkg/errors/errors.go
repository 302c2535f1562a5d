// Package errors provides custom error types for the polarmerge system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the polarmerge system
var (
	// ErrConfiguration indicates an invalid configuration value (mode,
	// cutoff, layout name)
	ErrConfiguration = errors.New("invalid configuration")

	// ErrMalformedInput indicates a structurally invalid input table:
	// missing or misordered block markers, missing header rows, missing
	// required columns, or a bad sample map
	ErrMalformedInput = errors.New("malformed input")

	// ErrMissingSample indicates a mismatch between the sample map and an
	// intensity table's sample columns
	ErrMissingSample = errors.New("missing sample")

	// ErrSchemaMismatch indicates reconciler inputs that do not share the
	// grouping and scoring columns
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// ConfigurationError represents an invalid configuration value
type ConfigurationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("configuration error for %s (%v): %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Is implements errors.Is support
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(field string, value interface{}, message string) *ConfigurationError {
	return &ConfigurationError{Field: field, Value: value, Message: message}
}

// MalformedInputError represents a structurally invalid input table.
// Input names which table was being parsed (intensity, identifications,
// sample map, layout).
type MalformedInputError struct {
	Input   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *MalformedInputError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("malformed %s input: %s", e.Input, e.Message)
	}
	return fmt.Sprintf("malformed input: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// NewMalformedInputError creates a new MalformedInputError
func NewMalformedInputError(input, message string) *MalformedInputError {
	return &MalformedInputError{Input: input, Message: message}
}

// MissingSampleError reports sample names present on one side of the
// sample-map/intensity-table contract but absent from the other. Block is
// the intensity block being matched (raw or normalized); From names the
// side the samples are missing from.
type MissingSampleError struct {
	Mode    string
	Block   string
	From    string
	Missing []string
}

// Error implements the error interface
func (e *MissingSampleError) Error() string {
	return fmt.Sprintf("mode %s: sample(s) %s not found in %s (%s block)",
		e.Mode, strings.Join(e.Missing, ", "), e.From, e.Block)
}

// Is implements errors.Is support
func (e *MissingSampleError) Is(target error) bool {
	return target == ErrMissingSample
}

// NewMissingSampleError creates a new MissingSampleError
func NewMissingSampleError(mode, block, from string, missing []string) *MissingSampleError {
	return &MissingSampleError{Mode: mode, Block: block, From: from, Missing: missing}
}

// SchemaMismatchError reports a reconciler input that lacks the grouping or
// scoring columns required for cross-mode reconciliation
type SchemaMismatchError struct {
	Input   string
	Missing []string
}

// Error implements the error interface
func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch in %s input: missing column(s) %s",
		e.Input, strings.Join(e.Missing, ", "))
}

// Is implements errors.Is support
func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// NewSchemaMismatchError creates a new SchemaMismatchError
func NewSchemaMismatchError(input string, missing []string) *SchemaMismatchError {
	return &SchemaMismatchError{Input: input, Missing: missing}
}

// ParseError represents an error while decoding a file into a table
type ParseError struct {
	Format  string
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during file I/O at the ingest/export boundary
type IOError struct {
	Operation string
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsConfiguration checks if an error is a configuration error
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsMalformedInput checks if an error is a malformed input error
func IsMalformedInput(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

// IsMissingSample checks if an error is a missing sample error
func IsMissingSample(err error) bool {
	return errors.Is(err, ErrMissingSample)
}

// IsSchemaMismatch checks if an error is a schema mismatch error
func IsSchemaMismatch(err error) bool {
	return errors.Is(err, ErrSchemaMismatch)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapMalformed wraps an error as a MalformedInputError
func WrapMalformed(input string, err error) error {
	if err == nil {
		return nil
	}
	return &MalformedInputError{Input: input, Message: err.Error(), Err: err}
}
