package dataprocessing

import (
	"errors"
	"fmt"
	"strings"
)

// Fatal load errors. Per-row data quality problems never surface as errors;
// they are dropped or defaulted and counted in LoadStats instead.
var (
	// ErrSourceNotFound means the source file could not be opened.
	ErrSourceNotFound = errors.New("source not found")
	// ErrEmptySource means the source held a header but no data rows.
	ErrEmptySource = errors.New("source contains no data rows")
)

// SchemaError reports every required column missing from the header, not
// just the first one found.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ParseError wraps a malformed-CSV failure with the offending source.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DerivationError means salary_average/salary_range could not be computed
// because a salary bound was not numeric. This is fatal: a table with holes
// in its derived columns would break every downstream aggregate.
type DerivationError struct {
	Row    int // 1-based data row number
	Column string
	Value  string
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("cannot derive salary metrics: row %d column %q has non-numeric value %q",
		e.Row, e.Column, e.Value)
}
