package divreport

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/divreport-go/pkg/divreport/parser"
)

// ErrReferenceNotFound indicates the reference file does not exist.
var ErrReferenceNotFound = errors.New("reference file not found")

// ErrNilReference indicates Generate was called without a reference.
var ErrNilReference = errors.New("nil reference")

// ErrNoInputFiles indicates no input file was found or supplied.
var ErrNoInputFiles = errors.New("no input files found")

// ErrNoData indicates no input table was loaded.
var ErrNoData = errors.New("no valid data found in input files")

// ErrMissingColumn indicates a required column is absent.
var ErrMissingColumn = errors.New("required column missing")

// ErrUnmatchedRows indicates rows without a reference division in strict mode.
var ErrUnmatchedRows = errors.New("rows without a matching division")

// ErrUnsupportedFormat indicates an input outside the .csv/.xls/.xlsx allow-list.
var ErrUnsupportedFormat = parser.ErrUnsupportedFormat

// FileError represents a failure to read one input or reference file.
type FileError struct {
	Name string
	Op   string // "open", "read"
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("error reading %s (%s): %v", e.Name, e.Op, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// ColumnError reports required columns absent from a table.
type ColumnError struct {
	Table   string
	Columns []string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s in %s: %s", ErrMissingColumn, e.Table, quoteAll(e.Columns))
}

func (e *ColumnError) Unwrap() error {
	return ErrMissingColumn
}

// UnmatchedError lists office names with no reference division.
type UnmatchedError struct {
	Offices []string
	Rows    int
}

func (e *UnmatchedError) Error() string {
	return fmt.Sprintf("%s: %d rows, offices %s", ErrUnmatchedRows, e.Rows, quoteAll(e.Offices))
}

func (e *UnmatchedError) Unwrap() error {
	return ErrUnmatchedRows
}

func quoteAll(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}
