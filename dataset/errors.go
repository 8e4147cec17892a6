package dataset

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kmeanspp/internal/kmeans"
)

// ErrMalformedTable is returned when a table cannot be parsed.
var ErrMalformedTable = errors.New("malformed table")

// ErrDuplicateKey indicates a key that occurs more than once in a table or
// point set.
type ErrDuplicateKey struct {
	Key int64
}

func (e *ErrDuplicateKey) Error() string {
	return fmt.Sprintf("duplicate key %d", e.Key)
}

func (e *ErrDuplicateKey) Unwrap() error { return kmeans.ErrInvalidConfiguration }

// ErrMalformedRow describes a row that could not be parsed.
// Line and Column are 1-based; Column is 0 when the whole row is at fault.
type ErrMalformedRow struct {
	Line   int
	Column int
	Err    error
}

func (e *ErrMalformedRow) Error() string {
	if e.Column == 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
}

func (e *ErrMalformedRow) Unwrap() []error { return []error{ErrMalformedTable, e.Err} }
