package dataset

import (
	"errors"
	"fmt"
)

// Kind classifies why a workbook could not be loaded.
type Kind int

const (
	SourceMissing Kind = iota + 1
	SchemaMismatch
	BadValue
)

var (
	ErrSourceMissing  = errors.New("source missing")
	ErrSchemaMismatch = errors.New("schema mismatch")
	ErrBadValue       = errors.New("unparseable value")
)

func (k Kind) sentinel() error {
	switch k {
	case SourceMissing:
		return ErrSourceMissing
	case SchemaMismatch:
		return ErrSchemaMismatch
	default:
		return ErrBadValue
	}
}

func (k Kind) String() string {
	return k.sentinel().Error()
}

// LoadError reports a failed load. Row is the 1-based sheet row and Column the
// header name; both are empty when the failure is not tied to a cell.
type LoadError struct {
	Source string
	Kind   Kind
	Row    int
	Column string
	Err    error
}

func (e *LoadError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("load %s: %s at row %d column %q: %v", e.Source, e.Kind, e.Row, e.Column, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("load %s: %s at row %d: %v", e.Source, e.Kind, e.Row, e.Err)
	default:
		return fmt.Sprintf("load %s: %s: %v", e.Source, e.Kind, e.Err)
	}
}

func (e *LoadError) Unwrap() []error {
	return []error{e.Kind.sentinel(), e.Err}
}
