package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNoSelection means a removal was requested without choosing a row.
	ErrNoSelection = errors.New("no product selected")
	// ErrConfirmationRequired means a removal must be confirmed before it takes effect.
	ErrConfirmationRequired = errors.New("removal must be confirmed")
	// ErrEmptyQuote means there is nothing to export.
	ErrEmptyQuote = errors.New("quote has no products to export")
)

// ValidationError reports bad or missing user input, keyed by field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid product: " + strings.Join(parts, "; ")
}

// IndexError reports a removal index outside the current item list.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("item %d: quote has no products", e.Index)
	}
	return fmt.Sprintf("item %d out of range [0, %d)", e.Index, e.Len)
}

// FormatError reports a malformed snapshot.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed quote file: %s: %v", e.Reason, e.Err)
	}
	return "malformed quote file: " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

// IOError reports a file read or write failure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ResourceWarning reports a non-fatal problem with an optional resource such
// as the logo. The operation that produced it still completed.
type ResourceWarning struct {
	Resource string
	Path     string
	Err      error
}

func (w *ResourceWarning) Error() string {
	return fmt.Sprintf("could not load %s %q: %v", w.Resource, w.Path, w.Err)
}

func (w *ResourceWarning) Unwrap() error { return w.Err }

// Kind classifies errors returned by quote operations.
type Kind int

const (
	KindNone Kind = iota
	KindValidation
	KindNoSelection
	KindIndex
	KindConfirmation
	KindFormat
	KindEmpty
	KindIO
	KindWarning
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindNoSelection:
		return "no_selection"
	case KindIndex:
		return "index"
	case KindConfirmation:
		return "confirmation"
	case KindFormat:
		return "format"
	case KindEmpty:
		return "empty"
	case KindIO:
		return "io"
	case KindWarning:
		return "warning"
	}
	return "internal"
}

// KindOf returns the Kind of err. A FormatError wrapping a ValidationError is
// still a format error.
func KindOf(err error) Kind {
	var (
		formatErr     *FormatError
		validationErr *ValidationError
		indexErr      *IndexError
		ioErr         *IOError
		warning       *ResourceWarning
	)
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &formatErr):
		return KindFormat
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.Is(err, ErrNoSelection):
		return KindNoSelection
	case errors.As(err, &indexErr):
		return KindIndex
	case errors.Is(err, ErrConfirmationRequired):
		return KindConfirmation
	case errors.Is(err, ErrEmptyQuote):
		return KindEmpty
	case errors.As(err, &ioErr):
		return KindIO
	case errors.As(err, &warning):
		return KindWarning
	}
	return KindInternal
}
