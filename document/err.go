package document

import (
	"errors"

	"github.com/ezrec/asmls/translate"
)

var f = translate.From

var (
	ErrRangeInvalid  = errors.New(f("range invalid"))
	ErrChangeInvalid = errors.New(f("content change invalid"))
)

// ErrDocumentUnknown is returned for a URI that is not open.
type ErrDocumentUnknown string

func (err ErrDocumentUnknown) Error() string {
	return f("document %v not open", string(err))
}

// ErrChange locates a failed content change.
type ErrChange struct {
	URI   string
	Index int
	Err   error
}

func (err *ErrChange) Error() string {
	return f("%v change %d %v", err.URI, err.Index, err.Err)
}

func (err *ErrChange) Unwrap() error {
	return err.Err
}
