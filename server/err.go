package server

import (
	"errors"

	"github.com/ezrec/asmls/translate"
)

var f = translate.From

var (
	ErrConfigurationEmpty = errors.New(f("empty workspace/configuration response"))
)

// ErrSettings reports settings the client sent that could not be decoded.
type ErrSettings struct {
	Section string
	Err     error
}

func (err *ErrSettings) Error() string {
	return f("settings section %v %v", err.Section, err.Err)
}

func (err *ErrSettings) Unwrap() error {
	return err.Err
}
