package pipeline

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures.
type ErrorKind string

const (
	KindDataLoad        ErrorKind = "data_load"
	KindTraining        ErrorKind = "training"
	KindInputValidation ErrorKind = "input_validation"
)

// Error is returned by every pipeline operation. Startup failures
// (data_load, training) are fatal; input_validation is recoverable and
// the caller may retry with corrected input.
type Error struct {
	Kind    ErrorKind
	Field   string // offending feature, input_validation only
	Message string
	Err     error
}

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrDataLoad        = &Error{Kind: KindDataLoad}
	ErrTraining        = &Error{Kind: KindTraining}
	ErrInputValidation = &Error{Kind: KindInputValidation}
)

func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, msg)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Message == "" && t.Field == "" && t.Err == nil && t.Kind == e.Kind
}

func dataLoadError(msg string, err error) error {
	return &Error{Kind: KindDataLoad, Message: msg, Err: err}
}

func trainingError(msg string, err error) error {
	return &Error{Kind: KindTraining, Message: msg, Err: err}
}

func inputError(field, msg string, err error) error {
	return &Error{Kind: KindInputValidation, Field: field, Message: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
