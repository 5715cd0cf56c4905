// Package apperr defines the error taxonomy shared by the converter, the note
// store and the user-facing boundaries that report them.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownUnit     = errors.New("unknown unit")
	ErrInvalidValue    = errors.New("invalid value")
	ErrValidation      = errors.New("validation failed")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrDecode          = errors.New("corrupt store file")
)

// UnknownUnitError reports a unit (or category name) that is not part of the
// selected category.
type UnknownUnitError struct {
	Category string
	Unit     string
}

func (e *UnknownUnitError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("unknown category %q", e.Unit)
	}
	return fmt.Sprintf("unknown unit %q for %s", e.Unit, e.Category)
}

func (e *UnknownUnitError) Is(target error) bool { return target == ErrUnknownUnit }

// InvalidValueError reports numeric input the converter refuses.
type InvalidValueError struct {
	Input  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q: %s", e.Input, e.Reason)
}

func (e *InvalidValueError) Is(target error) bool { return target == ErrInvalidValue }

// ValidationError wraps the field errors of a rejected note.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// IndexError reports an index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index out of range: have %d, got %d", e.Len, e.Index)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndexOutOfRange }

// DecodeError reports a store file that could not be parsed. It is never
// fatal: the store starts empty and the caller shows a warning.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot parse %s, starting with an empty list: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
