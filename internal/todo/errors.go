package todo

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks.
var (
	ErrDataFormat   = errors.New("malformed todo data")
	ErrPrecondition = errors.New("precondition failed")
)

// DataFormatError reports that the value stored under Key is not a
// serialized todo list.
type DataFormatError struct {
	Key string
	Err error
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("%s under key %q: %v", ErrDataFormat, e.Key, e.Err)
}

func (e *DataFormatError) Unwrap() error { return e.Err }

func (e *DataFormatError) Is(target error) bool { return target == ErrDataFormat }

// PreconditionError reports a call made without a storage key.
type PreconditionError struct {
	Op string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: storage key is required", e.Op)
}

func (e *PreconditionError) Is(target error) bool { return target == ErrPrecondition }
