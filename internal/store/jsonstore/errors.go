package jsonstore

import (
	"errors"
	"fmt"
)

// ErrEmptyTitle is returned by Create when the title is blank after trimming.
var ErrEmptyTitle = errors.New("title is empty")

// ErrIDSpaceExhausted is returned by Create when the highest stored id is
// already the largest int, so no positive id is left to assign.
var ErrIDSpaceExhausted = errors.New("no task ids left")

// ReadError reports a data file that exists but could not be read, parsed
// or validated. A missing file is not a ReadError.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a save that did not complete. The file on disk keeps
// its previous contents.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
