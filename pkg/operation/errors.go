package operation

import (
	"gitlab.com/tozd/go/errors"
)

// ErrRunActive is returned by Start while another run is in progress.
var ErrRunActive = errors.Base("a run is already active")

// ReadError is a file that could not be read. It ends the run.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return "reading " + e.Path + ": " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// WriteError is a file that could not be written back. It ends the run;
// files rewritten before it are left as they are.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return "writing " + e.Path + ": " + e.Err.Error()
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
