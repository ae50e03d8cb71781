package archive

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that no archive member matched the requested prefix.
	ErrNotFound = errors.New("archive: member not found")
	// ErrIO is matched by every *IOError.
	ErrIO = errors.New("archive: i/o failure")
	// ErrClosed is returned by Extract after Close.
	ErrClosed = errors.New("archive: store closed")
)

// IOError describes a failure to open an archive, read a member or write the
// temporary copy.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("archive: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrIO) match any IOError.
func (e *IOError) Is(target error) bool { return target == ErrIO }
