package shim

import (
	"github.com/GriffinCanCode/posixshim/internal/errno"
)

// PathError records a failed operation, the POSIX path it was given and
// the resulting error number. It matches fs.ErrNotExist and friends through
// errors.Is.
type PathError struct {
	Op    string
	Path  string
	Errno errno.Errno
	Err   error
}

func (e *PathError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Errno.Error()
}

func (e *PathError) Unwrap() error { return e.Errno }

func (r *Runtime) pathError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &PathError{Op: op, Path: path, Errno: r.Errno(err), Err: err}
}
