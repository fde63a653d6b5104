package errno

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"syscall"
)

// PanicFunc receives unrecoverable internal errors: a numeric code and a
// human readable message.
type PanicFunc func(code int, msg string)

// Panic codes.
const (
	PanicBootstrap   = 1
	PanicWinsockInit = 2
	PanicWinError    = 3
	PanicWSAError    = 4
)

// NopPanic is the default PanicFunc.
func NopPanic(int, string) {}

// Mapper translates host error values to Errno, escalating gaps in the
// tables to its PanicFunc.
type Mapper struct {
	panic PanicFunc
}

// NewMapper returns a Mapper reporting table gaps to fn. A nil fn is
// replaced by NopPanic.
func NewMapper(fn PanicFunc) *Mapper {
	if fn == nil {
		fn = NopPanic
	}
	return &Mapper{panic: fn}
}

// FromWinError translates a Win32 status code.
func (m *Mapper) FromWinError(code WinError) Errno {
	if e, ok := winErrors[code]; ok {
		return e
	}
	m.unknown(PanicWinError, "FromWinError", uint32(code))
	return ESTALE
}

// FromWSAError translates a Winsock error code.
func (m *Mapper) FromWSAError(code WSAError) Errno {
	if e, ok := wsaErrors[code]; ok {
		return e
	}
	m.unknown(PanicWSAError, "FromWSAError", uint32(code))
	return ESTALE
}

// FromHRESULT translates a COM result code. Codes outside the direct table
// are decoded when they carry a Win32 status and reported otherwise.
func (m *Mapper) FromHRESULT(h HRESULT) Errno {
	if e, ok := hresults[h]; ok {
		return e
	}
	if h.Facility() == facilityWin32 {
		return m.FromWinError(h.Code())
	}
	m.unknown(PanicWinError, "FromHRESULT", uint32(h))
	return ESTALE
}

// FromError translates a Go error. Errno values pass through unchanged and
// host syscall errors go through the platform table; anything unrecognised
// becomes EIO.
func (m *Mapper) FromError(err error) Errno {
	if err == nil {
		return ESUCCESS
	}
	var e Errno
	if errors.As(err, &e) {
		return e
	}
	var se syscall.Errno
	if errors.As(err, &se) {
		return m.fromSyscall(se)
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ENOENT
	case errors.Is(err, fs.ErrExist):
		return EEXIST
	case errors.Is(err, fs.ErrPermission):
		return EACCES
	case errors.Is(err, fs.ErrInvalid):
		return EINVAL
	case errors.Is(err, errors.ErrUnsupported):
		return ENOSYS
	}
	return EIO
}

func (m *Mapper) unknown(code int, fn string, value uint32) {
	msg := fmt.Sprintf("unknown error %d in %s", value, fn)
	if _, file, line, ok := runtime.Caller(2); ok {
		msg = fmt.Sprintf("%s, source: %s:%d", msg, filepath.Base(file), line)
	}
	m.panic(code, msg)
}
