package errno

// HRESULT is a COM result code.
type HRESULT uint32

// COM result codes with a direct POSIX translation.
const (
	S_OK           HRESULT = 0x00000000
	S_FALSE        HRESULT = 0x00000001
	E_PENDING      HRESULT = 0x8000000A
	E_NOTIMPL      HRESULT = 0x80004001
	E_NOINTERFACE  HRESULT = 0x80004002
	E_POINTER      HRESULT = 0x80004003
	E_ABORT        HRESULT = 0x80004004
	E_FAIL         HRESULT = 0x80004005
	E_UNEXPECTED   HRESULT = 0x8000FFFF
	E_ACCESSDENIED HRESULT = 0x80070005
	E_HANDLE       HRESULT = 0x80070006
	E_OUTOFMEMORY  HRESULT = 0x8007000E
	E_INVALIDARG   HRESULT = 0x80070057
)

const facilityWin32 = 7

var hresults = map[HRESULT]Errno{
	S_OK:           ESUCCESS,
	S_FALSE:        ESTALE,
	E_UNEXPECTED:   ESTALE,
	E_FAIL:         ESTALE,
	E_NOTIMPL:      ENOSYS,
	E_OUTOFMEMORY:  ENOMEM,
	E_INVALIDARG:   EINVAL,
	E_NOINTERFACE:  EINVAL,
	E_POINTER:      EFAULT,
	E_ABORT:        EFAULT,
	E_HANDLE:       EBADF,
	E_ACCESSDENIED: EACCES,
	E_PENDING:      EBUSY,
}

// Facility returns the facility field of h.
func (h HRESULT) Facility() uint32 {
	return (uint32(h) >> 16) & 0x1FFF
}

// Code returns the low 16 bits of h, the Win32 code for FACILITY_WIN32.
func (h HRESULT) Code() WinError {
	return WinError(uint32(h) & 0xFFFF)
}

// Failed reports whether the severity bit is set.
func (h HRESULT) Failed() bool {
	return h&0x80000000 != 0
}

// FromWin32 wraps a Win32 code as HRESULT_FROM_WIN32 does.
func FromWin32(code WinError) HRESULT {
	if code == 0 {
		return S_OK
	}
	return HRESULT(uint32(code)&0xFFFF | facilityWin32<<16 | 0x80000000)
}

// KnownHRESULTs returns the result codes the table translates directly.
// Every FromWin32 of a KnownWinErrors code is also translated.
func KnownHRESULTs() []HRESULT {
	out := make([]HRESULT, 0, len(hresults))
	for h := range hresults {
		out = append(out, h)
	}
	return out
}
