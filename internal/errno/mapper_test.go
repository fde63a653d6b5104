package errno

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panicRecorder struct {
	codes []int
	msgs  []string
}

func (r *panicRecorder) record(code int, msg string) {
	r.codes = append(r.codes, code)
	r.msgs = append(r.msgs, msg)
}

func TestMapperTablesAreTotal(t *testing.T) {
	rec := &panicRecorder{}
	m := NewMapper(rec.record)

	for _, code := range KnownWinErrors() {
		e := m.FromWinError(code)
		assert.True(t, e.Known(), "win32 %d maps to undefined errno %d", code, e)
	}
	for _, code := range KnownWSAErrors() {
		e := m.FromWSAError(code)
		assert.True(t, e.Known(), "winsock %d maps to undefined errno %d", code, e)
	}
	for _, h := range KnownHRESULTs() {
		m.FromHRESULT(h)
	}
	for _, code := range KnownWinErrors() {
		assert.Equal(t, m.FromWinError(code), m.FromHRESULT(FromWin32(code)), "HRESULT_FROM_WIN32(%d)", code)
	}

	assert.Empty(t, rec.codes, "known codes must never escalate")
}

func TestMapperSelectedCodes(t *testing.T) {
	m := NewMapper(nil)

	tests := []struct {
		name string
		got  Errno
		want Errno
	}{
		{"file not found", m.FromWinError(ERROR_FILE_NOT_FOUND), ENOENT},
		{"path not found", m.FromWinError(ERROR_PATH_NOT_FOUND), ENOENT},
		{"access denied", m.FromWinError(ERROR_ACCESS_DENIED), EACCES},
		{"already exists", m.FromWinError(ERROR_ALREADY_EXISTS), EEXIST},
		{"no more files", m.FromWinError(ERROR_NO_MORE_FILES), ENMFILE},
		{"filename too long", m.FromWinError(ERROR_FILENAME_EXCED_RANGE), EINVAL},
		{"dir not empty", m.FromWinError(ERROR_DIR_NOT_EMPTY), ENOTEMPTY},
		{"wouldblock", m.FromWSAError(WSAEWOULDBLOCK), EWOULDBLOCK},
		{"connreset", m.FromWSAError(WSAECONNRESET), ECONNRESET},
		{"unexpected", m.FromHRESULT(E_UNEXPECTED), ESTALE},
		{"fail", m.FromHRESULT(E_FAIL), ESTALE},
		{"false", m.FromHRESULT(S_FALSE), ESTALE},
		{"notimpl", m.FromHRESULT(E_NOTIMPL), ENOSYS},
		{"win32 facility", m.FromHRESULT(FromWin32(ERROR_FILE_NOT_FOUND)), ENOENT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestMapperUnknownWinError(t *testing.T) {
	rec := &panicRecorder{}
	m := NewMapper(rec.record)

	got := m.FromWinError(WinError(0xDEAD))

	assert.Equal(t, ESTALE, got)
	require.Len(t, rec.codes, 1, "panic callback must fire exactly once")
	assert.Equal(t, PanicWinError, rec.codes[0])
	assert.Contains(t, rec.msgs[0], "57005")
	assert.Contains(t, rec.msgs[0], "mapper_test.go")
}

func TestMapperUnknownWSAError(t *testing.T) {
	rec := &panicRecorder{}
	m := NewMapper(rec.record)

	assert.Equal(t, ESTALE, m.FromWSAError(WSAError(10999)))
	require.Len(t, rec.codes, 1)
	assert.Equal(t, PanicWSAError, rec.codes[0])
}

func TestMapperUnknownHRESULT(t *testing.T) {
	rec := &panicRecorder{}
	m := NewMapper(rec.record)

	// REGDB_E_CLASSNOTREG, facility ITF
	assert.Equal(t, ESTALE, m.FromHRESULT(HRESULT(0x80040154)))
	require.Len(t, rec.codes, 1)
	assert.Equal(t, PanicWinError, rec.codes[0])
}

func TestMapperHRESULTOtherFacility(t *testing.T) {
	rec := &panicRecorder{}
	m := NewMapper(rec.record)

	// Facility ITF with a low word that is also a Win32 code: the low word
	// is not trusted outside FACILITY_WIN32.
	h := HRESULT(0x80040000 | uint32(ERROR_FILE_NOT_FOUND))
	assert.Equal(t, ESTALE, m.FromHRESULT(h))
	require.Len(t, rec.codes, 1)
	assert.Equal(t, PanicWinError, rec.codes[0])

	assert.Equal(t, ENOENT, m.FromHRESULT(FromWin32(ERROR_FILE_NOT_FOUND)))
	assert.Len(t, rec.codes, 1)
}

func TestMapperNilPanicFunc(t *testing.T) {
	m := NewMapper(nil)
	assert.NotPanics(t, func() {
		assert.Equal(t, ESTALE, m.FromWinError(WinError(0xFFFF)))
	})
}
