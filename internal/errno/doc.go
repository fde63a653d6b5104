// Package errno defines the POSIX error codes the shim reports and the
// tables that translate host error values into them.
//
// Three closed host enumerations are covered: Win32 status codes
// (WinError), Winsock codes (WSAError) and COM result codes (HRESULT).
// Each table is total over its enumeration. A value outside the known set
// is a defect in the table, not a runtime condition: the Mapper reports it
// through its panic callback and answers ESTALE so the caller still gets a
// POSIX code.
//
//	m := errno.NewMapper(func(code int, msg string) { log.Print(msg) })
//	e := m.FromWinError(errno.ERROR_FILE_NOT_FOUND) // ENOENT
package errno
