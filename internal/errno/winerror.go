package errno

// WinError is a Win32 status code as returned by GetLastError.
//
// See https://learn.microsoft.com/en-us/windows/win32/debug/system-error-codes
type WinError uint32

// Win32 status codes with a POSIX translation.
const (
	ERROR_SUCCESS                   WinError = 0
	ERROR_INVALID_FUNCTION          WinError = 1
	ERROR_FILE_NOT_FOUND            WinError = 2
	ERROR_PATH_NOT_FOUND            WinError = 3
	ERROR_TOO_MANY_OPEN_FILES       WinError = 4
	ERROR_ACCESS_DENIED             WinError = 5
	ERROR_INVALID_HANDLE            WinError = 6
	ERROR_NOT_ENOUGH_MEMORY         WinError = 8
	ERROR_INVALID_DATA              WinError = 13
	ERROR_OUTOFMEMORY               WinError = 14
	ERROR_INVALID_DRIVE             WinError = 15
	ERROR_NOT_SAME_DEVICE           WinError = 17
	ERROR_NO_MORE_FILES             WinError = 18
	ERROR_WRITE_PROTECT             WinError = 19
	ERROR_BAD_UNIT                  WinError = 20
	ERROR_NOT_READY                 WinError = 21
	ERROR_CRC                       WinError = 23
	ERROR_SHARING_VIOLATION         WinError = 32
	ERROR_LOCK_VIOLATION            WinError = 33
	ERROR_SHARING_BUFFER_EXCEEDED   WinError = 36
	ERROR_HANDLE_EOF                WinError = 38
	ERROR_HANDLE_DISK_FULL          WinError = 39
	ERROR_NOT_SUPPORTED             WinError = 50
	ERROR_REM_NOT_LIST              WinError = 51
	ERROR_DUP_NAME                  WinError = 52
	ERROR_BAD_NETPATH               WinError = 53
	ERROR_BAD_NET_NAME              WinError = 67
	ERROR_FILE_EXISTS               WinError = 80
	ERROR_CANNOT_MAKE               WinError = 82
	ERROR_INVALID_PARAMETER         WinError = 87
	ERROR_NO_PROC_SLOTS             WinError = 89
	ERROR_INVALID_AT_INTERRUPT_TIME WinError = 104
	ERROR_BROKEN_PIPE               WinError = 109
	ERROR_OPEN_FAILED               WinError = 110
	ERROR_BUFFER_OVERFLOW           WinError = 111
	ERROR_DISK_FULL                 WinError = 112
	ERROR_NO_MORE_SEARCH_HANDLES    WinError = 113
	ERROR_CALL_NOT_IMPLEMENTED      WinError = 120
	ERROR_INVALID_NAME              WinError = 123
	ERROR_WAIT_NO_CHILDREN          WinError = 128
	ERROR_CHILD_NOT_COMPLETE        WinError = 129
	ERROR_NEGATIVE_SEEK             WinError = 131
	ERROR_DIR_NOT_EMPTY             WinError = 145
	ERROR_SIGNAL_REFUSED            WinError = 156
	ERROR_BAD_PATHNAME              WinError = 161
	ERROR_SIGNAL_PENDING            WinError = 162
	ERROR_MAX_THRDS_REACHED         WinError = 164
	ERROR_BUSY                      WinError = 170
	ERROR_ALREADY_EXISTS            WinError = 183
	ERROR_NO_SIGNAL_SENT            WinError = 205
	ERROR_FILENAME_EXCED_RANGE      WinError = 206
	ERROR_META_EXPANSION_TOO_LONG   WinError = 208
	ERROR_INVALID_SIGNAL_NUMBER     WinError = 209
	ERROR_THREAD_1_INACTIVE         WinError = 210
	ERROR_BAD_PIPE                  WinError = 230
	ERROR_PIPE_BUSY                 WinError = 231
	ERROR_NO_DATA                   WinError = 232
	ERROR_PIPE_NOT_CONNECTED        WinError = 233
	ERROR_MORE_DATA                 WinError = 234
	ERROR_DIRECTORY                 WinError = 267
	ERROR_NOT_OWNER                 WinError = 288
	ERROR_INVALID_ADDRESS           WinError = 487
	ERROR_PIPE_CONNECTED            WinError = 535
	ERROR_PIPE_LISTENING            WinError = 536
	ERROR_NOACCESS                  WinError = 998
	ERROR_FILE_INVALID              WinError = 1006
	ERROR_NO_TOKEN                  WinError = 1008
	ERROR_SERVICE_DOES_NOT_EXIST    WinError = 1060
	ERROR_PROCESS_ABORTED           WinError = 1067
	ERROR_SERVICE_EXISTS            WinError = 1073
	ERROR_END_OF_MEDIA              WinError = 1100
	ERROR_BEGINNING_OF_MEDIA        WinError = 1102
	ERROR_SETMARK_DETECTED          WinError = 1103
	ERROR_NO_DATA_DETECTED          WinError = 1104
	ERROR_IO_DEVICE                 WinError = 1117
	ERROR_EOM_OVERFLOW              WinError = 1129
	ERROR_POSSIBLE_DEADLOCK         WinError = 1131
	ERROR_BAD_DEVICE                WinError = 1200
	ERROR_PRIVILEGE_NOT_HELD        WinError = 1314
	ERROR_CANT_RESOLVE_FILENAME     WinError = 1921
	ERROR_BAD_USERNAME              WinError = 2202
	ERROR_NOT_CONNECTED             WinError = 2250
	ERROR_OPEN_FILES                WinError = 2401
	ERROR_ACTIVE_CONNECTIONS        WinError = 2402
	ERROR_DEVICE_IN_USE             WinError = 2404
)

var winErrors = map[WinError]Errno{
	ERROR_SUCCESS:                   ESUCCESS,
	ERROR_INVALID_FUNCTION:          EBADRQC,
	ERROR_FILE_NOT_FOUND:            ENOENT,
	ERROR_PATH_NOT_FOUND:            ENOENT,
	ERROR_TOO_MANY_OPEN_FILES:       EMFILE,
	ERROR_ACCESS_DENIED:             EACCES,
	ERROR_INVALID_HANDLE:            EBADF,
	ERROR_NOT_ENOUGH_MEMORY:         ENOMEM,
	ERROR_INVALID_DATA:              EINVAL,
	ERROR_OUTOFMEMORY:               ENOMEM,
	ERROR_INVALID_DRIVE:             ENODEV,
	ERROR_NOT_SAME_DEVICE:           EXDEV,
	ERROR_NO_MORE_FILES:             ENMFILE,
	ERROR_WRITE_PROTECT:             EROFS,
	ERROR_BAD_UNIT:                  ENODEV,
	ERROR_NOT_READY:                 ENOMEDIUM,
	ERROR_CRC:                       EIO,
	ERROR_SHARING_VIOLATION:         EACCES,
	ERROR_LOCK_VIOLATION:            EACCES,
	ERROR_SHARING_BUFFER_EXCEEDED:   ENOLCK,
	ERROR_HANDLE_EOF:                ENODATA,
	ERROR_HANDLE_DISK_FULL:          ENOSPC,
	ERROR_NOT_SUPPORTED:             ENOSYS,
	ERROR_REM_NOT_LIST:              ENONET,
	ERROR_DUP_NAME:                  ENOTUNIQ,
	ERROR_BAD_NETPATH:               ENOSHARE,
	ERROR_BAD_NET_NAME:              ENOSHARE,
	ERROR_FILE_EXISTS:               EEXIST,
	ERROR_CANNOT_MAKE:               EPERM,
	ERROR_INVALID_PARAMETER:         EINVAL,
	ERROR_NO_PROC_SLOTS:             EAGAIN,
	ERROR_INVALID_AT_INTERRUPT_TIME: EINTR,
	ERROR_BROKEN_PIPE:               EPIPE,
	ERROR_OPEN_FAILED:               EIO,
	ERROR_BUFFER_OVERFLOW:           ENOMEM,
	ERROR_DISK_FULL:                 ENOSPC,
	ERROR_NO_MORE_SEARCH_HANDLES:    ENFILE,
	ERROR_CALL_NOT_IMPLEMENTED:      ENOSYS,
	ERROR_INVALID_NAME:              ENOENT,
	ERROR_WAIT_NO_CHILDREN:          ECHILD,
	ERROR_CHILD_NOT_COMPLETE:        EBUSY,
	ERROR_NEGATIVE_SEEK:             EINVAL,
	ERROR_DIR_NOT_EMPTY:             ENOTEMPTY,
	ERROR_SIGNAL_REFUSED:            EIO,
	ERROR_BAD_PATHNAME:              ENOENT,
	ERROR_SIGNAL_PENDING:            EBUSY,
	ERROR_MAX_THRDS_REACHED:         EAGAIN,
	ERROR_BUSY:                      EBUSY,
	ERROR_ALREADY_EXISTS:            EEXIST,
	ERROR_NO_SIGNAL_SENT:            EIO,
	ERROR_FILENAME_EXCED_RANGE:      EINVAL,
	ERROR_META_EXPANSION_TOO_LONG:   EINVAL,
	ERROR_INVALID_SIGNAL_NUMBER:     EINVAL,
	ERROR_THREAD_1_INACTIVE:         EINVAL,
	ERROR_BAD_PIPE:                  EINVAL,
	ERROR_PIPE_BUSY:                 EBUSY,
	ERROR_NO_DATA:                   EPIPE,
	ERROR_PIPE_NOT_CONNECTED:        ECOMM,
	ERROR_MORE_DATA:                 EAGAIN,
	ERROR_DIRECTORY:                 ENOTDIR,
	ERROR_NOT_OWNER:                 EPERM,
	ERROR_INVALID_ADDRESS:           EFAULT,
	ERROR_PIPE_CONNECTED:            EBUSY,
	ERROR_PIPE_LISTENING:            ECOMM,
	ERROR_NOACCESS:                  EFAULT,
	ERROR_FILE_INVALID:              ENXIO,
	ERROR_NO_TOKEN:                  EINVAL,
	ERROR_SERVICE_DOES_NOT_EXIST:    ESRCH,
	ERROR_PROCESS_ABORTED:           EFAULT,
	ERROR_SERVICE_EXISTS:            EEXIST,
	ERROR_END_OF_MEDIA:              ENOSPC,
	ERROR_BEGINNING_OF_MEDIA:        ESPIPE,
	ERROR_SETMARK_DETECTED:          ESPIPE,
	ERROR_NO_DATA_DETECTED:          ENOSPC,
	ERROR_IO_DEVICE:                 EIO,
	ERROR_EOM_OVERFLOW:              ENOSPC,
	ERROR_POSSIBLE_DEADLOCK:         EDEADLOCK,
	ERROR_BAD_DEVICE:                ENODEV,
	ERROR_PRIVILEGE_NOT_HELD:        EPERM,
	ERROR_CANT_RESOLVE_FILENAME:     ELOOP,
	ERROR_BAD_USERNAME:              EINVAL,
	ERROR_NOT_CONNECTED:             ENOLINK,
	ERROR_OPEN_FILES:                EAGAIN,
	ERROR_ACTIVE_CONNECTIONS:        EAGAIN,
	ERROR_DEVICE_IN_USE:             EAGAIN,
}

// KnownWinErrors returns every Win32 code the table translates.
func KnownWinErrors() []WinError {
	out := make([]WinError, 0, len(winErrors))
	for code := range winErrors {
		out = append(out, code)
	}
	return out
}
