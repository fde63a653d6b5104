//go:build unix

package errno

import "syscall"

// Unix hosts already speak POSIX; only the numbering differs between them.
var unixErrors = map[syscall.Errno]Errno{
	syscall.EPERM:           EPERM,
	syscall.ENOENT:          ENOENT,
	syscall.ESRCH:           ESRCH,
	syscall.EINTR:           EINTR,
	syscall.EIO:             EIO,
	syscall.ENXIO:           ENXIO,
	syscall.E2BIG:           E2BIG,
	syscall.EBADF:           EBADF,
	syscall.ECHILD:          ECHILD,
	syscall.EAGAIN:          EAGAIN,
	syscall.ENOMEM:          ENOMEM,
	syscall.EACCES:          EACCES,
	syscall.EFAULT:          EFAULT,
	syscall.EBUSY:           EBUSY,
	syscall.EEXIST:          EEXIST,
	syscall.EXDEV:           EXDEV,
	syscall.ENODEV:          ENODEV,
	syscall.ENOTDIR:         ENOTDIR,
	syscall.EISDIR:          EISDIR,
	syscall.EINVAL:          EINVAL,
	syscall.ENFILE:          ENFILE,
	syscall.EMFILE:          EMFILE,
	syscall.ENOSPC:          ENOSPC,
	syscall.ESPIPE:          ESPIPE,
	syscall.EROFS:           EROFS,
	syscall.EPIPE:           EPIPE,
	syscall.EDEADLK:         EDEADLK,
	syscall.ENAMETOOLONG:    ENAMETOOLONG,
	syscall.ENOLCK:          ENOLCK,
	syscall.ENOSYS:          ENOSYS,
	syscall.ENOTEMPTY:       ENOTEMPTY,
	syscall.ELOOP:           ELOOP,
	syscall.EILSEQ:          EILSEQ,
	syscall.ENOTSOCK:        ENOTSOCK,
	syscall.EDESTADDRREQ:    EDESTADDRREQ,
	syscall.EMSGSIZE:        EMSGSIZE,
	syscall.EPROTOTYPE:      EPROTOTYPE,
	syscall.ENOPROTOOPT:     ENOPROTOOPT,
	syscall.EPROTONOSUPPORT: EPROTONOSUPPORT,
	syscall.EOPNOTSUPP:      EOPNOTSUPP,
	syscall.EAFNOSUPPORT:    EAFNOSUPPORT,
	syscall.EADDRINUSE:      EADDRINUSE,
	syscall.EADDRNOTAVAIL:   EADDRNOTAVAIL,
	syscall.ENETDOWN:        ENETDOWN,
	syscall.ENETUNREACH:     ENETUNREACH,
	syscall.ENETRESET:       ENETRESET,
	syscall.ECONNABORTED:    ECONNABORTED,
	syscall.ECONNRESET:      ECONNRESET,
	syscall.ENOBUFS:         ENOBUFS,
	syscall.EISCONN:         EISCONN,
	syscall.ENOTCONN:        ENOTCONN,
	syscall.ETIMEDOUT:       ETIMEDOUT,
	syscall.ECONNREFUSED:    ECONNREFUSED,
	syscall.EHOSTUNREACH:    EHOSTUNREACH,
	syscall.EALREADY:        EALREADY,
	syscall.EINPROGRESS:     EINPROGRESS,
	syscall.ESTALE:          ESTALE,
	syscall.EDQUOT:          EDQUOT,
}

func (m *Mapper) fromSyscall(se syscall.Errno) Errno {
	if e, ok := unixErrors[se]; ok {
		return e
	}
	return EIO
}
