//go:build !unix && !windows

package errno

import "syscall"

func (m *Mapper) fromSyscall(syscall.Errno) Errno {
	return EIO
}
