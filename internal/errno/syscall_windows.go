//go:build windows

package errno

import "syscall"

func (m *Mapper) fromSyscall(se syscall.Errno) Errno {
	if se >= wsaBase && se < wsaLimit {
		return m.FromWSAError(WSAError(se))
	}
	return m.FromWinError(WinError(se))
}
