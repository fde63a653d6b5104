//go:build windows

package textconv

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var procGetACP = windows.NewLazySystemDLL("kernel32.dll").NewProc("GetACP")

// HostCodePage returns the ANSI code page of the running process. A code
// page without a codec is an error rather than a silent substitution.
func HostCodePage() (CodePage, error) {
	if err := procGetACP.Find(); err != nil {
		return 0, fmt.Errorf("GetACP: %w", err)
	}
	r, _, _ := procGetACP.Call()
	cp := CodePage(r)
	if !cp.Supported() {
		return cp, fmt.Errorf("%w: ANSI code page %d", ErrUnsupportedCodePage, uint32(cp))
	}
	return cp, nil
}
