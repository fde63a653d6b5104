//go:build !windows

package textconv

// HostCodePage returns DefaultCodePage; non-Windows hosts have no ANSI code page.
func HostCodePage() (CodePage, error) {
	return DefaultCodePage, nil
}
