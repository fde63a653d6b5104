// Package host exposes the process facts the location bootstrap reads:
// executable path, working directory, environment, user name and temporary
// directory. Tests substitute a Fake.
package host

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// Host answers questions about the running process.
type Host interface {
	Executable() (string, error)
	Getwd() (string, error)
	LookupEnv(key string) (string, bool)
	CurrentUser() (string, error)
	TempDir() string
	Separator() byte
}

type osHost struct{}

// OS returns the Host backed by the running process.
func OS() Host {
	return osHost{}
}

func (osHost) Executable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe, nil
}

func (osHost) Getwd() (string, error) {
	return os.Getwd()
}

func (osHost) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// CurrentUser returns the login name without any DOMAIN\ prefix.
func (osHost) CurrentUser() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("current user: %w", err)
	}
	return StripDomain(u.Username), nil
}

func (osHost) TempDir() string {
	return strings.TrimRight(os.TempDir(), string(os.PathSeparator))
}

func (osHost) Separator() byte {
	return os.PathSeparator
}

// StripDomain removes a leading DOMAIN\ qualifier from a user name.
func StripDomain(name string) string {
	if i := strings.LastIndexByte(name, '\\'); i >= 0 {
		return name[i+1:]
	}
	return name
}
