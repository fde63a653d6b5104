//go:build !windows

package store

import (
	"os"
	"path/filepath"
)

// Default returns a FileStore. Empty paths fall back to user.toml under the
// user configuration directory and /etc/posixshim/machine.toml.
func Default(userPath, machinePath string) Store {
	if userPath == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			userPath = filepath.Join(dir, "posixshim", "user.toml")
		}
	}
	if machinePath == "" {
		machinePath = filepath.Join("/etc", "posixshim", "machine.toml")
	}
	return NewFileStore(userPath, machinePath)
}
