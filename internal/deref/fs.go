package deref

import (
	"io"
	"io/fs"
	"os"
)

// FS is the filesystem the resolver probes.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Open(name string) (io.ReadCloser, error)
}

// OSFS is the host filesystem.
type OSFS struct{}

// Stat implements FS.
func (OSFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// Open implements FS.
func (OSFS) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}
