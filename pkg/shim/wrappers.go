package shim

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/posixshim/internal/deref"
	"github.com/GriffinCanCode/posixshim/internal/errno"
	"github.com/GriffinCanCode/posixshim/internal/handles"
	"github.com/GriffinCanCode/posixshim/internal/shortcut"
)

// Access modes for Access. They may be combined.
const (
	F_OK = 0
	X_OK = 1
	W_OK = 2
	R_OK = 4
)

// native translates a POSIX path for op.
func (r *Runtime) native(op, path string, follow bool) (*state, string, error) {
	st, err := r.current()
	if err != nil {
		return nil, "", r.pathError(op, path, err)
	}
	native, err := st.engine.Translate(path, follow)
	if err != nil {
		return nil, "", r.pathError(op, path, err)
	}
	return st, native, nil
}

// Open opens the file at a POSIX path, following links. The handle is
// recorded as a file until Close.
func (r *Runtime) Open(name string, flag int, perm fs.FileMode) (*os.File, error) {
	st, native, err := r.native("open", name, true)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(native, flag, perm)
	if err != nil {
		return nil, r.pathError("open", name, err)
	}
	st.kinds.Register(handles.Handle(f.Fd()), handles.File)
	st.metrics.SetHandles("kinds", st.kinds.Len())
	return f, nil
}

// Create creates or truncates the file at a POSIX path.
func (r *Runtime) Create(name string) (*os.File, error) {
	return r.Open(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
}

// Close closes a file returned by Open and forgets its handle.
func (r *Runtime) Close(f *os.File) error {
	if st := r.cur.Load(); st != nil {
		st.kinds.Unregister(handles.Handle(f.Fd()))
		st.metrics.SetHandles("kinds", st.kinds.Len())
	}
	if err := f.Close(); err != nil {
		return r.pathError("close", f.Name(), err)
	}
	return nil
}

// Stat describes the file at a POSIX path, following links.
func (r *Runtime) Stat(name string) (fs.FileInfo, error) {
	_, native, err := r.native("stat", name, true)
	if err != nil {
		return nil, err
	}
	fi, err := os.Stat(native)
	if err != nil {
		return nil, r.pathError("stat", name, err)
	}
	return fi, nil
}

// Lstat describes the file at a POSIX path. A link is described itself.
func (r *Runtime) Lstat(name string) (fs.FileInfo, error) {
	_, native, err := r.native("lstat", name, false)
	if err != nil {
		return nil, err
	}
	fi, err := os.Lstat(native)
	if err != nil {
		return nil, r.pathError("lstat", name, err)
	}
	return fi, nil
}

// Access checks that the file at a POSIX path exists and, for W_OK, that it
// is writable. Read and execute permission are implied by existence.
func (r *Runtime) Access(name string, mode int) error {
	fi, err := r.Stat(name)
	if err != nil {
		var pe *PathError
		if errors.As(err, &pe) {
			pe.Op = "access"
		}
		return err
	}
	if mode&W_OK != 0 && fi.Mode().Perm()&0o222 == 0 {
		return &PathError{Op: "access", Path: name, Errno: errno.EACCES, Err: fs.ErrPermission}
	}
	return nil
}

// Chdir changes the working directory to a POSIX path.
func (r *Runtime) Chdir(dir string) error {
	_, native, err := r.native("chdir", dir, true)
	if err != nil {
		return err
	}
	return r.pathError("chdir", dir, os.Chdir(native))
}

// Mkdir creates a directory at a POSIX path.
func (r *Runtime) Mkdir(name string, perm fs.FileMode) error {
	_, native, err := r.native("mkdir", name, false)
	if err != nil {
		return err
	}
	return r.pathError("mkdir", name, os.Mkdir(native, perm))
}

// Remove removes the file or empty directory at a POSIX path. A link is
// removed, not its target.
func (r *Runtime) Remove(name string) error {
	_, native, err := r.native("remove", name, false)
	if err != nil {
		return err
	}
	return r.pathError("remove", name, os.Remove(native))
}

// Rename renames oldpath to newpath. Links are renamed, not followed.
func (r *Runtime) Rename(oldpath, newpath string) error {
	_, from, err := r.native("rename", oldpath, false)
	if err != nil {
		return err
	}
	_, to, err := r.native("rename", newpath, false)
	if err != nil {
		return err
	}
	if shortcut.HasExt(from) && !shortcut.HasExt(to) {
		to += shortcut.Ext
	}
	return r.pathError("rename", oldpath, os.Rename(from, to))
}

// Symlink creates a link at newname pointing at oldname. Relative targets
// stay relative to the link. The link file always carries the link
// extension, so naming it explicitly is the same as leaving it off.
func (r *Runtime) Symlink(oldname, newname string) error {
	st, target, err := r.native("symlink", oldname, false)
	if err != nil {
		return err
	}
	_, link, err := r.native("symlink", newname, false)
	if err != nil {
		return err
	}
	// The probe may have found an existing link; Create adds the extension.
	if shortcut.HasExt(link) {
		link = link[:len(link)-len(shortcut.Ext)]
	}
	if err := shortcut.Create(target, link, st.loc.CodePage); err != nil {
		return r.pathError("symlink", newname, err)
	}
	st.log.Debug("link created", zap.String("link", link), zap.String("target", target))
	return nil
}

// Readlink returns the native target of the link at a POSIX path.
func (r *Runtime) Readlink(name string) (string, error) {
	st, native, err := r.native("readlink", name, false)
	if err != nil {
		return "", err
	}
	target, err := st.links.ReadLink(native)
	if err != nil {
		return "", r.pathError("readlink", name, err)
	}
	return target, nil
}

// Realpath returns the absolute native path of an existing file, with
// links followed.
func (r *Runtime) Realpath(name string) (string, error) {
	_, native, err := r.native("realpath", name, true)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(native)
	if err != nil {
		return "", r.pathError("realpath", name, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", r.pathError("realpath", name, err)
	}
	return abs, nil
}

// Glob returns the native paths matching a POSIX pattern.
func (r *Runtime) Glob(pattern string) ([]string, error) {
	st, err := r.current()
	if err != nil {
		return nil, r.pathError("glob", pattern, err)
	}
	matches, err := st.engine.Glob(pattern)
	if err != nil {
		return nil, r.pathError("glob", pattern, err)
	}
	return matches, nil
}

// ScanLinks walks the directory at a POSIX path and reads every link below
// it.
func (r *Runtime) ScanLinks(ctx context.Context, dir string) ([]deref.Entry, error) {
	st, native, err := r.native("scan", dir, true)
	if err != nil {
		return nil, err
	}
	entries, err := st.links.Scan(ctx, native)
	if err != nil {
		return nil, r.pathError("scan", dir, err)
	}
	return entries, nil
}
