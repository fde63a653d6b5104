package shim

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/posixshim/internal/errno"
	"github.com/GriffinCanCode/posixshim/internal/handles"
	"github.com/GriffinCanCode/posixshim/internal/shortcut"
)

func errnoOf(t *testing.T, err error) errno.Errno {
	t.Helper()
	var pe *PathError
	require.ErrorAs(t, err, &pe)
	return pe.Errno
}

func writeFile(t *testing.T, r *Runtime, name, body string) {
	t.Helper()
	f, err := r.Create(name)
	require.NoError(t, err)
	_, err = f.WriteString(body)
	require.NoError(t, err)
	require.NoError(t, r.Close(f))
}

func TestFileLifecycle(t *testing.T) {
	in := newInstall(t)
	r := initRuntime(t, in)

	require.NoError(t, r.Mkdir("/etc", 0o755))
	assert.DirExists(t, filepath.Join(in.root, "etc"))

	writeFile(t, r, "/etc/app.conf", "key=value\n")
	assert.FileExists(t, filepath.Join(in.root, "etc", "app.conf"))

	fi, err := r.Stat("/etc/app.conf")
	require.NoError(t, err)
	assert.Equal(t, int64(len("key=value\n")), fi.Size())

	require.NoError(t, r.Rename("/etc/app.conf", "/etc/app.old"))
	_, err = r.Stat("/etc/app.conf")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, r.Remove("/etc/app.old"))
	assert.NoFileExists(t, filepath.Join(in.root, "etc", "app.old"))
}

func TestOpenRegistersHandle(t *testing.T) {
	in := newInstall(t)
	r := initRuntime(t, in)

	f, err := r.Create("/data.bin")
	require.NoError(t, err)
	h := handles.Handle(f.Fd())
	assert.Equal(t, handles.File, r.HandleKind(h))

	require.NoError(t, r.Close(f))
	assert.Equal(t, handles.Unknown, r.HandleKind(h))
}

func TestStatErrors(t *testing.T) {
	in := newInstall(t)
	r := initRuntime(t, in)

	tests := []struct {
		name string
		path string
		want errno.Errno
	}{
		{"missing", "/nope", errno.ENOENT},
		{"empty", "", errno.EINVAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Stat(tt.path)
			require.Error(t, err)
			assert.Equal(t, tt.want, errnoOf(t, err))

			var pe *PathError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "stat", pe.Op)
			assert.Equal(t, tt.path, pe.Path)
		})
	}
}

func TestNotInitialized(t *testing.T) {
	r := NewRuntime()

	_, err := r.Stat("/x")
	assert.Equal(t, errno.EINVAL, errnoOf(t, err))
	assert.Error(t, r.SetBlocking(1, false))
	assert.Error(t, r.RegisterHandle(1, handles.Pipe))
	assert.True(t, r.IsBlocking(1))
	assert.Equal(t, handles.Unknown, r.HandleKind(1))
}

func TestSymlinkRoundTrip(t *testing.T) {
	in := newInstall(t)
	r := initRuntime(t, in)

	require.NoError(t, r.Mkdir("/etc", 0o755))
	writeFile(t, r, "/etc/target.txt", "hello")
	require.NoError(t, r.Symlink("/etc/target.txt", "/etc/link"))

	linkFile := filepath.Join(in.root, "etc", "link"+shortcut.Ext)
	assert.FileExists(t, linkFile)

	target, err := r.Readlink("/etc/link")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(in.root, "etc", "target.txt"), target)

	fi, err := r.Stat("/etc/link")
	require.NoError(t, err)
	assert.Equal(t, int64(5), fi.Size())

	lfi, err := r.Lstat("/etc/link")
	require.NoError(t, err)
	assert.NotEqual(t, int64(5), lfi.Size())

	real, err := r.Realpath("/etc/link")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(in.root, "etc", "target.txt"), real)

	err = r.Symlink("/etc/target.txt", "/etc/link")
	assert.Equal(t, errno.EEXIST, errnoOf(t, err))

	require.NoError(t, r.Remove("/etc/link"))
	assert.NoFileExists(t, linkFile)
	assert.FileExists(t, filepath.Join(in.root, "etc", "target.txt"))
}

func TestRenameLink(t *testing.T) {
	in := newInstall(t)
	r := initRuntime(t, in)

	writeFile(t, r, "/t", "x")
	require.NoError(t, r.Symlink("/t", "/a"))
	require.NoError(t, r.Rename("/a", "/b"))

	assert.FileExists(t, filepath.Join(in.root, "b"+shortcut.Ext))
	target, err := r.Readlink("/b")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(in.root, "t"), target)
}

func TestReadlinkNotLink(t *testing.T) {
	in := newInstall(t)
	r := initRuntime(t, in)

	writeFile(t, r, "/plain", "not a link")
	_, err := r.Readlink("/plain")
	assert.Equal(t, errno.EINVAL, errnoOf(t, err))
}

func TestAccess(t *testing.T) {
	in := newInstall(t)
	r := initRuntime(t, in)

	writeFile(t, r, "/ro", "x")
	require.NoError(t, os.Chmod(filepath.Join(in.root, "ro"), 0o444))

	assert.NoError(t, r.Access("/ro", F_OK))
	assert.NoError(t, r.Access("/ro", R_OK))

	err := r.Access("/ro", W_OK)
	assert.Equal(t, errno.EACCES, errnoOf(t, err))

	err = r.Access("/missing", F_OK)
	assert.Equal(t, errno.ENOENT, errnoOf(t, err))
	var pe *PathError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "access", pe.Op)
}

func TestChdir(t *testing.T) {
	in := newInstall(t)
	r := initRuntime(t, in)

	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, r.Chdir("~"))
	got, err := os.Getwd()
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(filepath.Join(in.dir, "home"))
	require.NoError(t, err)
	gotReal, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, want, gotReal)
}

func TestGlob(t *testing.T) {
	in := newInstall(t)
	r := initRuntime(t, in)

	require.NoError(t, r.Mkdir("/logs", 0o755))
	require.NoError(t, r.Mkdir("/logs/old", 0o755))
	writeFile(t, r, "/logs/a.log", "")
	writeFile(t, r, "/logs/old/b.log", "")
	writeFile(t, r, "/logs/c.txt", "")

	matches, err := r.Glob("/logs/**/*.log")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(in.root, "logs", "a.log"),
		filepath.Join(in.root, "logs", "old", "b.log"),
	}, matches)
}

func TestSocketModes(t *testing.T) {
	in := newInstall(t)
	r := initRuntime(t, in)

	const s = handles.Handle(42)
	assert.True(t, r.IsBlocking(s))

	require.NoError(t, r.SetBlocking(s, false))
	assert.False(t, r.IsBlocking(s))

	r.ForgetSocket(s)
	assert.True(t, r.IsBlocking(s))

	require.NoError(t, r.RegisterHandle(7, handles.Socket))
	assert.Equal(t, handles.Socket, r.HandleKind(7))
	r.UnregisterHandle(7)
	assert.Equal(t, handles.Unknown, r.HandleKind(7))
}

func TestHandleTablesResetOnShutdown(t *testing.T) {
	in := newInstall(t)
	r := NewRuntime()
	require.NoError(t, r.Init(in.options()))
	require.NoError(t, r.SetBlocking(3, false))
	r.Shutdown()

	require.NoError(t, r.Init(in.options()))
	defer r.Shutdown()
	assert.True(t, r.IsBlocking(3))
}

func TestScanLinks(t *testing.T) {
	in := newInstall(t)
	r := initRuntime(t, in)

	require.NoError(t, r.Mkdir("/share", 0o755))
	writeFile(t, r, "/share/doc", "d")
	require.NoError(t, r.Symlink("/share/doc", "/share/readme"))
	require.NoError(t, r.Symlink("/share/doc", "/manual"))

	entries, err := r.ScanLinks(context.Background(), "/share")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Join(in.root, "share", "readme"+shortcut.Ext), entries[0].Path)
	assert.Equal(t, filepath.Join(in.root, "share", "doc"), entries[0].Target)
	assert.NoError(t, entries[0].Err)
}
