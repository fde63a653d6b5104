package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shellFolders = `Software\Microsoft\Windows\CurrentVersion\Explorer\Shell Folders`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestMemoryLookup(t *testing.T) {
	m := NewMemory()
	m.Set(User, `Software\Acme\Tool`, "InstallDir", `C:\Acme`)

	tests := []struct {
		name    string
		scope   Scope
		key     string
		value   string
		want    string
		wantErr error
	}{
		{"exact", User, `Software\Acme\Tool`, "InstallDir", `C:\Acme`, nil},
		{"case folded", User, `software\ACME\tool`, "installdir", `C:\Acme`, nil},
		{"slashes", User, `Software/Acme/Tool/`, "InstallDir", `C:\Acme`, nil},
		{"other scope", Machine, `Software\Acme\Tool`, "InstallDir", "", ErrNotFound},
		{"missing key", User, `Software\Other`, "InstallDir", "", ErrNotFound},
		{"missing value", User, `Software\Acme\Tool`, "Version", "", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Lookup(tt.scope, tt.key, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, 1, m.Len(User))
	assert.Equal(t, 0, m.Len(Machine))
}

func TestQueryBounded(t *testing.T) {
	m := NewMemory()
	m.Set(User, shellFolders, "Personal", `C:\Users\u\Documents`)

	v, err := QueryBounded(m, User, shellFolders, "Personal", 20)
	require.NoError(t, err)
	assert.Equal(t, `C:\Users\u\Documents`, v)

	_, err = QueryBounded(m, User, shellFolders, "Personal", 19)
	assert.ErrorIs(t, err, ErrBufferTooSmall)

	_, err = QueryBounded(m, User, shellFolders, "Common AppData", 260)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreTOML(t *testing.T) {
	user := writeFile(t, "user.toml", []byte(`
["Software\\Acme\\Tool"]
InstallDir = 'C:\Acme'
Build = 42

['Software\Microsoft\Windows\CurrentVersion\Explorer\Shell Folders']
Personal = 'C:\Users\u\Documents'
`))
	s := NewFileStore(user, filepath.Join(t.TempDir(), "absent.toml"))

	v, err := s.Lookup(User, `Software\Acme\Tool`, "InstallDir")
	require.NoError(t, err)
	assert.Equal(t, `C:\Acme`, v)

	v, err = s.Lookup(User, `Software\Acme\Tool`, "Build")
	require.NoError(t, err)
	assert.Equal(t, "42", v)

	v, err = s.Lookup(User, shellFolders, "Personal")
	require.NoError(t, err)
	assert.Equal(t, `C:\Users\u\Documents`, v)

	_, err = s.Lookup(Machine, shellFolders, "Common AppData")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreYAML(t *testing.T) {
	machine := writeFile(t, "machine.yaml", []byte(`
'Software\Microsoft\Windows\CurrentVersion\Explorer\Shell Folders':
  Common AppData: 'C:\ProgramData'
`))
	s := NewFileStore("", machine)

	v, err := s.Lookup(Machine, shellFolders, "Common AppData")
	require.NoError(t, err)
	assert.Equal(t, `C:\ProgramData`, v)
	assert.Equal(t, machine, s.Path(Machine))
}

func TestFileStoreLegacyEncoding(t *testing.T) {
	// "Répertoire" in windows-1252
	data := []byte("[\"Software\\\\Acme\\\\Tool\"]\nInstallDir = 'C:\\R\xe9pertoire partag\xe9 de l\x92\xe9quipe'\n")
	s := NewFileStore(writeFile(t, "user.toml", data), "")

	v, err := s.Lookup(User, `Software\Acme\Tool`, "InstallDir")
	require.NoError(t, err)
	assert.Contains(t, v, "Répertoire")
}

func TestFileStoreParseError(t *testing.T) {
	s := NewFileStore(writeFile(t, "user.toml", []byte("[broken")), "")

	_, err := s.Lookup(User, `Software\Acme`, "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFileStoreUnsupportedFormat(t *testing.T) {
	s := NewFileStore(writeFile(t, "user.ini", []byte("a=b")), "")

	_, err := s.Lookup(User, `Software\Acme`, "x")
	assert.ErrorContains(t, err, "unsupported store format")
}

func TestScopeString(t *testing.T) {
	assert.Equal(t, "user", User.String())
	assert.Equal(t, "machine", Machine.String())
	assert.Equal(t, "scope(7)", Scope(7).String())
}
