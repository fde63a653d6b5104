package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/posixshim/internal/textconv"
)

// FileStore reads each scope from a TOML or YAML file, chosen by extension.
// Files are parsed on first lookup; a missing file is an empty scope.
type FileStore struct {
	paths map[Scope]string

	once   sync.Once
	values *Memory
	err    error
}

// NewFileStore returns a store backed by the given files. An empty path
// leaves that scope empty.
func NewFileStore(userPath, machinePath string) *FileStore {
	return &FileStore{
		paths: map[Scope]string{User: userPath, Machine: machinePath},
	}
}

// Path returns the file backing scope.
func (f *FileStore) Path(scope Scope) string {
	return f.paths[scope]
}

// Lookup implements Store. Parse failures are reported on every lookup.
func (f *FileStore) Lookup(scope Scope, keyPath, valueName string) (string, error) {
	f.once.Do(f.load)
	if f.err != nil {
		return "", f.err
	}
	return f.values.Lookup(scope, keyPath, valueName)
}

func (f *FileStore) load() {
	f.values = NewMemory()
	for _, scope := range []Scope{User, Machine} {
		path := f.paths[scope]
		if path == "" {
			continue
		}
		tables, err := readTables(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			f.err = fmt.Errorf("load %s store: %w", scope, err)
			return
		}
		for key, values := range tables {
			for name, v := range values {
				f.values.Set(scope, key, name, stringify(v))
			}
		}
	}
}

func readTables(path string) (map[string]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// Installers often write store files in the machine's ANSI code page.
	data, err = textconv.ToUTF8(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var tables map[string]map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &tables)
	case ".toml", "":
		err = toml.Unmarshal(data, &tables)
	default:
		return nil, fmt.Errorf("%s: unsupported store format", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tables, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
