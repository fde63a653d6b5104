//go:build windows

package store

// Default returns the registry store unless file paths are configured.
func Default(userPath, machinePath string) Store {
	if userPath != "" || machinePath != "" {
		return NewFileStore(userPath, machinePath)
	}
	return NewRegistryStore()
}
