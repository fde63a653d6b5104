//go:build windows

package store

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// RegistryStore reads string values from HKEY_CURRENT_USER (User) and
// HKEY_LOCAL_MACHINE (Machine).
type RegistryStore struct{}

// NewRegistryStore returns a RegistryStore.
func NewRegistryStore() *RegistryStore {
	return &RegistryStore{}
}

// Lookup implements Store.
func (*RegistryStore) Lookup(scope Scope, keyPath, valueName string) (string, error) {
	root := registry.CURRENT_USER
	if scope == Machine {
		root = registry.LOCAL_MACHINE
	}

	k, err := registry.OpenKey(root, keyPath, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("open %s key %s: %w", scope, keyPath, err)
	}
	defer k.Close()

	v, _, err := k.GetStringValue(valueName)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read %s\\%s: %w", keyPath, valueName, err)
	}
	return v, nil
}
