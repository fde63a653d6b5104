package store

import (
	"strings"
	"sync"
)

// Memory is an in-process Store. The zero value is empty and ready to use.
type Memory struct {
	mu     sync.RWMutex
	scopes map[Scope]map[string]map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Set stores a value, creating the key as needed.
func (m *Memory) Set(scope Scope, keyPath, valueName, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.scopes == nil {
		m.scopes = make(map[Scope]map[string]map[string]string)
	}
	keys, ok := m.scopes[scope]
	if !ok {
		keys = make(map[string]map[string]string)
		m.scopes[scope] = keys
	}
	k := normalizeKey(keyPath)
	values, ok := keys[k]
	if !ok {
		values = make(map[string]string)
		keys[k] = values
	}
	values[strings.ToLower(valueName)] = value
}

// Lookup implements Store.
func (m *Memory) Lookup(scope Scope, keyPath, valueName string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	values, ok := m.scopes[scope][normalizeKey(keyPath)]
	if !ok {
		return "", ErrNotFound
	}
	v, ok := values[strings.ToLower(valueName)]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Len returns the number of values held in scope.
func (m *Memory) Len(scope Scope) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, values := range m.scopes[scope] {
		n += len(values)
	}
	return n
}
