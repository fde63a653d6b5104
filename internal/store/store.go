package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/posixshim/internal/textconv"
)

// Scope selects the per-user or machine-wide half of the store.
type Scope int

const (
	User Scope = iota
	Machine
)

func (s Scope) String() string {
	switch s {
	case User:
		return "user"
	case Machine:
		return "machine"
	}
	return fmt.Sprintf("scope(%d)", int(s))
}

var (
	// ErrNotFound is returned when the key or the value does not exist.
	ErrNotFound = errors.New("store: value not found")

	// ErrBufferTooSmall is returned by QueryBounded when the value is longer
	// than the caller's limit.
	ErrBufferTooSmall = errors.New("store: value exceeds buffer")
)

// Store looks up string values.
type Store interface {
	Lookup(scope Scope, keyPath, valueName string) (string, error)
}

// QueryBounded looks up a value and rejects it when its UTF-16 length
// exceeds max code units.
func QueryBounded(s Store, scope Scope, keyPath, valueName string, max int) (string, error) {
	v, err := s.Lookup(scope, keyPath, valueName)
	if err != nil {
		return "", err
	}
	w, err := textconv.FromString(v)
	if err != nil {
		return "", fmt.Errorf("%s\\%s: %w", keyPath, valueName, err)
	}
	if len(w) > max {
		return "", fmt.Errorf("%s\\%s: %d code units: %w", keyPath, valueName, len(w), ErrBufferTooSmall)
	}
	return v, nil
}

// normalizeKey folds a key path to the form used for map lookups.
func normalizeKey(keyPath string) string {
	k := strings.ReplaceAll(keyPath, "/", `\`)
	return strings.ToLower(strings.Trim(k, `\`))
}
