package pathconv

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Glob translates a POSIX pattern and returns the native paths matching
// it. "**" matches across directories.
func (e *Engine) Glob(pattern string) ([]string, error) {
	native, err := e.Translate(pattern, false)
	if err != nil {
		return nil, err
	}
	matches, err := doublestar.FilepathGlob(native)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	return matches, nil
}
