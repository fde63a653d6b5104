package locations

import (
	"errors"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/posixshim/internal/textconv"
)

// MaxPath is the longest native path, in UTF-16 code units, the shim
// produces.
const MaxPath = 260

// ErrOverflow is returned when a directory would exceed MaxPath.
var ErrOverflow = errors.New("path exceeds maximum length")

// Dir is a directory in every representation translation needs.
type Dir struct {
	// Native is the path as a Go string.
	Native string
	// Wide is the UTF-16 form.
	Wide textconv.Wide
	// UTF8 is the narrow form used in UTF-8 mode.
	UTF8 []byte
	// ANSI is the narrow form in the active code page.
	ANSI []byte
	// Lossy reports that ANSI could not represent every character.
	Lossy bool
}

// Len returns the length of the directory in UTF-16 code units.
func (d Dir) Len() int {
	return len(d.Wide)
}

// Narrow returns the UTF-8 or code-page form.
func (d Dir) Narrow(utf8Mode bool) []byte {
	if utf8Mode {
		return d.UTF8
	}
	return d.ANSI
}

// NarrowLen returns the length of Narrow in bytes.
func (d Dir) NarrowLen(utf8Mode bool) int {
	return len(d.Narrow(utf8Mode))
}

func (d Dir) String() string {
	return d.Native
}

// NewDir builds a Dir from a native path, forcing exactly one trailing
// separator.
func NewDir(native string, sep byte, cp textconv.CodePage) (Dir, error) {
	native = strings.TrimRight(native, string(sep)) + string(sep)
	return newDir(native, cp)
}

func newDir(native string, cp textconv.CodePage) (Dir, error) {
	w, err := textconv.FromString(native)
	if err != nil {
		return Dir{}, err
	}
	if len(w) > MaxPath {
		return Dir{}, fmt.Errorf("%d code units: %w", len(w), ErrOverflow)
	}
	ansi, lossy, err := textconv.WideToNarrow(w, cp)
	if err != nil {
		return Dir{}, err
	}
	return Dir{
		Native: native,
		Wide:   w,
		UTF8:   []byte(native),
		ANSI:   ansi,
		Lossy:  lossy,
	}, nil
}
