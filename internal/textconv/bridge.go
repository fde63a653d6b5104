package textconv

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// Wide is a UTF-16 string as the host's wide APIs expect it, without a
// terminating zero.
type Wide []uint16

// Phase names the step of a conversion that failed.
type Phase int

const (
	// PhaseCount is the length-counting pass.
	PhaseCount Phase = iota + 1
	// PhaseAlloc is output allocation.
	PhaseAlloc
	// PhaseConvert is the transliteration pass.
	PhaseConvert
)

func (p Phase) String() string {
	switch p {
	case PhaseCount:
		return "count"
	case PhaseAlloc:
		return "alloc"
	case PhaseConvert:
		return "convert"
	default:
		return "unknown"
	}
}

// maxAlloc caps a single conversion's output, in code units.
const maxAlloc = 1 << 24

var (
	// ErrBufferTooSmall is returned by the *Buf variants when the destination
	// cannot hold the converted string. Nothing is written in that case.
	ErrBufferTooSmall = errors.New("destination buffer too small")

	errInvalidUTF8    = errors.New("invalid UTF-8 sequence")
	errInvalidUTF16   = errors.New("unpaired UTF-16 surrogate")
	errLengthMismatch = errors.New("converted length differs from counted length")
	errTooLarge       = errors.New("output exceeds allocation limit")
)

// ConversionError reports which phase of a conversion failed.
type ConversionError struct {
	Phase    Phase
	CodePage CodePage
	Err      error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("textconv: %s phase failed for %s: %v", e.Phase, e.CodePage, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

func fail(p Phase, cp CodePage, err error) error {
	return &ConversionError{Phase: p, CodePage: cp, Err: err}
}

// NarrowLen returns the number of UTF-16 code units b decodes to under cp.
func NarrowLen(b []byte, cp CodePage) (int, error) {
	if cp == UTF8 {
		n := 0
		for i := 0; i < len(b); {
			r, size := utf8.DecodeRune(b[i:])
			if r == utf8.RuneError && size == 1 {
				return 0, fail(PhaseCount, cp, fmt.Errorf("%w at byte %d", errInvalidUTF8, i))
			}
			n += utf16.RuneLen(r)
			i += size
		}
		return n, nil
	}
	c, err := lookup(cp)
	if err != nil {
		return 0, fail(PhaseCount, cp, err)
	}
	n := 0
	if err := c.decode(b, func(r rune) { n += utf16.RuneLen(r) }); err != nil {
		return 0, fail(PhaseCount, cp, err)
	}
	return n, nil
}

// NarrowToWide decodes b under cp into a newly allocated wide string.
func NarrowToWide(b []byte, cp CodePage) (Wide, error) {
	n, err := NarrowLen(b, cp)
	if err != nil {
		return nil, err
	}
	if n > maxAlloc {
		return nil, fail(PhaseAlloc, cp, errTooLarge)
	}
	w := make(Wide, n)
	written, err := narrowToWide(b, w, cp)
	if err != nil {
		return nil, err
	}
	if written != n {
		return nil, fail(PhaseConvert, cp, errLengthMismatch)
	}
	return w, nil
}

// NarrowToWideBuf decodes b into dst and returns the number of code units
// written.
func NarrowToWideBuf(b []byte, dst Wide, cp CodePage) (int, error) {
	n, err := NarrowLen(b, cp)
	if err != nil {
		return 0, err
	}
	if len(dst) < n {
		return 0, ErrBufferTooSmall
	}
	written, err := narrowToWide(b, dst[:n], cp)
	if err != nil {
		return 0, err
	}
	if written != n {
		return 0, fail(PhaseConvert, cp, errLengthMismatch)
	}
	return n, nil
}

func narrowToWide(b []byte, dst Wide, cp CodePage) (int, error) {
	j := 0
	if cp == UTF8 {
		for i := 0; i < len(b); {
			r, size := utf8.DecodeRune(b[i:])
			if r == utf8.RuneError && size == 1 {
				return 0, fail(PhaseConvert, cp, errInvalidUTF8)
			}
			if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
				dst[j], dst[j+1] = uint16(r1), uint16(r2)
				j += 2
			} else {
				dst[j] = uint16(r)
				j++
			}
			i += size
		}
		return j, nil
	}
	c, err := lookup(cp)
	if err != nil {
		return 0, fail(PhaseConvert, cp, err)
	}
	err = c.decode(b, func(r rune) {
		if j+utf16.RuneLen(r) > len(dst) {
			j = len(dst) + 1
			return
		}
		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			dst[j], dst[j+1] = uint16(r1), uint16(r2)
			j += 2
		} else {
			dst[j] = uint16(r)
			j++
		}
	})
	if err != nil {
		return 0, fail(PhaseConvert, cp, err)
	}
	if j > len(dst) {
		return 0, fail(PhaseConvert, cp, errLengthMismatch)
	}
	return j, nil
}

// eachRune walks the code points of w, rejecting unpaired surrogates.
func eachRune(w Wide, fn func(r rune)) error {
	for i := 0; i < len(w); i++ {
		r := rune(w[i])
		if utf16.IsSurrogate(r) {
			if i+1 >= len(w) {
				return errInvalidUTF16
			}
			r = utf16.DecodeRune(r, rune(w[i+1]))
			if r == utf8.RuneError {
				return errInvalidUTF16
			}
			i++
		}
		fn(r)
	}
	return nil
}

// WideLen returns the number of bytes w encodes to under cp, and whether any
// character would be replaced by Placeholder.
func WideLen(w Wide, cp CodePage) (n int, lossy bool, err error) {
	if cp == UTF8 {
		err = eachRune(w, func(r rune) { n += utf8.RuneLen(r) })
		if err != nil {
			return 0, false, fail(PhaseCount, cp, err)
		}
		return n, false, nil
	}
	c, err := lookup(cp)
	if err != nil {
		return 0, false, fail(PhaseCount, cp, err)
	}
	var scratch []byte
	err = eachRune(w, func(r rune) {
		out, ok := c.encode(scratch[:0], r)
		if !ok {
			lossy = true
			n++
			return
		}
		n += len(out)
		scratch = out
	})
	if err != nil {
		return 0, false, fail(PhaseCount, cp, err)
	}
	return n, lossy, nil
}

// WideToNarrow encodes w under cp into a newly allocated byte string. lossy
// is true when at least one character was replaced by Placeholder; it is
// never true for UTF8.
func WideToNarrow(w Wide, cp CodePage) (b []byte, lossy bool, err error) {
	n, lossy, err := WideLen(w, cp)
	if err != nil {
		return nil, false, err
	}
	if n > maxAlloc {
		return nil, false, fail(PhaseAlloc, cp, errTooLarge)
	}
	b = make([]byte, 0, n)
	b, err = appendNarrow(b, w, cp)
	if err != nil {
		return nil, false, err
	}
	if len(b) != n {
		return nil, false, fail(PhaseConvert, cp, errLengthMismatch)
	}
	return b, lossy, nil
}

// WideToNarrowBuf encodes w into dst and returns the number of bytes written.
func WideToNarrowBuf(w Wide, dst []byte, cp CodePage) (int, bool, error) {
	n, lossy, err := WideLen(w, cp)
	if err != nil {
		return 0, false, err
	}
	if len(dst) < n {
		return 0, false, ErrBufferTooSmall
	}
	out, err := appendNarrow(dst[:0:n], w, cp)
	if err != nil {
		return 0, false, err
	}
	if len(out) != n {
		return 0, false, fail(PhaseConvert, cp, errLengthMismatch)
	}
	return n, lossy, nil
}

func appendNarrow(b []byte, w Wide, cp CodePage) ([]byte, error) {
	if cp == UTF8 {
		err := eachRune(w, func(r rune) { b = utf8.AppendRune(b, r) })
		if err != nil {
			return nil, fail(PhaseConvert, cp, err)
		}
		return b, nil
	}
	c, err := lookup(cp)
	if err != nil {
		return nil, fail(PhaseConvert, cp, err)
	}
	err = eachRune(w, func(r rune) {
		var ok bool
		if b, ok = c.encode(b, r); !ok {
			b = append(b, Placeholder)
		}
	})
	if err != nil {
		return nil, fail(PhaseConvert, cp, err)
	}
	return b, nil
}
