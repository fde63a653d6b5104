package textconv

import "unicode/utf16"

// FromString converts a Go string to a wide string. Go strings handed to
// the host are UTF-8 by convention.
func FromString(s string) (Wide, error) {
	return NarrowToWide([]byte(s), UTF8)
}

// String converts w to a Go string, replacing unpaired surrogates with
// U+FFFD.
func (w Wide) String() string {
	return string(utf16.Decode(w))
}

// Decode converts narrow bytes in cp to a Go string.
func Decode(b []byte, cp CodePage) (string, error) {
	if cp == UTF8 {
		if _, err := NarrowLen(b, cp); err != nil {
			return "", err
		}
		return string(b), nil
	}
	w, err := NarrowToWide(b, cp)
	if err != nil {
		return "", err
	}
	return w.String(), nil
}

// Encode converts a Go string to narrow bytes in cp.
func Encode(s string, cp CodePage) ([]byte, bool, error) {
	if cp == UTF8 {
		if _, err := NarrowLen([]byte(s), cp); err != nil {
			return nil, false, err
		}
		return []byte(s), false, nil
	}
	w, err := FromString(s)
	if err != nil {
		return nil, false, err
	}
	return WideToNarrow(w, cp)
}
