package textconv

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
)

// DetectCodePage guesses the code page of b. Valid UTF-8 is reported as
// UTF8 without consulting the detector.
func DetectCodePage(b []byte) (CodePage, error) {
	if utf8.Valid(b) {
		return UTF8, nil
	}

	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(b)
	if err != nil || result == nil {
		return 0, fmt.Errorf("detect charset: %w", ErrUnsupportedCodePage)
	}

	name := strings.ToLower(result.Charset)
	enc, err := htmlindex.Get(name)
	if err != nil {
		return 0, fmt.Errorf("%w: charset %s", ErrUnsupportedCodePage, name)
	}
	if cp, ok := codePageOf(enc); ok {
		return cp, nil
	}
	return 0, fmt.Errorf("%w: charset %s", ErrUnsupportedCodePage, name)
}

// ToUTF8 returns b as UTF-8, transcoding from the detected code page when b
// is not valid UTF-8 already.
func ToUTF8(b []byte) ([]byte, error) {
	cp, err := DetectCodePage(b)
	if err != nil {
		return nil, err
	}
	if cp == UTF8 {
		return b, nil
	}
	s, err := Decode(b, cp)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}
