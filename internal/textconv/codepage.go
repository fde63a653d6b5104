package textconv

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// CodePage identifies a narrow text encoding by its host code page number.
type CodePage uint32

// UTF8 is the code page number the host uses for UTF-8.
const UTF8 CodePage = 65001

// DefaultCodePage is reported by hosts without an ANSI code page.
const DefaultCodePage CodePage = 1252

// Placeholder replaces characters that a code page cannot represent.
const Placeholder = '?'

// ErrUnsupportedCodePage is returned for code page numbers with no codec.
var ErrUnsupportedCodePage = errors.New("unsupported code page")

var charmaps = map[CodePage]*charmap.Charmap{
	37:    charmap.CodePage037,
	437:   charmap.CodePage437,
	850:   charmap.CodePage850,
	852:   charmap.CodePage852,
	855:   charmap.CodePage855,
	858:   charmap.CodePage858,
	860:   charmap.CodePage860,
	862:   charmap.CodePage862,
	863:   charmap.CodePage863,
	865:   charmap.CodePage865,
	866:   charmap.CodePage866,
	874:   charmap.Windows874,
	1047:  charmap.CodePage1047,
	1140:  charmap.CodePage1140,
	1250:  charmap.Windows1250,
	1251:  charmap.Windows1251,
	1252:  charmap.Windows1252,
	1253:  charmap.Windows1253,
	1254:  charmap.Windows1254,
	1255:  charmap.Windows1255,
	1256:  charmap.Windows1256,
	1257:  charmap.Windows1257,
	1258:  charmap.Windows1258,
	10000: charmap.Macintosh,
	10007: charmap.MacintoshCyrillic,
	20866: charmap.KOI8R,
	21866: charmap.KOI8U,
	28591: charmap.ISO8859_1,
	28592: charmap.ISO8859_2,
	28593: charmap.ISO8859_3,
	28594: charmap.ISO8859_4,
	28595: charmap.ISO8859_5,
	28596: charmap.ISO8859_6,
	28597: charmap.ISO8859_7,
	28598: charmap.ISO8859_8,
	28599: charmap.ISO8859_9,
	28600: charmap.ISO8859_10,
	28603: charmap.ISO8859_13,
	28604: charmap.ISO8859_14,
	28605: charmap.ISO8859_15,
	28606: charmap.ISO8859_16,
}

// multiByte lists the double-byte and variable-width code pages.
var multiByte = map[CodePage]struct {
	enc  encoding.Encoding
	name string
}{
	932:   {japanese.ShiftJIS, "Shift_JIS"},
	936:   {simplifiedchinese.GBK, "GBK"},
	949:   {korean.EUCKR, "EUC-KR"},
	950:   {traditionalchinese.Big5, "Big5"},
	20932: {japanese.EUCJP, "EUC-JP"},
	54936: {simplifiedchinese.GB18030, "GB18030"},
}

// codec converts between one code page and runes.
type codec interface {
	// decode calls fn for every rune of b. Invalid sequences decode to
	// U+FFFD, as the host's own conversion does.
	decode(b []byte, fn func(r rune)) error
	// encode appends r to dst, reporting false when cp has no encoding
	// for it.
	encode(dst []byte, r rune) ([]byte, bool)
	encoding() encoding.Encoding
	String() string
}

type singleByteCodec struct{ m *charmap.Charmap }

func (c singleByteCodec) decode(b []byte, fn func(r rune)) error {
	for _, x := range b {
		fn(c.m.DecodeByte(x))
	}
	return nil
}

func (c singleByteCodec) encode(dst []byte, r rune) ([]byte, bool) {
	x, ok := c.m.EncodeRune(r)
	if !ok {
		return dst, false
	}
	return append(dst, x), true
}

func (c singleByteCodec) encoding() encoding.Encoding { return c.m }
func (c singleByteCodec) String() string              { return c.m.String() }

type multiByteCodec struct {
	enc  encoding.Encoding
	name string
}

func (c multiByteCodec) decode(b []byte, fn func(r rune)) error {
	out, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		return err
	}
	for _, r := range string(out) {
		fn(r)
	}
	return nil
}

func (c multiByteCodec) encode(dst []byte, r rune) ([]byte, bool) {
	var buf [utf8.UTFMax]byte
	out, err := c.enc.NewEncoder().Bytes(buf[:utf8.EncodeRune(buf[:], r)])
	if err != nil || len(out) == 0 {
		return dst, false
	}
	return append(dst, out...), true
}

func (c multiByteCodec) encoding() encoding.Encoding { return c.enc }
func (c multiByteCodec) String() string              { return c.name }

// Supported reports whether conversions under cp are available.
func (cp CodePage) Supported() bool {
	if cp == UTF8 {
		return true
	}
	_, err := lookup(cp)
	return err == nil
}

// MultiByte reports whether cp encodes some characters in more than one
// byte. Trail bytes of such code pages may collide with ASCII.
func (cp CodePage) MultiByte() bool {
	if cp == UTF8 {
		return true
	}
	_, ok := multiByte[cp]
	return ok
}

// String returns the code page name, or the number for unknown code pages.
func (cp CodePage) String() string {
	if cp == UTF8 {
		return "UTF-8"
	}
	if c, err := lookup(cp); err == nil {
		return c.String()
	}
	return fmt.Sprintf("CP%d", uint32(cp))
}

func lookup(cp CodePage) (codec, error) {
	if m, ok := charmaps[cp]; ok {
		return singleByteCodec{m}, nil
	}
	if m, ok := multiByte[cp]; ok {
		return multiByteCodec{enc: m.enc, name: m.name}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnsupportedCodePage, uint32(cp))
}

// codePageOf returns the code page number of enc.
func codePageOf(enc encoding.Encoding) (CodePage, bool) {
	for cp := range charmaps {
		if c, _ := lookup(cp); c.encoding() == enc {
			return cp, true
		}
	}
	for cp, m := range multiByte {
		if m.enc == enc {
			return cp, true
		}
	}
	return 0, false
}
