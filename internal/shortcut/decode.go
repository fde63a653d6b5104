package shortcut

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf16"

	"github.com/GriffinCanCode/posixshim/internal/textconv"
)

// maxLinkSize bounds how much of a file Decode reads.
const maxLinkSize = 1 << 20

// Link is the part of a shell link the resolver needs.
type Link struct {
	// Target is the recorded target path.
	Target string
	// Relative is set when Target came from RELATIVE_PATH and is relative
	// to the link's directory.
	Relative bool
	// Network is set when the link only records a network location.
	Network bool
}

type header struct {
	HeaderSize     uint32
	CLSID          [16]byte
	Flags          uint32
	FileAttributes uint32
	CreationTime   uint64
	AccessTime     uint64
	WriteTime      uint64
	FileSize       uint32
	IconIndex      int32
	ShowCommand    uint32
	HotKey         uint16
	Reserved1      uint16
	Reserved2      uint32
	Reserved3      uint32
}

// Decode reads a link from r. Narrow strings are decoded with cp.
func Decode(r io.Reader, cp textconv.CodePage) (Link, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxLinkSize))
	if err != nil {
		return Link{}, err
	}
	return Parse(data, cp)
}

// Parse decodes a link held in memory.
func Parse(data []byte, cp textconv.CodePage) (Link, error) {
	if len(data) < HeaderSize || !HasMagic(data) {
		return Link{}, ErrNotShellLink
	}
	var h header
	if err := binary.Read(bytes.NewReader(data[:HeaderSize]), binary.LittleEndian, &h); err != nil {
		return Link{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if h.CLSID != clsidBytes(LinkCLSID) {
		return Link{}, ErrNotShellLink
	}

	off := HeaderSize
	if h.Flags&hasLinkTargetIDList != 0 {
		if len(data) < off+2 {
			return Link{}, fmt.Errorf("%w: truncated item id list", ErrMalformed)
		}
		off += 2 + int(binary.LittleEndian.Uint16(data[off:]))
	}

	var link Link
	if h.Flags&hasLinkInfo != 0 {
		if len(data) < off+4 {
			return Link{}, fmt.Errorf("%w: truncated link info", ErrMalformed)
		}
		size := int(min(binary.LittleEndian.Uint32(data[off:]), uint32(len(data))))
		if size < linkInfoHeaderSize || size > len(data)-off {
			return Link{}, fmt.Errorf("%w: link info size %d", ErrMalformed, size)
		}
		var err error
		if link, err = parseLinkInfo(data[off:off+size], cp); err != nil {
			return Link{}, err
		}
		off += size
	}

	var relative string
	unicode := h.Flags&isUnicode != 0
	for _, flag := range []uint32{hasName, hasRelativePath, hasWorkingDir, hasArguments, hasIconLocation} {
		if h.Flags&flag == 0 {
			continue
		}
		s, n, err := readString(data[min(off, len(data)):], unicode, cp)
		if err != nil {
			return Link{}, err
		}
		if flag == hasRelativePath {
			relative = s
		}
		off += n
	}

	if link.Target == "" {
		if relative == "" {
			return Link{}, ErrNoTarget
		}
		link = Link{Target: relative, Relative: true}
	}
	return link, nil
}

func parseLinkInfo(info []byte, cp textconv.CodePage) (Link, error) {
	u32 := func(at int) uint32 { return binary.LittleEndian.Uint32(info[at:]) }
	// Offsets past the end of info become -1 so that they never wrap
	// when int is 32 bits wide.
	offset := func(at int) int {
		if v := u32(at); uint64(v) <= uint64(len(info)) {
			return int(v)
		}
		return -1
	}

	headerSize := u32(4)
	flags := u32(8)
	netOff := offset(20)
	baseOff, suffixOff := offset(16), offset(24)
	var baseOffW, suffixOffW int
	if headerSize >= linkInfoHeaderSizeUnicode && len(info) >= linkInfoHeaderSizeUnicode {
		baseOffW, suffixOffW = offset(28), offset(32)
	}

	suffix, err := pathString(info, suffixOff, suffixOffW, cp)
	if err != nil {
		return Link{}, err
	}

	switch {
	case flags&volumeIDAndLocalBasePath != 0:
		base, err := pathString(info, baseOff, baseOffW, cp)
		if err != nil {
			return Link{}, err
		}
		return Link{Target: base + suffix}, nil

	case flags&commonNetworkRelativeLinkAndPathSuffix != 0:
		// CommonNetworkRelativeLink: size, flags, NetNameOffset, ...
		if netOff < 0 || netOff > len(info)-12 {
			return Link{}, fmt.Errorf("%w: network link offset", ErrMalformed)
		}
		nameRel := u32(netOff + 8)
		if uint64(nameRel) >= uint64(len(info)-netOff) {
			return Link{}, fmt.Errorf("%w: network name offset", ErrMalformed)
		}
		nameOff := netOff + int(nameRel)
		name, err := cstring(info, nameOff)
		if err != nil {
			return Link{}, err
		}
		netName, err := textconv.Decode(name, cp)
		if err != nil {
			return Link{}, err
		}
		target := netName
		if suffix != "" {
			target += `\` + suffix
		}
		return Link{Target: target, Network: true}, nil
	}
	return Link{}, nil
}

// pathString returns the Unicode string at offW when present, otherwise
// the code-page string at off. A zero offset is an empty string.
func pathString(info []byte, off, offW int, cp textconv.CodePage) (string, error) {
	if offW != 0 {
		w, err := cstringW(info, offW)
		if err != nil {
			return "", err
		}
		return string(utf16.Decode(w)), nil
	}
	if off == 0 {
		return "", nil
	}
	b, err := cstring(info, off)
	if err != nil {
		return "", err
	}
	return textconv.Decode(b, cp)
}

func cstring(b []byte, off int) ([]byte, error) {
	if off < 0 || off >= len(b) {
		return nil, fmt.Errorf("%w: string offset %d", ErrMalformed, off)
	}
	end := bytes.IndexByte(b[off:], 0)
	if end < 0 {
		return nil, fmt.Errorf("%w: unterminated string", ErrMalformed)
	}
	return b[off : off+end], nil
}

func cstringW(b []byte, off int) ([]uint16, error) {
	if off < 0 || off >= len(b) {
		return nil, fmt.Errorf("%w: string offset %d", ErrMalformed, off)
	}
	var w []uint16
	for i := off; i+1 < len(b); i += 2 {
		u := binary.LittleEndian.Uint16(b[i:])
		if u == 0 {
			return w, nil
		}
		w = append(w, u)
	}
	return nil, fmt.Errorf("%w: unterminated string", ErrMalformed)
}

// readString decodes a StringData entry and returns it with the number of
// bytes consumed.
func readString(b []byte, unicode bool, cp textconv.CodePage) (string, int, error) {
	if len(b) < 2 {
		return "", 0, fmt.Errorf("%w: truncated string data", ErrMalformed)
	}
	count := int(binary.LittleEndian.Uint16(b))
	if !unicode {
		if len(b) < 2+count {
			return "", 0, fmt.Errorf("%w: truncated string data", ErrMalformed)
		}
		s, err := textconv.Decode(b[2:2+count], cp)
		return s, 2 + count, err
	}
	if len(b) < 2+2*count {
		return "", 0, fmt.Errorf("%w: truncated string data", ErrMalformed)
	}
	w := make([]uint16, count)
	for i := range w {
		w[i] = binary.LittleEndian.Uint16(b[2+2*i:])
	}
	return string(utf16.Decode(w)), 2 + 2*count, nil
}
