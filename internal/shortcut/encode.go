package shortcut

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/GriffinCanCode/posixshim/internal/errno"
	"github.com/GriffinCanCode/posixshim/internal/locations"
	"github.com/GriffinCanCode/posixshim/internal/textconv"
)

// Encode writes a link to target. Absolute targets are stored in LinkInfo
// with both a cp-encoded and a Unicode local path; relative targets as a
// RELATIVE_PATH string.
func Encode(w io.Writer, target string, cp textconv.CodePage) error {
	wide, err := textconv.FromString(target)
	if err != nil {
		return err
	}
	if len(wide) == 0 || len(wide) > 0xFFFF {
		return fmt.Errorf("link target length %d: %w", len(wide), errno.EINVAL)
	}

	h := header{
		HeaderSize:     HeaderSize,
		CLSID:          clsidBytes(LinkCLSID),
		Flags:          isUnicode,
		FileAttributes: fileAttributeNormal,
		ShowCommand:    showNormal,
	}
	absolute := isAbs(target)
	if absolute {
		h.Flags |= hasLinkInfo
	} else {
		h.Flags |= hasRelativePath
	}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &h); err != nil {
		return err
	}
	if absolute {
		ansi, _, err := textconv.Encode(target, cp)
		if err != nil {
			return err
		}
		writeLinkInfo(&buf, ansi, wide)
	} else {
		put16(&buf, uint16(len(wide)))
		for _, u := range wide {
			put16(&buf, u)
		}
	}
	// TerminalBlock
	put32(&buf, 0)

	_, err = w.Write(buf.Bytes())
	return err
}

func writeLinkInfo(buf *bytes.Buffer, ansi []byte, wide textconv.Wide) {
	volumeOff := linkInfoHeaderSizeUnicode
	baseOff := volumeOff + volumeIDSize
	suffixOff := baseOff + len(ansi) + 1
	baseOffW := suffixOff + 1
	suffixOffW := baseOffW + 2*(len(wide)+1)
	size := suffixOffW + 2

	for _, v := range []int{
		size,
		linkInfoHeaderSizeUnicode,
		volumeIDAndLocalBasePath,
		volumeOff,
		baseOff,
		0, // CommonNetworkRelativeLinkOffset
		suffixOff,
		baseOffW,
		suffixOffW,
	} {
		put32(buf, uint32(v))
	}

	// VolumeID with an empty label.
	put32(buf, volumeIDSize)
	put32(buf, driveFixed)
	put32(buf, 0)
	put32(buf, volumeLabelOffset)
	buf.WriteByte(0)

	buf.Write(ansi)
	buf.WriteByte(0)
	buf.WriteByte(0)
	for _, u := range wide {
		put16(buf, u)
	}
	put16(buf, 0)
	put16(buf, 0)
}

func put16(buf *bytes.Buffer, v uint16) {
	buf.Write(binary.LittleEndian.AppendUint16(nil, v))
}

func put32(buf *bytes.Buffer, v uint32) {
	buf.Write(binary.LittleEndian.AppendUint32(nil, v))
}

// isAbs reports whether p is absolute in either native or POSIX syntax.
func isAbs(p string) bool {
	if len(p) >= 2 && p[1] == ':' {
		return true
	}
	return len(p) > 0 && (p[0] == '\\' || p[0] == '/')
}

// Create writes a link to target at linkPath with Ext appended. It fails
// with ENAMETOOLONG when either path would exceed locations.MaxPath and
// refuses to overwrite an existing file.
func Create(target, linkPath string, cp textconv.CodePage) error {
	if codeUnits(target) > locations.MaxPath || codeUnits(linkPath)+len(Ext) > locations.MaxPath {
		return &fs.PathError{Op: "symlink", Path: linkPath, Err: errno.ENAMETOOLONG}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, target, cp); err != nil {
		return &fs.PathError{Op: "symlink", Path: linkPath, Err: err}
	}

	f, err := os.OpenFile(linkPath+Ext, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o666)
	if err != nil {
		return err
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func codeUnits(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n++
		}
		n++
	}
	return n
}
