package shortcut

import (
	"encoding/binary"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Ext is the file extension of a link.
const Ext = ".lnk"

// MIME is the media type the link header sniffs as.
const MIME = "application/x-ms-shortcut"

// HeaderSize is the fixed size of ShellLinkHeader.
const HeaderSize = 0x4C

// LinkCLSID identifies the shell link class.
var LinkCLSID = uuid.MustParse("00021401-0000-0000-c000-000000000046")

var (
	// ErrNotShellLink is returned when data does not start with a link header.
	ErrNotShellLink = errors.New("not a shell link")
	// ErrMalformed is returned for truncated or inconsistent link data.
	ErrMalformed = errors.New("malformed shell link")
	// ErrNoTarget is returned when a link records no usable target path.
	ErrNoTarget = errors.New("shell link has no target path")
)

// LinkFlags.
const (
	hasLinkTargetIDList = 1 << 0
	hasLinkInfo         = 1 << 1
	hasName             = 1 << 2
	hasRelativePath     = 1 << 3
	hasWorkingDir       = 1 << 4
	hasArguments        = 1 << 5
	hasIconLocation     = 1 << 6
	isUnicode           = 1 << 7
)

// LinkInfoFlags.
const (
	volumeIDAndLocalBasePath               = 1 << 0
	commonNetworkRelativeLinkAndPathSuffix = 1 << 1
)

const (
	fileAttributeNormal = 0x80
	showNormal          = 1
	driveFixed          = 3

	linkInfoHeaderSize        = 0x1C
	linkInfoHeaderSizeUnicode = 0x24
	volumeIDSize              = 0x11
	volumeLabelOffset         = 0x10
)

// clsidBytes returns id in the mixed-endian layout GUIDs use on disk.
func clsidBytes(id uuid.UUID) [16]byte {
	var b [16]byte
	binary.LittleEndian.PutUint32(b[0:], binary.BigEndian.Uint32(id[0:4]))
	binary.LittleEndian.PutUint16(b[4:], binary.BigEndian.Uint16(id[4:6]))
	binary.LittleEndian.PutUint16(b[6:], binary.BigEndian.Uint16(id[6:8]))
	copy(b[8:], id[8:])
	return b
}

// HasMagic reports whether b starts with the 4-byte header size that opens
// every link.
func HasMagic(b []byte) bool {
	return len(b) >= 4 && binary.LittleEndian.Uint32(b) == HeaderSize
}

// IsShellLink reports whether b sniffs as a shell link.
func IsShellLink(b []byte) bool {
	return mimetype.Detect(b).Is(MIME)
}

// HasExt reports whether path ends in Ext, ignoring case.
func HasExt(path string) bool {
	return len(path) >= len(Ext) && strings.EqualFold(path[len(path)-len(Ext):], Ext)
}
