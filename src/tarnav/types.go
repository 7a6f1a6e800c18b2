// Package tarnav navigates USTAR tar archives without extracting them.
// It validates header integrity, locates entries by path, resolves
// symlink chains, lists directory children and reads file content from
// arbitrary offsets. All operations scan the caller-supplied seekable
// source from offset 0 and leave no state behind.
package tarnav

const (
	tarHeaderSize int64 = 512
	tarBlockSize  int64 = 512

	namePos     = 0
	nameLen     = 100
	modePos     = 100
	modeLen     = 8
	uidPos      = 108
	uidLen      = 8
	gidPos      = 116
	gidLen      = 8
	sizePos     = 124
	sizeLen     = 12
	mtimePos    = 136
	mtimeLen    = 12
	chksumPos   = 148
	chksumLen   = 8
	typeflagPos = 156
	linknamePos = 157
	linknameLen = 100
	magicPos    = 257
	magicLen    = 6
	versionPos  = 263
	versionLen  = 2

	magicUSTAR   = "ustar\x00"
	versionUSTAR = "00"
)

type block [tarBlockSize]byte

var zeroBlock block

// Typeflag values of the USTAR format.
const (
	TypeReg      byte = '0'  // regular file
	TypeRegA     byte = 0x00 // regular file, pre-POSIX encoding
	TypeHardlink byte = '1'
	TypeSymlink  byte = '2'
	TypeChar     byte = '3'
	TypeBlock    byte = '4'
	TypeDir      byte = '5'
	TypeFifo     byte = '6'
	TypeCont     byte = '7' // contiguous file
)

// Header is one decoded 512-byte USTAR header record.
type Header struct {
	Name     string // Path of the entry, byte-exact as stored.
	Mode     int64
	UID      int
	GID      int
	Size     int64 // Declared byte count of the data region, without padding.
	ModTime  int64 // Seconds since the Unix epoch.
	Typeflag byte
	Linkname string // Link target for symlink and hardlink entries.
}

// IsFile reports whether the entry is a regular file. Both USTAR
// encodings of regular files count.
func (h *Header) IsFile() bool {
	return h.Typeflag == TypeReg || h.Typeflag == TypeRegA
}

// IsDir reports whether the entry is a directory.
func (h *Header) IsDir() bool {
	return h.Typeflag == TypeDir
}

// IsSymlink reports whether the entry is a symbolic link.
func (h *Header) IsSymlink() bool {
	return h.Typeflag == TypeSymlink
}

// IsHardlink reports whether the entry is a hard link.
func (h *Header) IsHardlink() bool {
	return h.Typeflag == TypeHardlink
}

// Entry is a header together with its position in the archive.
type Entry struct {
	Header       Header
	Index        int   // 0-based position in scan order.
	HeaderOffset int64 // Offset of the header record.
	DataOffset   int64 // Offset of the first data byte.
}
