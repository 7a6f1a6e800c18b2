package tarnav

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMagic is returned for a header whose magic field is not "ustar" plus NUL.
	ErrBadMagic = errors.New("invalid ustar magic")
	// ErrBadVersion is returned for a header whose version field is not "00".
	ErrBadVersion = errors.New("invalid ustar version")
	// ErrBadChecksum is returned for a header whose stored checksum does not match.
	ErrBadChecksum = errors.New("header checksum mismatch")
	// ErrBadSize is returned for a header whose size field is not an octal numeral.
	ErrBadSize = errors.New("malformed size field")
	// ErrTruncated is returned when the stream ends inside a header record.
	ErrTruncated = errors.New("truncated archive")

	// ErrNotFound is returned when no entry matches the requested path.
	ErrNotFound = errors.New("entry not found")
	// ErrNotDir is returned when a listed path does not resolve to a directory.
	ErrNotDir = errors.New("not a directory")
	// ErrNotFile is returned when a read path does not resolve to a regular file.
	ErrNotFile = errors.New("not a file")
	// ErrBrokenLink is returned when a link target does not exist in the archive.
	ErrBrokenLink = errors.New("broken link")
	// ErrLinkCycle is returned when link resolution revisits a path or exceeds
	// the maximum chain length.
	ErrLinkCycle = errors.New("link cycle")
	// ErrOffsetRange is returned for a read offset beyond the file size.
	ErrOffsetRange = errors.New("offset beyond file size")
	// ErrTooManyEntries is returned when a listing exceeds the given capacity.
	ErrTooManyEntries = errors.New("too many entries")
)

// FormatError reports a structural defect of the archive together with the
// 0-based index of the offending header. It unwraps to one of ErrBadMagic,
// ErrBadVersion, ErrBadChecksum, ErrBadSize or ErrTruncated.
type FormatError struct {
	Index int
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("header %d: %s", e.Index, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// IOError wraps a failure of the underlying byte source. It is distinct
// from the structural errors: the archive may be fine, the medium is not.
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return "source: " + e.Err.Error() }

func (e *IOError) Unwrap() error { return e.Err }
