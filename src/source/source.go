// Package source opens archive files as seekable byte sources for the
// navigation engine. A zstd-compressed archive is decompressed into a
// private spill file first, so the engine always scans a plain seekable
// stream.
package source

import (
	"io"
	"os"
	"path"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// ErrNoArchive is returned by Locate when no file matches the archive name.
var ErrNoArchive = errors.New("archive not found")

// Handle is an open archive byte source. The caller owns it for the
// duration of every engine call and must not share it across concurrent
// operations.
type Handle struct {
	f *os.File
}

// Source returns the seekable byte stream of the archive.
func (h *Handle) Source() io.ReadSeeker { return h.f }

func (h *Handle) Close() error { return h.f.Close() }

// Open opens the archive at filename read-only. Names ending in ".zst"
// are decompressed into a spill file that is unlinked immediately, so it
// disappears with the handle.
func Open(filename string) (*Handle, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}
	if !strings.HasSuffix(filename, ".zst") {
		return &Handle{f: f}, nil
	}
	defer func() { _ = f.Close() }()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "zstd %s", filename)
	}
	defer dec.Close()
	spill, err := spillFile()
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(spill, dec); err != nil {
		_ = spill.Close()
		return nil, errors.Wrapf(err, "decompress %s", filename)
	}
	if _, err := spill.Seek(0, io.SeekStart); err != nil {
		_ = spill.Close()
		return nil, errors.Wrap(err, "rewind spill file")
	}
	return &Handle{f: spill}, nil
}

func spillFile() (*os.File, error) {
	f, err := os.CreateTemp("", "tarnav.*.tar")
	if err != nil {
		return nil, errors.Wrap(err, "create spill file")
	}
	_ = os.Remove(f.Name())
	return f, nil
}

// Locate maps an archive name to a file below dir, preferring a plain
// archive over a compressed one.
func Locate(dir, archive string) (string, error) {
	for _, name := range []string{archive + ".tar", archive + ".tar.zst"} {
		p := path.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", errors.Wrapf(ErrNoArchive, "%s in %s", archive, dir)
}
