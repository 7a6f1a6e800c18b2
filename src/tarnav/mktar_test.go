package tarnav

import (
	"archive/tar"
	"bytes"
	"fmt"
	"testing"
	"time"
)

// testEntry describes one archive entry for mktar.
type testEntry struct {
	name     string
	typeflag byte
	link     string
	body     string
}

func file(name, body string) testEntry {
	return testEntry{name: name, typeflag: TypeReg, body: body}
}

func dir(name string) testEntry {
	return testEntry{name: name, typeflag: TypeDir}
}

func symlink(name, target string) testEntry {
	return testEntry{name: name, typeflag: TypeSymlink, link: target}
}

func hardlink(name, target string) testEntry {
	return testEntry{name: name, typeflag: TypeHardlink, link: target}
}

// mktar builds a USTAR archive in memory.
func mktar(t *testing.T, entries ...testEntry) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := tar.NewWriter(buf)
	for _, e := range entries {
		hdr := &tar.Header{
			Name:    e.name,
			Mode:    0644,
			ModTime: time.Unix(1234567890, 0),
			Format:  tar.FormatUSTAR,
		}
		switch e.typeflag {
		case TypeDir:
			hdr.Typeflag = tar.TypeDir
			hdr.Mode = 0755
		case TypeSymlink:
			hdr.Typeflag = tar.TypeSymlink
			hdr.Linkname = e.link
		case TypeHardlink:
			hdr.Typeflag = tar.TypeLink
			hdr.Linkname = e.link
		default:
			hdr.Typeflag = tar.TypeReg
			hdr.Size = int64(len(e.body))
		}
		if err := w.WriteHeader(hdr); err != nil {
			t.Fatalf("WriteHeader %s: %s", e.name, err)
		}
		if hdr.Typeflag == tar.TypeReg {
			if _, err := w.Write([]byte(e.body)); err != nil {
				t.Fatalf("Write %s: %s", e.name, err)
			}
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %s", err)
	}
	return buf.Bytes()
}

func source(t *testing.T, entries ...testEntry) *bytes.Reader {
	t.Helper()
	return bytes.NewReader(mktar(t, entries...))
}

// fixChecksum recomputes and stores the checksum of the header record
// starting at raw[0], so tests can patch other fields afterwards.
func fixChecksum(t *testing.T, raw []byte) {
	t.Helper()
	if len(raw) < int(tarHeaderSize) {
		t.Fatalf("fixChecksum: record too short: %d", len(raw))
	}
	var b block
	copy(b[:], raw)
	copy(raw[chksumPos:chksumPos+chksumLen], fmt.Sprintf("%06o\x00 ", checksum(&b)))
}
