package tarnav

import "io"

// ReadFile copies file content starting at offset into buf. path may be
// a symlink chain ending in a regular file; anything else resolves to
// ErrNotFile. offset may equal the file size, which reads nothing;
// beyond it is ErrOffsetRange.
//
// ReadFile returns the number of bytes copied and the number of bytes of
// the file still unread after them. Callers stream a whole file by
// advancing offset until the remaining count reaches zero. On failure
// the content of buf is unspecified.
func ReadFile(r io.ReadSeeker, path string, offset int64, buf []byte) (int, int64, error) {
	entry, err := Resolve(r, path)
	if err != nil {
		return 0, 0, err
	}
	if !entry.Header.IsFile() {
		return 0, 0, ErrNotFile
	}
	size := entry.Header.Size
	if offset < 0 || offset > size {
		return 0, 0, ErrOffsetRange
	}
	want := size - offset
	if int64(len(buf)) < want {
		want = int64(len(buf))
	}
	if want == 0 {
		return 0, size - offset, nil
	}
	if _, err := r.Seek(entry.DataOffset+offset, io.SeekStart); err != nil {
		return 0, 0, &IOError{Err: err}
	}
	n, err := io.ReadFull(r, buf[:want])
	if err != nil {
		return n, 0, &IOError{Err: err}
	}
	return n, size - offset - int64(n), nil
}
