package tarnav

import (
	"io"
	"strings"
)

// childOf reports whether name is a direct child of the directory named
// by prefix (which ends in "/"). Nested descendants like "dir/c/d" are
// not children of "dir/"; the subdirectory "dir/c/" itself is.
func childOf(name, prefix string) bool {
	if name == prefix || !strings.HasPrefix(name, prefix) {
		return false
	}
	rest := name[len(prefix):]
	i := strings.IndexByte(rest, '/')
	return i < 0 || i == len(rest)-1
}

// List returns the paths of the direct children of the directory at
// path, in archive order. path may be a symlink chain ending in a
// directory; anything else resolves to ErrNotDir. A positive capacity
// bounds the result: exceeding it is ErrTooManyEntries. capacity <= 0
// lifts the bound.
func List(r io.ReadSeeker, path string, capacity int) ([]string, error) {
	dir, err := Resolve(r, path)
	if err != nil {
		return nil, err
	}
	if !dir.Header.IsDir() {
		return nil, ErrNotDir
	}
	prefix := dir.Header.Name
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	s, err := newScanner(r)
	if err != nil {
		return nil, err
	}
	var children []string
ScanLoop:
	for {
		entry, err := s.next()
		if err == io.EOF {
			break ScanLoop
		}
		if err != nil {
			return nil, err
		}
		if !childOf(entry.Header.Name, prefix) {
			continue
		}
		if capacity > 0 && len(children) == capacity {
			return nil, ErrTooManyEntries
		}
		children = append(children, entry.Header.Name)
	}
	return children, nil
}
