package tarnav

import (
	"errors"
	"io"
)

// maxLinkDepth bounds how many link headers Resolve follows.
const maxLinkDepth = 40

// followable reports whether resolution continues through h. Symlinks
// are always followed. A hardlink is followed only when it carries no
// data of its own; a hardlink with a data region is terminal and its
// linkname is informational.
func followable(h *Header) bool {
	if h.Typeflag == TypeSymlink {
		return true
	}
	return h.Typeflag == TypeHardlink && h.Size == 0
}

// Resolve locates path and follows symlink and hardlink headers until a
// non-link entry is reached. Link targets are looked up byte-exactly in
// the archive namespace; a target missing from the archive is
// ErrBrokenLink. Revisiting a path, or following more than maxLinkDepth
// links, is ErrLinkCycle.
func Resolve(r io.ReadSeeker, path string) (*Entry, error) {
	entry, err := Find(r, path)
	if err != nil {
		return nil, err
	}
	visited := map[string]bool{path: true}
	for depth := 0; followable(&entry.Header); depth++ {
		if depth >= maxLinkDepth {
			return nil, ErrLinkCycle
		}
		target := entry.Header.Linkname
		if visited[target] {
			return nil, ErrLinkCycle
		}
		visited[target] = true
		entry, err = Find(r, target)
		if errors.Is(err, ErrNotFound) {
			return nil, ErrBrokenLink
		}
		if err != nil {
			return nil, err
		}
	}
	return entry, nil
}
