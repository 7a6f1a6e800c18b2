package tarnav

import "io"

// Find returns the entry whose stored name equals path byte for byte.
// Names are compared without normalization: "dir" does not match "dir/".
// Only the first match in scan order is considered. An archive ending
// without a match yields ErrNotFound.
func Find(r io.ReadSeeker, path string) (*Entry, error) {
	s, err := newScanner(r)
	if err != nil {
		return nil, err
	}
ScanLoop:
	for {
		entry, err := s.next()
		if err == io.EOF {
			break ScanLoop
		}
		if err != nil {
			return nil, err
		}
		if entry.Header.Name == path {
			return entry, nil
		}
	}
	return nil, ErrNotFound
}
