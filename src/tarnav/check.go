package tarnav

import "io"

// Check scans the whole archive and validates every header. It returns
// the number of headers before the end-of-archive marker. The first
// structurally invalid header aborts the scan; the returned *FormatError
// carries its index. A corrupt header invalidates the archive as a
// whole, there is no partial-prefix claim.
func Check(r io.ReadSeeker) (int, error) {
	s, err := newScanner(r)
	if err != nil {
		return 0, err
	}
	var count int
ScanLoop:
	for {
		_, err := s.next()
		if err == io.EOF {
			break ScanLoop
		}
		if err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}
