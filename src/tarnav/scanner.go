package tarnav

import "io"

// blocksFor returns the number of 512-byte blocks covering size bytes.
func blocksFor(size int64) int64 {
	return (size + tarBlockSize - 1) / tarBlockSize
}

// nextHeaderOffset returns the offset of the header following the one at
// headerOffset: past the header record, the data region and its padding.
func nextHeaderOffset(headerOffset, size int64) int64 {
	return headerOffset + tarHeaderSize + blocksFor(size)*tarBlockSize
}

// scanner walks an archive header by header. It seeks to offset 0 on
// creation and to the next header boundary after every record, so it
// never depends on the position a previous operation left behind.
type scanner struct {
	r    io.ReadSeeker
	off  int64 // offset of the next header record
	idx  int   // 0-based index of the next header
	done bool
}

func newScanner(r io.ReadSeeker) (*scanner, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, &IOError{Err: err}
	}
	return &scanner{r: r}, nil
}

// next returns the next entry. It returns io.EOF at the end-of-archive
// marker or at a clean end of stream; a partial header record before
// either is ErrTruncated.
func (s *scanner) next() (*Entry, error) {
	if s.done {
		return nil, io.EOF
	}
	var b block
	_, err := io.ReadFull(s.r, b[:])
	switch err {
	case nil:
	case io.EOF:
		s.done = true
		return nil, io.EOF
	case io.ErrUnexpectedEOF:
		s.done = true
		return nil, &FormatError{Index: s.idx, Err: ErrTruncated}
	default:
		return nil, &IOError{Err: err}
	}
	if b == zeroBlock {
		s.done = true
		return nil, io.EOF
	}
	hdr, err := decode(&b)
	if err != nil {
		s.done = true
		return nil, &FormatError{Index: s.idx, Err: err}
	}
	entry := &Entry{
		Header:       *hdr,
		Index:        s.idx,
		HeaderOffset: s.off,
		DataOffset:   s.off + tarHeaderSize,
	}
	s.idx++
	s.off = nextHeaderOffset(s.off, hdr.Size)
	if _, err := s.r.Seek(s.off, io.SeekStart); err != nil {
		s.done = true
		return nil, &IOError{Err: err}
	}
	return entry, nil
}
