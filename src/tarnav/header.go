package tarnav

import (
	"bytes"
	"strconv"
)

// checksum computes the unsigned byte sum of a header record with the
// checksum field itself counted as eight ASCII spaces.
func checksum(b *block) int64 {
	var sum int64
	for i, c := range b {
		if i >= chksumPos && i < chksumPos+chksumLen {
			sum += ' '
		} else {
			sum += int64(c)
		}
	}
	return sum
}

// parseOctal parses a NUL- or space-terminated octal field. An empty or
// non-octal field is an error, never a silent zero.
func parseOctal(field []byte) (int64, error) {
	s := string(bytes.Trim(field, " \x00"))
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(s, 8, 64)
}

// cstring returns the bytes up to the first NUL as a string.
func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// decode validates and decodes one header record. The magic, version and
// checksum checks are independent; they are applied in that order. The
// caller is expected to have handled the all-zero end-of-archive record
// before calling decode.
func decode(b *block) (*Header, error) {
	if string(b[magicPos:magicPos+magicLen]) != magicUSTAR {
		return nil, ErrBadMagic
	}
	if string(b[versionPos:versionPos+versionLen]) != versionUSTAR {
		return nil, ErrBadVersion
	}
	stored, err := parseOctal(b[chksumPos : chksumPos+chksumLen])
	if err != nil || stored != checksum(b) {
		return nil, ErrBadChecksum
	}
	size, err := parseOctal(b[sizePos : sizePos+sizeLen])
	if err != nil || size < 0 {
		return nil, ErrBadSize
	}
	hdr := &Header{
		Name:     cstring(b[namePos : namePos+nameLen]),
		Size:     size,
		Typeflag: b[typeflagPos],
		Linkname: cstring(b[linknamePos : linknamePos+linknameLen]),
	}
	// The remaining numeric fields are not load-bearing for navigation;
	// unparsable values decode as zero.
	hdr.Mode, _ = parseOctal(b[modePos : modePos+modeLen])
	hdr.ModTime, _ = parseOctal(b[mtimePos : mtimePos+mtimeLen])
	if uid, err := parseOctal(b[uidPos : uidPos+uidLen]); err == nil {
		hdr.UID = int(uid)
	}
	if gid, err := parseOctal(b[gidPos : gidPos+gidLen]); err == nil {
		hdr.GID = int(gid)
	}
	return hdr, nil
}
