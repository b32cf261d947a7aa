package cable

import (
	"fmt"
	"unicode/utf8"
)

// The validators run before a single byte is written, so a create call
// either produces a complete frame or nothing at all.

// assertFixedSize checks that buf is exactly size bytes long.
func assertFixedSize(buf []byte, size int, param string) error {
	if len(buf) != size {
		return sizeErr(param, size, len(buf))
	}
	return nil
}

// assertInteger checks that n can be encoded as an unsigned varint.
// Wire integers are unsigned, so negative values are rejected.
func assertInteger(n int64, param string) error {
	if n < 0 {
		return fmt.Errorf("%w: %s is %d, want >= 0", ErrNotAnInteger, param, n)
	}
	return nil
}

// assertString checks that s is valid UTF-8.
func assertString(s string, param string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: %s", ErrNotAString, param)
	}
	return nil
}

// assertHashArray checks that every element of hashes is exactly
// HashSize bytes. Every element is checked, not just the first; the
// error names the offending index.
func assertHashArray(hashes [][]byte) error {
	for i, h := range hashes {
		if len(h) != HashSize {
			return fmt.Errorf("%w: element %d is %d bytes, want %d", ErrInvalidHashArray, i, len(h), HashSize)
		}
	}
	return nil
}
