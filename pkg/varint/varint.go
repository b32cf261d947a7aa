// Package varint implements the unsigned LEB128 variable-length integer
// encoding used throughout the cable wire format: 7 value bits per byte,
// little-endian, with the high bit set on every byte except the last.
package varint

import (
	"errors"
	"fmt"
)

// MaxLen is the maximum number of bytes a single varint may occupy.
// Ten bytes cover the full 64-bit range.
const MaxLen = 10

var (
	ErrUnderrun  = errors.New("varint: read past end of buffer")
	ErrTruncated = errors.New("varint: no terminating byte")
	ErrOverflow  = errors.New("varint: value exceeds 64 bits")
)

// EncodedLen returns the number of bytes Encode will produce for n.
func EncodedLen(n uint64) int {
	size := 1
	for n >= 0x80 {
		n >>= 7
		size++
	}
	return size
}

// Encode appends the varint encoding of n to dst and returns the
// extended slice.
func Encode(dst []byte, n uint64) []byte {
	for n >= 0x80 {
		dst = append(dst, byte(n)|0x80)
		n >>= 7
	}
	return append(dst, byte(n))
}

// Decode reads a varint from buf starting at offset. It returns the
// decoded value and the number of bytes consumed.
//
// Decode scans forward one byte at a time testing the continuation bit.
// It fails with ErrUnderrun when offset is outside buf, with
// ErrTruncated when the buffer ends (or MaxLen bytes pass) before a
// byte with a clear continuation bit, and with ErrOverflow when the
// value does not fit in 64 bits.
func Decode(buf []byte, offset int) (uint64, int, error) {
	if offset < 0 || offset >= len(buf) {
		return 0, 0, fmt.Errorf("%w: offset %d, buffer length %d", ErrUnderrun, offset, len(buf))
	}

	var value uint64
	var shift uint
	for i := 0; ; i++ {
		if i == MaxLen {
			return 0, 0, fmt.Errorf("%w: continuation past %d bytes at offset %d", ErrTruncated, MaxLen, offset)
		}
		if offset+i >= len(buf) {
			return 0, 0, fmt.Errorf("%w: buffer ends after %d bytes at offset %d", ErrTruncated, i, offset)
		}

		b := buf[offset+i]
		if shift == 63 && b > 1 {
			return 0, 0, ErrOverflow
		}
		value |= uint64(b&0x7F) << shift

		if b&0x80 == 0 {
			return value, i + 1, nil
		}
		shift += 7
	}
}
