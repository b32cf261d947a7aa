package cable

import (
	"errors"
	"fmt"
)

var (
	// ErrSizeMismatch reports a fixed-size field with the wrong length.
	ErrSizeMismatch = errors.New("cable: wrong size for fixed-size field")

	// ErrNotAnInteger reports a negative value for an unsigned wire integer.
	ErrNotAnInteger = errors.New("cable: integer field out of range")

	// ErrNotAString reports a string field that is not valid UTF-8.
	ErrNotAString = errors.New("cable: string field is not valid UTF-8")

	// ErrInvalidHashArray reports a hash array containing an element of
	// the wrong size.
	ErrInvalidHashArray = errors.New("cable: invalid hash array")

	// ErrFrameLengthMismatch reports a frame whose declared length
	// disagrees with the bytes actually present or consumed.
	ErrFrameLengthMismatch = errors.New("cable: frame length mismatch")

	// ErrTypeMismatch reports a decoded type tag that does not match the
	// parser invoked.
	ErrTypeMismatch = errors.New("cable: message type mismatch")

	// ErrInvalidSignature reports a post whose signature does not verify
	// under its embedded public key.
	ErrInvalidSignature = errors.New("cable: invalid post signature")

	// ErrSignatureSelfCheck reports a freshly created post that failed
	// its own verification, which means the keypair is mismatched or the
	// signing primitive misbehaved.
	ErrSignatureSelfCheck = errors.New("cable: signature self-check failed")
)

func sizeErr(param string, want, got int) error {
	return fmt.Errorf("%w: %s is %d bytes, want %d", ErrSizeMismatch, param, got, want)
}

func typeErr(want, got uint64) error {
	return fmt.Errorf("%w: got type %d, want %d", ErrTypeMismatch, got, want)
}
