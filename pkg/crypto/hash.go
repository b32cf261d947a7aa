package crypto

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// HashSize is the size of a content hash in bytes.
const HashSize = 32

// Hash generates the BLAKE2b-256 hash of data. Posts are identified by
// the hash of their serialized bytes; the link field of a post is the
// hash of the author's previous post.
func Hash(data []byte) ([]byte, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}

	h.Write(data)
	return h.Sum(nil), nil
}

// HashString generates a BLAKE2b-256 hash and returns it hex encoded.
func HashString(data []byte) (string, error) {
	h, err := Hash(data)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h), nil
}
