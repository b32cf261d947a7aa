// Package crypto provides the signing and hashing primitives consumed by
// the cable post codec: detached Ed25519 signatures written into a
// reserved region of the message buffer, and BLAKE2b-256 content hashes.
package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
)

// Key and signature sizes (Ed25519).
const (
	PublicKeySize = ed25519.PublicKeySize
	SecretKeySize = ed25519.PrivateKeySize
	SignatureSize = ed25519.SignatureSize
)

var (
	ErrInvalidKey  = errors.New("crypto: invalid key")
	ErrShortBuffer = errors.New("crypto: buffer too short for signature")
)

// GenerateKeypair generates a new Ed25519 keypair. The secret key embeds
// the public key in its second half, as Ed25519 secret keys do.
func GenerateKeypair() (publicKey, secretKey []byte, err error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	return pub, priv, nil
}

// Sign computes a detached signature over signedPayload and writes it
// into the first SignatureSize bytes of signaturePayload. The two slices
// are views into the same message buffer: signaturePayload starts at the
// reserved signature region, signedPayload starts immediately after it.
func Sign(signaturePayload, signedPayload, secretKey []byte) error {
	if len(secretKey) != SecretKeySize {
		return fmt.Errorf("%w: secret key is %d bytes, want %d", ErrInvalidKey, len(secretKey), SecretKeySize)
	}
	if len(signaturePayload) < SignatureSize {
		return fmt.Errorf("%w: %d bytes, want at least %d", ErrShortBuffer, len(signaturePayload), SignatureSize)
	}

	sig := ed25519.Sign(ed25519.PrivateKey(secretKey), signedPayload)
	copy(signaturePayload[:SignatureSize], sig)

	return nil
}

// Verify reports whether the signature at the head of signaturePayload is
// a valid signature of signedPayload under publicKey. Malformed keys or a
// too-short signature region verify as false rather than erroring; a
// decoded message with a bad key is just an unverifiable message.
func Verify(signaturePayload, signedPayload, publicKey []byte) bool {
	if len(publicKey) != PublicKeySize {
		return false
	}
	if len(signaturePayload) < SignatureSize {
		return false
	}

	return ed25519.Verify(ed25519.PublicKey(publicKey), signedPayload, signaturePayload[:SignatureSize])
}
