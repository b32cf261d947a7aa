package crypto

import (
	"bytes"
	"testing"
)

func TestHash(t *testing.T) {
	h1, err := Hash([]byte("cable post bytes"))
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if len(h1) != HashSize {
		t.Errorf("Hash() returned %d bytes, want %d", len(h1), HashSize)
	}

	h2, err := Hash([]byte("cable post bytes"))
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !bytes.Equal(h1, h2) {
		t.Error("Hash() is not deterministic")
	}

	h3, err := Hash([]byte("different bytes"))
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if bytes.Equal(h1, h3) {
		t.Error("Hash() collided on different inputs")
	}
}

func TestHashString(t *testing.T) {
	s, err := HashString([]byte("cable post bytes"))
	if err != nil {
		t.Fatalf("HashString() error = %v", err)
	}
	if len(s) != HashSize*2 {
		t.Errorf("HashString() returned %d hex chars, want %d", len(s), HashSize*2)
	}
}
