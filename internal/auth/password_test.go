package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_NeverPlaintext(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("hash equals the plaintext password")
	}
	if hash == "" {
		t.Fatal("hash is empty")
	}
}

func TestCheckPasswordHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	if !h.CheckPasswordHash("secret1", hash) {
		t.Fatal("correct password did not verify")
	}
	if h.CheckPasswordHash("secret2", hash) {
		t.Fatal("wrong password verified")
	}
}

func TestNewHasher_CostFallback(t *testing.T) {
	h := NewHasher(99)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected fallback to default cost, got %d", h.cost)
	}

	h = NewHasher(12)
	if h.cost != 12 {
		t.Fatalf("expected cost 12, got %d", h.cost)
	}
}
