package auth

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("pikachu123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "pikachu123" {
		t.Fatal("hash must differ from the plain password")
	}
	if err := ComparePassword(hash, "pikachu123"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := ComparePassword(hash, "raichu123"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestComparePasswordMalformedHash(t *testing.T) {
	err := ComparePassword("not-a-hash", "pikachu123")
	if err == nil || errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected a non-mismatch error, got %v", err)
	}
}
