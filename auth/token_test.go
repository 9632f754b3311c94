package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/mapleleafu/spritedex/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Issue("user-1", "ash")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user-1" || claims.Username != "ash" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("expected exp and iat claims")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("lifetime = %v, want 1h", got)
	}
	if info := claims.AuthInfo(); info.UserID != "user-1" || info.Username != "ash" {
		t.Fatalf("unexpected auth info: %+v", info)
	}
}

func TestIssueRequiresUserID(t *testing.T) {
	if _, err := NewTokenManager("secret", time.Hour).Issue(" ", "ash"); err == nil {
		t.Fatal("expected error for empty user id")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewTokenManager("secret", time.Hour).WithClock(fixedClock(issuedAt))

	token, err := m.Issue("user-1", "ash")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := m.WithClock(fixedClock(issuedAt.Add(59 * time.Minute))).Verify(token); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}
	_, err = m.WithClock(fixedClock(issuedAt.Add(time.Hour + time.Second))).Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret", time.Hour).Issue("user-1", "ash")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewTokenManager("other", time.Hour).Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, err := m.Issue("user-1", "ash")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	parts := strings.Split(token, ".")
	forged, err := m.Issue("user-2", "gary")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	parts[1] = strings.Split(forged, ".")[1]

	if _, err := m.Verify(strings.Join(parts, ".")); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	claims := models.CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Username: "ash",
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := NewTokenManager("secret", time.Hour).Verify(unsigned); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	claims := models.CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Username: "ash",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewTokenManager("secret", time.Hour).Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	for _, input := range []string{"", "   ", "not-a-jwt", "a.b.c"} {
		if _, err := m.Verify(input); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Verify(%q): expected ErrInvalidToken, got %v", input, err)
		}
	}
}
