package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-that-is-at-least-32-chars-long"

func newManager(ttl time.Duration) *JWTManager {
	return NewJWTManager(testSecret, "stride-test", ttl)
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := newManager(time.Hour)

	token, err := m.GenerateAccessToken("owner")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	subject, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if subject != "owner" {
		t.Errorf("subject = %q, want owner", subject)
	}
}

func TestJWTManager_RejectsEmptyToken(t *testing.T) {
	m := newManager(time.Hour)
	if _, err := m.ValidateAccessToken(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	m := newManager(-time.Minute)

	token, err := m.GenerateAccessToken("owner")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	m := newManager(time.Hour)
	other := NewJWTManager("another-secret-that-is-at-least-32-char", "stride-test", time.Hour)

	token, err := m.GenerateAccessToken("owner")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestJWTManager_RejectsWrongIssuer(t *testing.T) {
	m := newManager(time.Hour)
	other := NewJWTManager(testSecret, "someone-else", time.Hour)

	token, err := m.GenerateAccessToken("owner")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for wrong issuer")
	}
}

func TestJWTManager_RejectsUnsignedAlg(t *testing.T) {
	m := newManager(time.Hour)

	// Craft a token signed with "none".
	claims := jwt.RegisteredClaims{
		Subject: "owner",
		Issuer:  "stride-test",
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for alg=none token")
	}
}

func TestJWTManager_RejectsTamperedToken(t *testing.T) {
	m := newManager(time.Hour)

	token, err := m.GenerateAccessToken("owner")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	parts := strings.Split(token, ".")
	parts[1] = parts[1][:len(parts[1])-2] + "xx"
	if _, err := m.ValidateAccessToken(strings.Join(parts, ".")); err == nil {
		t.Fatal("expected error for tampered payload")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	if !VerifyPassword(string(hash), "hunter2") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(string(hash), "hunter3") {
		t.Error("wrong password accepted")
	}
	if VerifyPassword("not-a-hash", "hunter2") {
		t.Error("garbage hash accepted")
	}
}
