package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndVerify(t *testing.T) {
	hasher, err := NewBcrypt(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("new bcrypt: %v", err)
	}

	hashed, err := hasher.Hash("password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hashed == "password" || strings.Contains(hashed, "password") {
		t.Fatalf("hash leaks plaintext: %q", hashed)
	}
	if !hasher.Verify(hashed, "password") {
		t.Fatalf("expected matching password to verify")
	}
	if hasher.Verify(hashed, "Password") {
		t.Fatalf("expected different password to fail")
	}
	if hasher.Verify("not-a-hash", "password") {
		t.Fatalf("expected malformed hash to fail")
	}

	hasher.VerifyDummy("anything")
}

func TestNewBcryptClampsCost(t *testing.T) {
	hasher, err := NewBcrypt(bcrypt.MaxCost + 1)
	if err != nil {
		t.Fatalf("new bcrypt: %v", err)
	}
	if hasher.cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", hasher.cost)
	}
}
