// Package password hashes account passwords and verifies login attempts
// against the stored hash. Only the hash is ever persisted.
package password

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt hashes and verifies passwords with bcrypt.
type Bcrypt struct {
	cost  int
	dummy []byte
}

// NewBcrypt returns a bcrypt hasher using cost, falling back to
// bcrypt.DefaultCost when cost is out of range.
func NewBcrypt(cost int) (*Bcrypt, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, err
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(buf[:])), cost)
	if err != nil {
		return nil, err
	}

	return &Bcrypt{cost: cost, dummy: dummy}, nil
}

// Hash returns the bcrypt hash of plaintext.
func (b *Bcrypt) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hashed.
func (b *Bcrypt) Verify(hashed, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}

// VerifyDummy burns the same work as Verify against a hash that matches
// nothing. Callers use it when there is no stored hash to compare.
func (b *Bcrypt) VerifyDummy(plaintext string) {
	_ = bcrypt.CompareHashAndPassword(b.dummy, []byte(plaintext))
}
