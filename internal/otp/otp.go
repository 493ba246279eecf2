// Package otp issues and verifies short-lived email verification codes.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// TTL is how long an issued code stays valid.
const TTL = 10 * time.Minute

const codeDigits = 6

// Clock abstracts time so expiry can be tested without sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

type entry struct {
	code      string
	expiresAt time.Time
}

// Store keeps issued codes in memory, keyed by email address. Issuing a new
// code for an address replaces any outstanding one.
type Store struct {
	mu    sync.Mutex
	clock Clock
	codes map[string]entry
}

// NewStore creates a Store using the given clock.
func NewStore(clock Clock) *Store {
	return &Store{
		clock: clock,
		codes: make(map[string]entry),
	}
}

// Issue generates a fresh 6-digit code for the address and returns it.
func (s *Store) Issue(email string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = entry{code: code, expiresAt: s.clock.Now().Add(TTL)}
	return code, nil
}

// Verify checks a code for the address. A correct, unexpired code is
// consumed; a wrong or expired one leaves nothing usable behind.
func (s *Store) Verify(email, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.codes[email]
	if !ok {
		return false
	}
	if s.clock.Now().After(stored.expiresAt) {
		delete(s.codes, email)
		return false
	}
	if stored.code != code {
		return false
	}

	delete(s.codes, email)
	return true
}

func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n), nil
}
