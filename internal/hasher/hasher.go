// Package hasher wraps bcrypt behind the small surface the auth service
// needs. bcrypt salts every digest, so two hashes of the same password
// differ but both verify; comparison is constant-time.
package hasher

import (
	"golang.org/x/crypto/bcrypt"
)

type Hasher struct {
	cost int
}

// New returns a Hasher with the given bcrypt cost; cost <= 0 means
// bcrypt.DefaultCost.
func New(cost int) *Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
