package helpers

import "golang.org/x/crypto/bcrypt"

// PasswordHasher hashes and verifies passwords with bcrypt.
// Cost is the bcrypt work factor; each Hash call salts independently, so
// hashing the same password twice yields different strings.
type PasswordHasher struct {
	Cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{Cost: cost}
}

// Hash hashes the plain text password using bcrypt
func (h *PasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compares a bcrypt hash with a plain password
func (h *PasswordHasher) Verify(plain string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
