package services

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 12

// PasswordHasher hashes passwords one way and verifies candidates against a hash
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// BcryptHasher is a salted PasswordHasher
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the production cost
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcryptCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
