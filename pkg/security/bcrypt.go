package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const BcryptDefaultCost = 12

type BcryptHash struct {
	Cost int
}

func NewBcrypt(cost int) *BcryptHash {
	return &BcryptHash{Cost: cost}
}

func (b *BcryptHash) Hash(p string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(p), b.Cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

func (b *BcryptHash) Verify(p, e string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(e), []byte(p))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
