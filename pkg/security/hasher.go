// Package security contains everything related to the security of user data
package security

import "fmt"

// PasswordHasher turns passwords into self describing encoded hashes
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// NewHasher picks the algorithm by its config name
func NewHasher(name string) (PasswordHasher, error) {
	switch name {
	case "argon2id", "":
		return NewArgon(), nil
	case "bcrypt":
		return NewBcrypt(BcryptDefaultCost), nil
	default:
		return nil, fmt.Errorf("unknown password hash algorithm %q", name)
	}
}
