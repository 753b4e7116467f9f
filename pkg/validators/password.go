package validators

import (
	"errors"
	"unicode"
)

var (
	ErrPasswordEmpty    = errors.New("no password provided")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("password is too long")
	ErrPasswordWeak     = errors.New("password must mix uppercase, lowercase and digits")
)

// PasswordValidator enforces length and a mix of upper, lower and digits.
// 72 bytes is the most bcrypt will hash.
func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	if len([]rune(p)) < 8 {
		return ErrPasswordTooShort
	}

	if len(p) > 72 {
		return ErrPasswordTooLong
	}

	var upper, lower, digit bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	if !upper || !lower || !digit {
		return ErrPasswordWeak
	}

	return nil
}
