package security

import gonanoid "github.com/matoous/go-nanoid/v2"

// 43 symbols from the 64 character URL-safe alphabet carry 258 bits
const verificationTokenSize = 43

// MakeVerificationToken returns a random URL-safe string used once to prove
// control of an email address.
func MakeVerificationToken() (string, error) {
	return gonanoid.New(verificationTokenSize)
}
