package security

import (
	"bitwise74/job-portal/internal/model"
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long an issued token stays valid. Tokens can't be
// revoked, expiry is the only way they die.
const SessionTTL = 24 * time.Hour

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Identity is what a verified token asserts about its bearer
type Identity struct {
	UserID string
	Role   model.Role
}

type claims struct {
	UserID string     `json:"user_id"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService signs with secret. now may be nil to use the wall clock.
func NewTokenService(secret string, now func() time.Time) *TokenService {
	if now == nil {
		now = time.Now
	}

	return &TokenService{
		secret: []byte(secret),
		now:    now,
	}
}

func (s *TokenService) Issue(userID string, role model.Role) (string, error) {
	now := s.now()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	})

	return t.SignedString(s.secret)
}

// Verify returns ErrTokenExpired for a well signed token past its window and
// ErrTokenInvalid for everything else that's wrong with it.
func (s *TokenService) Verify(raw string) (*Identity, error) {
	var c claims

	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}

		return nil, ErrTokenInvalid
	}

	if c.UserID == "" || !c.Role.Valid() {
		return nil, ErrTokenInvalid
	}

	return &Identity{UserID: c.UserID, Role: c.Role}, nil
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
