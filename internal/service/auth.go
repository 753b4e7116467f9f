// Package service holds the business rules behind every endpoint. Services
// return *apierr.Error for failures the client may see and wrapped errors for
// everything else.
package service

import (
	"bitwise74/job-portal/internal/model"
	"bitwise74/job-portal/pkg/apierr"
	"bitwise74/job-portal/pkg/security"
	"bitwise74/job-portal/pkg/validators"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	idCharset      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	idLength       = 16
	resendCooldown = time.Minute
)

type AuthService struct {
	db     *gorm.DB
	hasher security.PasswordHasher
	tokens *security.TokenService
	mailer Mailer
	now    func() time.Time
}

func NewAuthService(db *gorm.DB, hasher security.PasswordHasher, tokens *security.TokenService, mailer Mailer, now func() time.Time) *AuthService {
	if now == nil {
		now = time.Now
	}

	return &AuthService{
		db:     db,
		hasher: hasher,
		tokens: tokens,
		mailer: mailer,
		now:    now,
	}
}

type RegisterInput struct {
	Email       string     `json:"email" validate:"required,emailaddr"`
	Password    string     `json:"password" validate:"required,password"`
	FullName    string     `json:"full_name" validate:"required,min=2,max=120"`
	Role        model.Role `json:"role"`
	CompanyName string     `json:"company_name" validate:"max=200"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// Register creates the user and its role profile in one transaction. The
// verification mail goes out after commit and its failure is only logged.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.Role = model.Role(strings.ToLower(strings.TrimSpace(string(in.Role))))

	if !in.Role.Valid() {
		return nil, apierr.BadRequest("Invalid role. Must be job_seeker or employer")
	}

	errs := validators.Struct(in)
	if in.Role == model.RoleEmployer && utf8.RuneCountInString(in.CompanyName) < 2 {
		if errs == nil {
			errs = map[string]string{}
		}
		errs["company_name"] = "Company name must be at least 2 characters"
	}
	if len(errs) > 0 {
		return nil, apierr.Validation(errs)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password, %w", err)
	}

	userID, err := gonanoid.Generate(idCharset, idLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID, %w", err)
	}

	token, err := security.MakeVerificationToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token, %w", err)
	}

	user := model.NewUser(userID, in.Email, hash, in.FullName, in.Role, in.CompanyName)
	user.VerificationToken = &token

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}

		return tx.Create(user.Profile()).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict("Email already registered")
		}

		return nil, fmt.Errorf("failed to create user, %w", err)
	}

	go s.sendVerification(user.ID, user.Email, token)

	return user, nil
}

// Login returns a session token for verified users with matching credentials
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, *model.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return "", nil, apierr.BadRequest("Email and password are required")
	}

	var user model.User

	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apierr.Unauthorized("Invalid email or password")
		}

		return "", nil, fmt.Errorf("failed to look up user, %w", err)
	}

	ok, err := s.hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		return "", nil, fmt.Errorf("failed to verify password, %w", err)
	}

	if !ok {
		return "", nil, apierr.Unauthorized("Invalid email or password")
	}

	if !user.EmailVerified {
		return "", nil, apierr.Unauthorized("Please verify your email first")
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue session token, %w", err)
	}

	return token, &user, nil
}

// VerifyEmail consumes a verification token. The conditional update makes
// the token single use even when two requests race for it.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apierr.BadRequest("Verification token is required")
	}

	res := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("verification_token = ?", token).
		Updates(map[string]any{
			"email_verified":     true,
			"verification_token": nil,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to verify email, %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return apierr.BadRequest("Invalid verification token")
	}

	return nil
}

// ResendVerification mails the pending token again. It stays silent about
// unknown, verified or cooling down accounts so callers can't enumerate emails.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if err := validators.EmailValidator(email); err != nil {
		return apierr.Validation(map[string]string{"email": "Invalid email format"})
	}

	var user model.User

	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		return fmt.Errorf("failed to look up user, %w", err)
	}

	if user.EmailVerified || user.VerificationToken == nil {
		return nil
	}

	now := s.now()
	send := false

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rr model.ResendRequest

		err := tx.Where("user_id = ?", user.ID).First(&rr).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			rr = model.ResendRequest{UserID: user.ID}
		case err != nil:
			return err
		}

		if now.Before(rr.Cooldown) {
			return nil
		}

		if now.Sub(rr.LastResend) > 24*time.Hour {
			rr.Attempts = 0
		}

		rr.Attempts++
		rr.LastResend = now
		rr.Cooldown = now.Add(resendCooldown)
		if rr.Attempts >= model.MaxResendsPerDay {
			rr.Cooldown = now.Add(24 * time.Hour)
		}

		send = true
		return tx.Save(&rr).Error
	})
	if err != nil {
		// Another request created the row first, it sends the mail
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}

		return fmt.Errorf("failed to record resend request, %w", err)
	}

	if send {
		go s.sendVerification(user.ID, user.Email, *user.VerificationToken)
	}

	return nil
}

func (s *AuthService) sendVerification(userID, email, token string) {
	if err := s.mailer.SendVerification(email, token); err != nil {
		zap.L().Warn("Failed to send verification email", zap.Error(err), zap.String("userID", userID))
	}
}
