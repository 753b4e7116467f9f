package service_test

import (
	"bitwise74/job-portal/internal/model"
	"bitwise74/job-portal/internal/service"
	"bitwise74/job-portal/internal/testutil"
	"bitwise74/job-portal/pkg/security"
	"context"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const password = "Passw0rd!"

type env struct {
	db     *gorm.DB
	clock  *testutil.Clock
	mailer *testutil.RecordingMailer
	tokens *security.TokenService
	auth   *service.AuthService
	jobs   *service.JobService
	apps   *service.ApplicationService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.NewDB(t)
	clock := testutil.NewClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	mailer := testutil.NewRecordingMailer()
	tokens := security.NewTokenService("test-secret", clock.Now)

	return &env{
		db:     db,
		clock:  clock,
		mailer: mailer,
		tokens: tokens,
		auth:   service.NewAuthService(db, security.NewBcrypt(bcrypt.MinCost), tokens, mailer, clock.Now),
		jobs:   service.NewJobService(db),
		apps:   service.NewApplicationService(db),
	}
}

// user registers and verifies an account and returns the identity it logs in as
func (e *env) user(t *testing.T, email string, role model.Role) security.Identity {
	t.Helper()

	in := service.RegisterInput{
		Email:    email,
		Password: password,
		FullName: "Test User",
		Role:     role,
	}
	if role == model.RoleEmployer {
		in.CompanyName = "Acme"
	}

	u, err := e.auth.Register(context.Background(), in)
	require.NoError(t, err)

	require.NoError(t, e.auth.VerifyEmail(context.Background(), e.mailer.TokenFor(t, u.Email)))

	return security.Identity{UserID: u.ID, Role: role}
}

func (e *env) job(t *testing.T, owner security.Identity, title string) *model.JobView {
	t.Helper()

	j, err := e.jobs.Create(context.Background(), owner, service.JobInput{
		Title:       title,
		Description: "A long enough description for the listing",
		Location:    "Remote",
	})
	require.NoError(t, err)

	return j
}

func ptr[T any](v T) *T { return &v }

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}
