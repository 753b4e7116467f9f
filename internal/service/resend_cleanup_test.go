package service_test

import (
	"bitwise74/job-portal/internal/model"
	"bitwise74/job-portal/internal/service"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgeResendRequests(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.auth.Register(ctx, service.RegisterInput{
		Email: "ann@x.com", Password: password, FullName: "Ann", Role: model.RoleJobSeeker,
	})
	require.NoError(t, err)
	e.mailer.Next(t)

	require.NoError(t, e.auth.ResendVerification(ctx, "ann@x.com"))
	e.mailer.Next(t)

	bob := e.user(t, "bob@x.com", model.RoleJobSeeker)
	require.NoError(t, e.db.Create(&model.ResendRequest{
		UserID:     bob.UserID,
		Attempts:   1,
		LastResend: e.clock.Now(),
		Cooldown:   e.clock.Now().Add(time.Hour),
	}).Error)

	// Verified users never need their record
	n, err := service.PurgeResendRequests(ctx, e.db, e.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Ann's daily count still matters
	n, err = service.PurgeResendRequests(ctx, e.db, e.clock.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = service.PurgeResendRequests(ctx, e.db, e.clock.Now().Add(25*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var left int64
	require.NoError(t, e.db.Model(&model.ResendRequest{}).Count(&left).Error)
	assert.Zero(t, left)
}
