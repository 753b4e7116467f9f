package db

import (
	"bitwise74/job-portal/config"
	"bitwise74/job-portal/internal/model"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func memoryDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := New(config.Database{
		Driver: "sqlite",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return gdb
}

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, "database.db?_foreign_keys=on", withForeignKeys("database.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", withForeignKeys("file:x?mode=memory"))
	assert.Equal(t, "x.db?_fk=1", withForeignKeys("x.db?_fk=1"))
}

func TestDsnPath(t *testing.T) {
	assert.Equal(t, "data/app.db", dsnPath("file:data/app.db?cache=shared"))
	assert.Equal(t, "app.db", dsnPath("app.db"))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.Database{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	gdb := memoryDB(t)

	require.NoError(t, Migrate(gdb))

	var applied []model.Migration
	require.NoError(t, gdb.Find(&applied).Error)
	require.Len(t, applied, len(steps))
	assert.Equal(t, "0001_jobs_listing_index", applied[0].Name)
}

func TestConstraints(t *testing.T) {
	gdb := memoryDB(t)

	emp := model.NewUser("employer00000001", "acme@x.com", "h", "Acme Boss", model.RoleEmployer, "Acme")
	seeker := model.NewUser("seeker0000000001", "ann@x.com", "h", "Ann", model.RoleJobSeeker, "")
	for _, u := range []*model.User{emp, seeker} {
		require.NoError(t, gdb.Omit("JobSeeker", "Employer").Create(u).Error)
		require.NoError(t, gdb.Create(u.Profile()).Error)
	}

	dup := model.NewUser("other00000000001", "acme@x.com", "h", "Copy", model.RoleJobSeeker, "")
	err := gdb.Omit("JobSeeker", "Employer").Create(dup).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	job := model.Job{EmployerID: emp.Employer.ID, Title: "Backend Engineer", Description: "d", Location: "Remote", JobType: model.JobTypeFullTime, IsActive: true}
	require.NoError(t, gdb.Omit("Employer").Create(&job).Error)

	app := model.Application{JobID: job.ID, JobSeekerID: seeker.JobSeeker.ID, Status: model.StatusApplied}
	require.NoError(t, gdb.Omit("Job", "JobSeeker").Create(&app).Error)

	again := model.Application{JobID: job.ID, JobSeekerID: seeker.JobSeeker.ID, Status: model.StatusApplied}
	err = gdb.Omit("Job", "JobSeeker").Create(&again).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	require.NoError(t, gdb.Delete(&model.Job{}, job.ID).Error)

	var left int64
	require.NoError(t, gdb.Model(&model.Application{}).Count(&left).Error)
	assert.Zero(t, left, "applications should cascade with their job")
}
