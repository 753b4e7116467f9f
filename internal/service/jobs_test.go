package service_test

import (
	"bitwise74/job-portal/internal/model"
	"bitwise74/job-portal/internal/service"
	"bitwise74/job-portal/pkg/apierr"
	"bitwise74/job-portal/pkg/security"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateJob(t *testing.T) {
	e := newEnv(t)
	emp := e.user(t, "acme@x.com", model.RoleEmployer)

	j, err := e.jobs.Create(context.Background(), emp, service.JobInput{
		Title:       "  Backend Engineer ",
		Description: "Build and run the job portal backend",
		Location:    "Berlin",
		SalaryMin:   ptr(50000.0),
		SalaryMax:   ptr(70000.0),
	})
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", j.Title)
	assert.Equal(t, model.JobTypeFullTime, j.JobType)
	assert.Equal(t, "Acme", j.CompanyName)
	assert.True(t, j.IsActive)
	assert.NotZero(t, j.EmployerID)
}

func TestCreateJobValidation(t *testing.T) {
	e := newEnv(t)
	emp := e.user(t, "acme@x.com", model.RoleEmployer)

	_, err := e.jobs.Create(context.Background(), emp, service.JobInput{
		Title:       "Dev",
		Description: "too short",
		JobType:     "gig",
		SalaryMin:   ptr(90000.0),
		SalaryMax:   ptr(10000.0),
	})

	ae := asAPIErr(t, err)
	assert.Equal(t, []string{"description", "job_type", "location", "salary", "title"}, sortedKeys(ae.Fields))
	assert.Equal(t, "Minimum salary cannot exceed maximum salary", ae.Fields["salary"])
}

func TestCreateJobNeedsEmployerProfile(t *testing.T) {
	e := newEnv(t)
	seeker := e.user(t, "ann@x.com", model.RoleJobSeeker)

	_, err := e.jobs.Create(context.Background(), seeker, service.JobInput{
		Title:       "Backend Engineer",
		Description: "Build and run the job portal backend",
		Location:    "Berlin",
	})
	assert.Equal(t, apierr.KindNotFound, asAPIErr(t, err).Kind)
}

func TestListJobs(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	emp := e.user(t, "acme@x.com", model.RoleEmployer)

	mk := func(title, location string, jt model.JobType, lo, hi float64) *model.JobView {
		j, err := e.jobs.Create(ctx, emp, service.JobInput{
			Title:       title,
			Description: "A long enough description for the listing",
			Location:    location,
			JobType:     jt,
			SalaryMin:   ptr(lo),
			SalaryMax:   ptr(hi),
		})
		require.NoError(t, err)
		return j
	}

	backend := mk("Backend Engineer", "Berlin", model.JobTypeFullTime, 60000, 80000)
	mk("Frontend Engineer", "Remote", model.JobTypeContract, 40000, 50000)
	closed := mk("Backend Intern", "Berlin", model.JobTypeInternship, 1000, 2000)

	_, err := e.jobs.Update(ctx, emp, closed.ID, service.JobPatch{IsActive: ptr(false)})
	require.NoError(t, err)

	list, err := e.jobs.List(ctx, service.JobFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 10, list.PerPage)
	require.Len(t, list.Jobs, 2)
	assert.Equal(t, "Frontend Engineer", list.Jobs[0].Title, "newest first")

	list, err = e.jobs.List(ctx, service.JobFilter{Title: "backend"})
	require.NoError(t, err)
	require.Len(t, list.Jobs, 1)
	assert.Equal(t, backend.ID, list.Jobs[0].ID)

	list, err = e.jobs.List(ctx, service.JobFilter{Location: "REMOTE"})
	require.NoError(t, err)
	assert.Len(t, list.Jobs, 1)

	list, err = e.jobs.List(ctx, service.JobFilter{SalaryMin: ptr(55000.0)})
	require.NoError(t, err)
	assert.Len(t, list.Jobs, 1)

	list, err = e.jobs.List(ctx, service.JobFilter{SalaryMax: ptr(55000.0)})
	require.NoError(t, err)
	assert.Len(t, list.Jobs, 1)

	list, err = e.jobs.List(ctx, service.JobFilter{JobType: "CONTRACT"})
	require.NoError(t, err)
	assert.Len(t, list.Jobs, 1)

	list, err = e.jobs.List(ctx, service.JobFilter{Pagination: service.Pagination{Page: 2, PerPage: 1}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	require.Len(t, list.Jobs, 1)
	assert.Equal(t, backend.ID, list.Jobs[0].ID)

	list, err = e.jobs.List(ctx, service.JobFilter{Pagination: service.Pagination{Page: 9}})
	require.NoError(t, err)
	assert.NotNil(t, list.Jobs)
	assert.Empty(t, list.Jobs)

	_, err = e.jobs.List(ctx, service.JobFilter{JobType: "gig"})
	assert.Equal(t, "Invalid job type", asAPIErr(t, err).Message)
}

func TestPerPageIsCapped(t *testing.T) {
	e := newEnv(t)

	list, err := e.jobs.List(context.Background(), service.JobFilter{Pagination: service.Pagination{PerPage: 1000}})
	require.NoError(t, err)
	assert.Equal(t, 100, list.PerPage)
}

func TestGetJob(t *testing.T) {
	e := newEnv(t)
	emp := e.user(t, "acme@x.com", model.RoleEmployer)
	j := e.job(t, emp, "Backend Engineer")

	got, err := e.jobs.Get(context.Background(), j.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.CompanyName)

	_, err = e.jobs.Get(context.Background(), j.ID+100)
	assert.Equal(t, "Job not found", asAPIErr(t, err).Message)
}

func TestOnlyOwnerMayChangeJob(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.user(t, "acme@x.com", model.RoleEmployer)
	rival := e.user(t, "rival@x.com", model.RoleEmployer)
	seeker := e.user(t, "ann@x.com", model.RoleJobSeeker)
	j := e.job(t, owner, "Backend Engineer")

	for name, other := range map[string]security.Identity{"rival employer": rival, "job seeker": seeker} {
		t.Run(name, func(t *testing.T) {
			_, err := e.jobs.Update(ctx, other, j.ID, service.JobPatch{Title: ptr("Hijacked title")})
			ae := asAPIErr(t, err)
			assert.Equal(t, apierr.KindForbidden, ae.Kind)
			assert.Equal(t, "Not authorized to update this job", ae.Message)

			err = e.jobs.Delete(ctx, other, j.ID)
			ae = asAPIErr(t, err)
			assert.Equal(t, apierr.KindForbidden, ae.Kind)
			assert.Equal(t, "Not authorized to delete this job", ae.Message)
		})
	}

	got, err := e.jobs.Get(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", got.Title)

	_, err = e.jobs.Update(ctx, owner, j.ID+100, service.JobPatch{})
	assert.Equal(t, apierr.KindNotFound, asAPIErr(t, err).Kind)
}

func TestUpdateJob(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.user(t, "acme@x.com", model.RoleEmployer)
	j, err := e.jobs.Create(ctx, owner, service.JobInput{
		Title:       "Backend Engineer",
		Description: "Build and run the job portal backend",
		Location:    "Berlin",
		SalaryMin:   ptr(50000.0),
		SalaryMax:   ptr(70000.0),
	})
	require.NoError(t, err)

	updated, err := e.jobs.Update(ctx, owner, j.ID, service.JobPatch{
		Title:    ptr("Senior Backend Engineer"),
		JobType:  ptr(model.JobType("Contract")),
		IsActive: ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend Engineer", updated.Title)
	assert.Equal(t, model.JobTypeContract, updated.JobType)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Berlin", updated.Location, "absent fields stay untouched")

	// The new minimum is checked against the stored maximum
	_, err = e.jobs.Update(ctx, owner, j.ID, service.JobPatch{SalaryMin: service.Some(90000.0)})
	ae := asAPIErr(t, err)
	assert.Contains(t, ae.Fields, "salary")

	_, err = e.jobs.Update(ctx, owner, j.ID, service.JobPatch{Title: ptr("Dev")})
	assert.Contains(t, asAPIErr(t, err).Fields, "title")

	_, err = e.jobs.Update(ctx, owner, j.ID, service.JobPatch{SalaryMax: service.Some(-1.0)})
	ae = asAPIErr(t, err)
	assert.Equal(t, "Maximum salary must be a positive number", ae.Fields["salary_max"])
}

func TestUpdateJobClearsSalary(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.user(t, "acme@x.com", model.RoleEmployer)
	j, err := e.jobs.Create(ctx, owner, service.JobInput{
		Title:       "Backend Engineer",
		Description: "Build and run the job portal backend",
		Location:    "Berlin",
		SalaryMin:   ptr(50000.0),
		SalaryMax:   ptr(70000.0),
	})
	require.NoError(t, err)

	updated, err := e.jobs.Update(ctx, owner, j.ID, service.JobPatch{SalaryMax: service.Null[float64]()})
	require.NoError(t, err)
	assert.Nil(t, updated.SalaryMax)
	require.NotNil(t, updated.SalaryMin)
	assert.Equal(t, 50000.0, *updated.SalaryMin)

	// Without a maximum any minimum goes
	updated, err = e.jobs.Update(ctx, owner, j.ID, service.JobPatch{SalaryMin: service.Some(90000.0)})
	require.NoError(t, err)
	assert.Equal(t, 90000.0, *updated.SalaryMin)

	var stored model.Job
	require.NoError(t, e.db.First(&stored, j.ID).Error)
	assert.Nil(t, stored.SalaryMax)
}

func TestJobPatchDecoding(t *testing.T) {
	tests := []struct {
		name string
		body string
		set  bool
		want *float64
	}{
		{"absent", `{"title":"Backend Engineer"}`, false, nil},
		{"null", `{"salary_min":null}`, true, nil},
		{"value", `{"salary_min":42000}`, true, ptr(42000.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p service.JobPatch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			assert.Equal(t, tt.set, p.SalaryMin.Set)
			assert.Equal(t, tt.want, p.SalaryMin.Value)
			assert.False(t, p.SalaryMax.Set)
		})
	}

	var p service.JobPatch
	assert.Error(t, json.Unmarshal([]byte(`{"salary_min":"lots"}`), &p))
}

func TestDeleteJobRemovesApplications(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.user(t, "acme@x.com", model.RoleEmployer)
	seeker := e.user(t, "ann@x.com", model.RoleJobSeeker)
	j := e.job(t, owner, "Backend Engineer")

	_, err := e.apps.Apply(ctx, seeker, j.ID, service.ApplyInput{})
	require.NoError(t, err)

	require.NoError(t, e.jobs.Delete(ctx, owner, j.ID))

	_, err = e.jobs.Get(ctx, j.ID)
	assert.Equal(t, apierr.KindNotFound, asAPIErr(t, err).Kind)

	var n int64
	require.NoError(t, e.db.Model(&model.Application{}).Count(&n).Error)
	assert.Zero(t, n)
}
