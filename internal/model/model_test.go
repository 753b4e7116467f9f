package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserAttachesRoleProfile(t *testing.T) {
	seeker := NewUser("u1", "a@x.com", "hash", "Ann", RoleJobSeeker, "ignored")
	require.NotNil(t, seeker.JobSeeker)
	assert.Nil(t, seeker.Employer)
	assert.Equal(t, "u1", seeker.JobSeeker.UserID)

	p, ok := seeker.Profile().(*JobSeekerProfile)
	require.True(t, ok)
	assert.Equal(t, RoleJobSeeker, p.OwnerRole())

	emp := NewUser("u2", "b@x.com", "hash", "Bob", RoleEmployer, "Acme")
	require.NotNil(t, emp.Employer)
	assert.Nil(t, emp.JobSeeker)
	assert.Equal(t, "Acme", emp.Employer.CompanyName)
	assert.Equal(t, RoleEmployer, emp.Profile().OwnerRole())
}

func TestProfileIgnoresMismatchedRole(t *testing.T) {
	u := &User{Role: RoleEmployer, JobSeeker: &JobSeekerProfile{}}
	assert.Nil(t, u.Profile())
}

func TestUserJSONHidesSecrets(t *testing.T) {
	tok := "secret-token"
	u := NewUser("u1", "a@x.com", "hash", "Ann", RoleJobSeeker, "")
	u.VerificationToken = &tok

	b, err := json.Marshal(u)
	require.NoError(t, err)

	assert.NotContains(t, string(b), "hash")
	assert.NotContains(t, string(b), "secret-token")
	assert.Contains(t, string(b), `"is_email_verified":false`)
}

func TestStringSlice(t *testing.T) {
	v, err := StringSlice{"go", "sql"}.Value()
	require.NoError(t, err)
	assert.Equal(t, "go,sql", v)

	_, err = StringSlice{"a,b"}.Value()
	assert.Error(t, err)

	var s StringSlice
	require.NoError(t, s.Scan([]byte("go,sql")))
	assert.Equal(t, StringSlice{"go", "sql"}, s)

	require.NoError(t, s.Scan(""))
	assert.Empty(t, s)

	require.NoError(t, s.Scan(nil))
	assert.Empty(t, s)

	assert.Error(t, s.Scan(42))

	b, err := json.Marshal(struct {
		Skills StringSlice `json:"skills"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"skills":[]}`, string(b))
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus("ACCEPTED")
	require.True(t, ok)
	assert.Equal(t, StatusAccepted, st)
	assert.True(t, st.IsUpdateTarget())

	st, ok = ParseStatus(" applied ")
	require.True(t, ok)
	assert.False(t, st.IsUpdateTarget())

	_, ok = ParseStatus("hired")
	assert.False(t, ok)
}

func TestJobTypeValid(t *testing.T) {
	for _, jt := range JobTypes {
		assert.True(t, jt.Valid(), jt)
	}
	assert.False(t, JobType("gig").Valid())
}

func TestJobViewCompanyName(t *testing.T) {
	j := &Job{ID: 3, Title: "Backend Engineer", EmployerID: 7, Employer: &EmployerProfile{ID: 7, CompanyName: "Acme"}}

	v := j.View()
	assert.Equal(t, "Acme", v.CompanyName)
	assert.Equal(t, uint(7), v.EmployerID)

	j.Employer = nil
	assert.Empty(t, j.View().CompanyName)
}
