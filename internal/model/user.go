// Package model defines database models
package model

import "time"

type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleEmployer  Role = "employer"
)

func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleEmployer
}

type User struct {
	ID                string    `gorm:"primaryKey;size:16" json:"id"`
	Email             string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash      string    `gorm:"not null" json:"-"`
	FullName          string    `gorm:"size:120;not null" json:"full_name"`
	Role              Role      `gorm:"size:20;not null" json:"role"`
	EmailVerified     bool      `gorm:"not null" json:"is_email_verified"`
	VerificationToken *string   `gorm:"uniqueIndex;size:64" json:"-"` // NULL once used
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	JobSeeker *JobSeekerProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Employer  *EmployerProfile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// Profile is implemented only by the two role profiles
type Profile interface {
	OwnerRole() Role
	profile()
}

// NewUser returns a user carrying exactly the profile its role calls for.
// companyName is ignored for job seekers.
func NewUser(id, email, passwordHash, fullName string, role Role, companyName string) *User {
	u := &User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Role:         role,
	}

	switch role {
	case RoleJobSeeker:
		u.JobSeeker = &JobSeekerProfile{UserID: id}
	case RoleEmployer:
		u.Employer = &EmployerProfile{UserID: id, CompanyName: companyName}
	}

	return u
}

// Profile returns the profile matching the user's role, nil if it wasn't loaded
func (u *User) Profile() Profile {
	switch u.Role {
	case RoleJobSeeker:
		if u.JobSeeker != nil {
			return u.JobSeeker
		}
	case RoleEmployer:
		if u.Employer != nil {
			return u.Employer
		}
	}

	return nil
}
