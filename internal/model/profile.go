package model

import "time"

type JobSeekerProfile struct {
	ID              uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          string      `gorm:"uniqueIndex;size:16;not null" json:"user_id"`
	Skills          StringSlice `gorm:"type:text" json:"skills"`
	ExperienceYears int         `json:"experience_years"`
	CVURL           string      `gorm:"size:500" json:"cv_url"`
	Phone           string      `gorm:"size:20" json:"phone"`
	Location        string      `gorm:"size:200" json:"location"`
	Bio             string      `gorm:"type:text" json:"bio"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (*JobSeekerProfile) OwnerRole() Role { return RoleJobSeeker }
func (*JobSeekerProfile) profile()        {}

type EmployerProfile struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             string    `gorm:"uniqueIndex;size:16;not null" json:"user_id"`
	CompanyName        string    `gorm:"size:200;not null" json:"company_name"`
	CompanyDescription string    `gorm:"type:text" json:"company_description"`
	CompanyLogoURL     string    `gorm:"size:500" json:"company_logo_url"`
	CompanyWebsite     string    `gorm:"size:500" json:"company_website"`
	Phone              string    `gorm:"size:20" json:"phone"`
	Location           string    `gorm:"size:200" json:"location"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (*EmployerProfile) OwnerRole() Role { return RoleEmployer }
func (*EmployerProfile) profile()        {}
