package model

import "time"

type JobType string

const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
	JobTypeFreelance  JobType = "freelance"
	JobTypeInternship JobType = "internship"
)

var JobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeFreelance, JobTypeInternship}

func (t JobType) Valid() bool {
	for _, jt := range JobTypes {
		if t == jt {
			return true
		}
	}

	return false
}

type Job struct {
	ID           uint             `gorm:"primaryKey;autoIncrement"`
	EmployerID   uint             `gorm:"index;not null"`
	Employer     *EmployerProfile `gorm:"constraint:OnDelete:CASCADE"`
	Title        string           `gorm:"size:200;not null"`
	Description  string           `gorm:"type:text;not null"`
	Requirements string           `gorm:"type:text"`
	SalaryMin    *float64
	SalaryMax    *float64
	Location     string  `gorm:"size:200;not null"`
	JobType      JobType `gorm:"size:20;not null"`
	IsActive     bool    `gorm:"index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
