package model

import (
	"strings"
	"time"
)

type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "applied"
	StatusReviewed    ApplicationStatus = "reviewed"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusAccepted    ApplicationStatus = "accepted"
)

// ParseStatus accepts any known status name regardless of case
func ParseStatus(s string) (ApplicationStatus, bool) {
	st := ApplicationStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusApplied, StatusReviewed, StatusShortlisted, StatusRejected, StatusAccepted:
		return st, true
	}

	return "", false
}

// IsUpdateTarget reports whether an employer may move an application into st.
// Transitions are flat, any non-initial status is reachable from any other.
func (st ApplicationStatus) IsUpdateTarget() bool {
	switch st {
	case StatusReviewed, StatusShortlisted, StatusRejected, StatusAccepted:
		return true
	}

	return false
}

type Application struct {
	ID          uint              `gorm:"primaryKey;autoIncrement"`
	JobID       uint              `gorm:"not null;uniqueIndex:idx_application_job_seeker,priority:1"`
	Job         *Job              `gorm:"constraint:OnDelete:CASCADE"`
	JobSeekerID uint              `gorm:"not null;index;uniqueIndex:idx_application_job_seeker,priority:2"`
	JobSeeker   *JobSeekerProfile `gorm:"constraint:OnDelete:CASCADE"`
	Status      ApplicationStatus `gorm:"size:20;not null;index"`
	CoverLetter string            `gorm:"type:text"`
	Notes       string            `gorm:"type:text"`
	AppliedAt   time.Time         `gorm:"autoCreateTime"`
	UpdatedAt   time.Time
}
