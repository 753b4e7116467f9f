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

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const applicationColumns = `a.id, a.job_id, j.title AS job_title, a.job_seeker_id,
	u.full_name AS seeker_name, u.email AS seeker_email, a.status, a.cover_letter,
	a.notes, a.applied_at, a.updated_at, e.user_id AS employer_user_id, s.user_id AS seeker_user_id`

type ApplicationService struct {
	db *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{db: db}
}

type ApplicationFilter struct {
	Status string `form:"status"`
	JobID  uint   `form:"job_id"`
	Pagination
}

type ApplicationList struct {
	Total        int64                   `json:"total"`
	Page         int                     `json:"page"`
	PerPage      int                     `json:"per_page"`
	Applications []model.ApplicationView `json:"applications"`
}

type ApplyInput struct {
	CoverLetter string `json:"cover_letter" validate:"max=10000"`
}

type StatusUpdate struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes" validate:"omitempty,max=10000"`
}

// applications joined with everything their view needs
func applicationQuery(db *gorm.DB) *gorm.DB {
	return db.Table("applications AS a").
		Joins("JOIN jobs AS j ON j.id = a.job_id").
		Joins("JOIN employer_profiles AS e ON e.id = j.employer_id").
		Joins("JOIN job_seeker_profiles AS s ON s.id = a.job_seeker_id").
		Joins("JOIN users AS u ON u.id = s.user_id")
}

func findApplication(db *gorm.DB, id uint) (*model.ApplicationView, error) {
	var v model.ApplicationView

	res := applicationQuery(db).
		Select(applicationColumns).
		Where("a.id = ?", id).
		Limit(1).
		Scan(&v)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to find application, %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return nil, apierr.NotFound("Application not found")
	}

	return &v, nil
}

// Apply files a job seeker's application. The unique (job, seeker) index
// decides races between duplicate submissions.
func (s *ApplicationService) Apply(ctx context.Context, actor security.Identity, jobID uint, in ApplyInput) (*model.ApplicationView, error) {
	in.CoverLetter = strings.TrimSpace(in.CoverLetter)

	if errs := validators.Struct(in); len(errs) > 0 {
		return nil, apierr.Validation(errs)
	}

	var view *model.ApplicationView

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job model.Job
		if err := tx.Where("id = ?", jobID).First(&job).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.NotFound("Job not found")
			}

			return fmt.Errorf("failed to find job, %w", err)
		}

		if !job.IsActive {
			return apierr.BadRequest("Job is not accepting applications")
		}

		seeker, err := jobSeekerOf(tx, actor.UserID)
		if err != nil {
			return err
		}

		app := model.Application{
			JobID:       job.ID,
			JobSeekerID: seeker.ID,
			Status:      model.StatusApplied,
			CoverLetter: in.CoverLetter,
		}

		if err := tx.Omit(clause.Associations).Create(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apierr.Conflict("Already applied for this job")
			}

			return fmt.Errorf("failed to create application, %w", err)
		}

		view, err = findApplication(tx, app.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// List shows employers the applications to their jobs and job seekers their
// own applications.
func (s *ApplicationService) List(ctx context.Context, actor security.Identity, f ApplicationFilter) (*ApplicationList, error) {
	p := f.Pagination.normalize()

	q := applicationQuery(s.db.WithContext(ctx))

	switch actor.Role {
	case model.RoleEmployer:
		q = q.Where("e.user_id = ?", actor.UserID)
	case model.RoleJobSeeker:
		q = q.Where("s.user_id = ?", actor.UserID)
	default:
		return nil, apierr.Forbidden("Insufficient permissions")
	}

	if f.Status != "" {
		st, ok := model.ParseStatus(f.Status)
		if !ok {
			return nil, apierr.BadRequest("Invalid status")
		}
		q = q.Where("a.status = ?", st)
	}

	if f.JobID != 0 {
		q = q.Where("a.job_id = ?", f.JobID)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count applications, %w", err)
	}

	views := []model.ApplicationView{}
	err := q.Select(applicationColumns).
		Order("a.applied_at DESC").
		Order("a.id DESC").
		Offset(p.offset()).
		Limit(p.PerPage).
		Scan(&views).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications, %w", err)
	}

	if views == nil {
		views = []model.ApplicationView{}
	}

	return &ApplicationList{
		Total:        total,
		Page:         p.Page,
		PerPage:      p.PerPage,
		Applications: views,
	}, nil
}

// Get is open to the applicant and to the employer owning the job
func (s *ApplicationService) Get(ctx context.Context, actor security.Identity, id uint) (*model.ApplicationView, error) {
	v, err := findApplication(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	if actor.UserID != v.EmployerUserID && actor.UserID != v.SeekerUserID {
		return nil, apierr.Forbidden("Not authorized to view this application")
	}

	return v, nil
}

// UpdateStatus moves an application to any non-initial status. Transitions
// aren't checked against the current status.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor security.Identity, id uint, in StatusUpdate) (*model.ApplicationView, error) {
	st, ok := model.ParseStatus(in.Status)
	if !ok || !st.IsUpdateTarget() {
		return nil, apierr.BadRequest("Invalid status. Must be one of reviewed, shortlisted, rejected, accepted")
	}

	trimPtr(in.Notes)
	if errs := validators.Struct(in); len(errs) > 0 {
		return nil, apierr.Validation(errs)
	}

	var view *model.ApplicationView

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := findApplication(tx, id)
		if err != nil {
			return err
		}

		if v.EmployerUserID != actor.UserID {
			return apierr.Forbidden("Not authorized to update this application")
		}

		updates := map[string]any{"status": st}
		if in.Notes != nil {
			updates["notes"] = *in.Notes
		}

		if err := tx.Model(&model.Application{ID: id}).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update application, %w", err)
		}

		view, err = findApplication(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}
