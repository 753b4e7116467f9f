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

type JobService struct {
	db *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{db: db}
}

type JobFilter struct {
	Title     string   `form:"title"`
	Location  string   `form:"location"`
	SalaryMin *float64 `form:"salary_min"`
	SalaryMax *float64 `form:"salary_max"`
	JobType   string   `form:"job_type"`
	Pagination
}

type JobList struct {
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
	Jobs    []model.JobView `json:"jobs"`
}

type JobInput struct {
	Title        string        `json:"title" validate:"required,min=5,max=200"`
	Description  string        `json:"description" validate:"required,min=20,max=20000"`
	Requirements string        `json:"requirements" validate:"max=20000"`
	SalaryMin    *float64      `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax    *float64      `json:"salary_max" validate:"omitempty,gte=0"`
	Location     string        `json:"location" validate:"required,max=200"`
	JobType      model.JobType `json:"job_type" validate:"omitempty,jobtype"`
}

// JobPatch only touches the fields that are present. A null salary clears
// it.
type JobPatch struct {
	Title        *string           `json:"title" validate:"omitempty,min=5,max=200"`
	Description  *string           `json:"description" validate:"omitempty,min=20,max=20000"`
	Requirements *string           `json:"requirements" validate:"omitempty,max=20000"`
	SalaryMin    Nullable[float64] `json:"salary_min"`
	SalaryMax    Nullable[float64] `json:"salary_max"`
	Location     *string           `json:"location" validate:"omitempty,min=1,max=200"`
	JobType      *model.JobType    `json:"job_type" validate:"omitempty,jobtype"`
	IsActive     *bool             `json:"is_active"`
}

func (p JobPatch) validate() map[string]string {
	errs := validators.Struct(p)

	salaries := validators.Struct(struct {
		SalaryMin *float64 `json:"salary_min" validate:"omitempty,gte=0"`
		SalaryMax *float64 `json:"salary_max" validate:"omitempty,gte=0"`
	}{p.SalaryMin.Value, p.SalaryMax.Value})
	if len(salaries) == 0 {
		return errs
	}

	if errs == nil {
		errs = map[string]string{}
	}
	for k, v := range salaries {
		errs[k] = v
	}

	return errs
}

func checkSalary(errs map[string]string, lo, hi *float64) map[string]string {
	if lo == nil || hi == nil || *lo <= *hi {
		return errs
	}

	if errs == nil {
		errs = map[string]string{}
	}
	errs["salary"] = "Minimum salary cannot exceed maximum salary"

	return errs
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

// List returns active jobs, newest first
func (s *JobService) List(ctx context.Context, f JobFilter) (*JobList, error) {
	p := f.Pagination.normalize()

	q := s.db.WithContext(ctx).
		Model(&model.Job{}).
		Where("jobs.is_active = ?", true)

	if strings.TrimSpace(f.Title) != "" {
		q = q.Where("LOWER(jobs.title) LIKE ?", likePattern(f.Title))
	}
	if strings.TrimSpace(f.Location) != "" {
		q = q.Where("LOWER(jobs.location) LIKE ?", likePattern(f.Location))
	}
	if f.SalaryMin != nil {
		q = q.Where("jobs.salary_min >= ?", *f.SalaryMin)
	}
	if f.SalaryMax != nil {
		q = q.Where("jobs.salary_max <= ?", *f.SalaryMax)
	}
	if f.JobType != "" {
		jt := model.JobType(strings.ToLower(f.JobType))
		if !jt.Valid() {
			return nil, apierr.BadRequest("Invalid job type")
		}
		q = q.Where("jobs.job_type = ?", jt)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count jobs, %w", err)
	}

	var jobs []model.Job
	err := q.Preload("Employer").
		Order("jobs.created_at DESC").
		Order("jobs.id DESC").
		Offset(p.offset()).
		Limit(p.PerPage).
		Find(&jobs).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs, %w", err)
	}

	views := make([]model.JobView, 0, len(jobs))
	for i := range jobs {
		views = append(views, jobs[i].View())
	}

	return &JobList{
		Total:   total,
		Page:    p.Page,
		PerPage: p.PerPage,
		Jobs:    views,
	}, nil
}

func (s *JobService) Get(ctx context.Context, id uint) (*model.JobView, error) {
	job, err := findJob(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	v := job.View()
	return &v, nil
}

func (s *JobService) Create(ctx context.Context, actor security.Identity, in JobInput) (*model.JobView, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Requirements = strings.TrimSpace(in.Requirements)
	in.Location = strings.TrimSpace(in.Location)
	in.JobType = model.JobType(strings.ToLower(string(in.JobType)))

	errs := checkSalary(validators.Struct(in), in.SalaryMin, in.SalaryMax)
	if len(errs) > 0 {
		return nil, apierr.Validation(errs)
	}

	if in.JobType == "" {
		in.JobType = model.JobTypeFullTime
	}

	var job model.Job

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		emp, err := employerOf(tx, actor.UserID)
		if err != nil {
			return err
		}

		job = model.Job{
			EmployerID:   emp.ID,
			Title:        in.Title,
			Description:  in.Description,
			Requirements: in.Requirements,
			SalaryMin:    in.SalaryMin,
			SalaryMax:    in.SalaryMax,
			Location:     in.Location,
			JobType:      in.JobType,
			IsActive:     true,
		}

		if err := tx.Omit(clause.Associations).Create(&job).Error; err != nil {
			return fmt.Errorf("failed to create job, %w", err)
		}

		job.Employer = emp
		return nil
	})
	if err != nil {
		return nil, err
	}

	v := job.View()
	return &v, nil
}

// Update applies a partial change. Only the employer that posted the job may
// touch it.
func (s *JobService) Update(ctx context.Context, actor security.Identity, id uint, in JobPatch) (*model.JobView, error) {
	trimPtr(in.Title)
	trimPtr(in.Description)
	trimPtr(in.Requirements)
	trimPtr(in.Location)
	if in.JobType != nil {
		jt := model.JobType(strings.ToLower(string(*in.JobType)))
		in.JobType = &jt
	}

	if errs := in.validate(); len(errs) > 0 {
		return nil, apierr.Validation(errs)
	}

	var job *model.Job

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		job, err = findJob(tx, id)
		if err != nil {
			return err
		}

		if job.Employer == nil || job.Employer.UserID != actor.UserID {
			return apierr.Forbidden("Not authorized to update this job")
		}

		lo, hi := job.SalaryMin, job.SalaryMax
		if in.SalaryMin.Set {
			lo = in.SalaryMin.Value
		}
		if in.SalaryMax.Set {
			hi = in.SalaryMax.Value
		}
		if errs := checkSalary(nil, lo, hi); len(errs) > 0 {
			return apierr.Validation(errs)
		}

		updates := map[string]any{}
		if in.Title != nil {
			updates["title"] = *in.Title
		}
		if in.Description != nil {
			updates["description"] = *in.Description
		}
		if in.Requirements != nil {
			updates["requirements"] = *in.Requirements
		}
		if in.SalaryMin.Set {
			updates["salary_min"] = in.SalaryMin.column()
		}
		if in.SalaryMax.Set {
			updates["salary_max"] = in.SalaryMax.column()
		}
		if in.Location != nil {
			updates["location"] = *in.Location
		}
		if in.JobType != nil {
			updates["job_type"] = *in.JobType
		}
		if in.IsActive != nil {
			updates["is_active"] = *in.IsActive
		}

		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&model.Job{ID: job.ID}).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update job, %w", err)
		}

		job, err = findJob(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	v := job.View()
	return &v, nil
}

// Delete removes the job and every application made to it
func (s *JobService) Delete(ctx context.Context, actor security.Identity, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		job, err := findJob(tx, id)
		if err != nil {
			return err
		}

		if job.Employer == nil || job.Employer.UserID != actor.UserID {
			return apierr.Forbidden("Not authorized to delete this job")
		}

		if err := tx.Where("job_id = ?", job.ID).Delete(&model.Application{}).Error; err != nil {
			return fmt.Errorf("failed to delete applications, %w", err)
		}

		if err := tx.Delete(&model.Job{}, job.ID).Error; err != nil {
			return fmt.Errorf("failed to delete job, %w", err)
		}

		return nil
	})
}

func findJob(db *gorm.DB, id uint) (*model.Job, error) {
	var job model.Job

	err := db.Preload("Employer").
		Where("id = ?", id).
		First(&job).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("Job not found")
		}

		return nil, fmt.Errorf("failed to find job, %w", err)
	}

	return &job, nil
}

func employerOf(db *gorm.DB, userID string) (*model.EmployerProfile, error) {
	var emp model.EmployerProfile

	err := db.Where("user_id = ?", userID).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("Employer profile not found")
		}

		return nil, fmt.Errorf("failed to find employer profile, %w", err)
	}

	return &emp, nil
}

func jobSeekerOf(db *gorm.DB, userID string) (*model.JobSeekerProfile, error) {
	var js model.JobSeekerProfile

	err := db.Where("user_id = ?", userID).First(&js).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("Job seeker profile not found")
		}

		return nil, fmt.Errorf("failed to find job seeker profile, %w", err)
	}

	return &js, nil
}
