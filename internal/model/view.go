package model

import "time"

type UserView struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	Role          Role      `json:"role"`
	EmailVerified bool      `json:"is_email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

func (u *User) View() UserView {
	return UserView{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}

type JobView struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	SalaryMin    *float64  `json:"salary_min"`
	SalaryMax    *float64  `json:"salary_max"`
	Location     string    `json:"location"`
	JobType      JobType   `json:"job_type"`
	CompanyName  string    `json:"company_name"`
	EmployerID   uint      `json:"employer_id"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// View expects Employer to be preloaded, company_name stays empty otherwise
func (j *Job) View() JobView {
	jv := JobView{
		ID:           j.ID,
		Title:        j.Title,
		Description:  j.Description,
		Requirements: j.Requirements,
		SalaryMin:    j.SalaryMin,
		SalaryMax:    j.SalaryMax,
		Location:     j.Location,
		JobType:      j.JobType,
		EmployerID:   j.EmployerID,
		IsActive:     j.IsActive,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}

	if j.Employer != nil {
		jv.CompanyName = j.Employer.CompanyName
	}

	return jv
}

// ApplicationView is scanned straight from a joined query, column names
// have to match the snake_case field names.
type ApplicationView struct {
	ID          uint              `json:"id"`
	JobID       uint              `json:"job_id"`
	JobTitle    string            `json:"job_title"`
	JobSeekerID uint              `json:"job_seeker_id"`
	SeekerName  string            `json:"seeker_name"`
	SeekerEmail string            `json:"seeker_email"`
	Status      ApplicationStatus `json:"status"`
	CoverLetter string            `json:"cover_letter"`
	Notes       string            `json:"notes"`
	AppliedAt   time.Time         `json:"applied_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	EmployerUserID string `json:"-"`
	SeekerUserID   string `json:"-"`
}

type ProfileView struct {
	User    UserView `json:"user"`
	Profile Profile  `json:"profile"`
}

type EmployerView struct {
	Employer *EmployerProfile `json:"employer"`
	User     UserView         `json:"user"`
}
