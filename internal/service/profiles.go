package service

import (
	"bitwise74/job-portal/internal/model"
	"bitwise74/job-portal/pkg/apierr"
	"bitwise74/job-portal/pkg/security"
	"bitwise74/job-portal/pkg/storage"
	"bitwise74/job-portal/pkg/validators"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

type UploadKind string

const (
	UploadCV   UploadKind = "cv"
	UploadLogo UploadKind = "logo"
)

var (
	cvTypes   = []string{"application/pdf"}
	logoTypes = []string{"image/png", "image/jpeg", "image/webp"}
)

type ProfileService struct {
	db        *gorm.DB
	store     storage.Store
	maxUpload int64
}

func NewProfileService(db *gorm.DB, store storage.Store, maxUpload int64) *ProfileService {
	return &ProfileService{
		db:        db,
		store:     store,
		maxUpload: maxUpload,
	}
}

// ProfileUpdate covers both profile kinds. Fields that don't belong to the
// caller's role are ignored.
type ProfileUpdate struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=120"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	Location *string `json:"location" validate:"omitempty,max=200"`

	Skills          []string `json:"skills" validate:"omitempty,max=50,dive,min=1,max=50,excludesall=0x2C"`
	ExperienceYears *int     `json:"experience_years" validate:"omitempty,gte=0,lte=80"`
	CVURL           *string  `json:"cv_url" validate:"omitempty,url,max=500"`
	Bio             *string  `json:"bio" validate:"omitempty,max=5000"`

	CompanyName        *string `json:"company_name" validate:"omitempty,min=2,max=200"`
	CompanyDescription *string `json:"company_description" validate:"omitempty,max=20000"`
	CompanyLogoURL     *string `json:"company_logo_url" validate:"omitempty,url,max=500"`
	CompanyWebsite     *string `json:"company_website" validate:"omitempty,url,max=500"`
}

func loadUser(db *gorm.DB, userID string) (*model.User, error) {
	var user model.User

	err := db.Preload("JobSeeker").
		Preload("Employer").
		Where("id = ?", userID).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("User not found")
		}

		return nil, fmt.Errorf("failed to find user, %w", err)
	}

	return &user, nil
}

// Get returns the caller together with the profile of its role
func (s *ProfileService) Get(ctx context.Context, actor security.Identity) (*model.ProfileView, error) {
	user, err := loadUser(s.db.WithContext(ctx), actor.UserID)
	if err != nil {
		return nil, err
	}

	return &model.ProfileView{
		User:    user.View(),
		Profile: user.Profile(),
	}, nil
}

func (s *ProfileService) Update(ctx context.Context, actor security.Identity, in ProfileUpdate) (*model.ProfileView, error) {
	trimPtr(in.FullName)
	trimPtr(in.Phone)
	trimPtr(in.Location)
	trimPtr(in.CVURL)
	trimPtr(in.Bio)
	trimPtr(in.CompanyName)
	trimPtr(in.CompanyDescription)
	trimPtr(in.CompanyLogoURL)
	trimPtr(in.CompanyWebsite)
	for i := range in.Skills {
		in.Skills[i] = strings.TrimSpace(in.Skills[i])
	}

	if errs := validators.Struct(in); len(errs) > 0 {
		return nil, apierr.Validation(errs)
	}

	var view *model.ProfileView

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := loadUser(tx, actor.UserID)
		if err != nil {
			return err
		}

		if in.FullName != nil {
			if err := tx.Model(user).Update("full_name", *in.FullName).Error; err != nil {
				return fmt.Errorf("failed to update user, %w", err)
			}
		}

		updates := map[string]any{}
		if in.Phone != nil {
			updates["phone"] = *in.Phone
		}
		if in.Location != nil {
			updates["location"] = *in.Location
		}

		var target any

		switch p := user.Profile().(type) {
		case *model.JobSeekerProfile:
			target = p
			if in.Skills != nil {
				updates["skills"] = model.StringSlice(in.Skills)
			}
			if in.ExperienceYears != nil {
				updates["experience_years"] = *in.ExperienceYears
			}
			if in.CVURL != nil {
				updates["cv_url"] = *in.CVURL
			}
			if in.Bio != nil {
				updates["bio"] = *in.Bio
			}
		case *model.EmployerProfile:
			target = p
			if in.CompanyName != nil {
				updates["company_name"] = *in.CompanyName
			}
			if in.CompanyDescription != nil {
				updates["company_description"] = *in.CompanyDescription
			}
			if in.CompanyLogoURL != nil {
				updates["company_logo_url"] = *in.CompanyLogoURL
			}
			if in.CompanyWebsite != nil {
				updates["company_website"] = *in.CompanyWebsite
			}
		default:
			return apierr.NotFound("Profile not found")
		}

		if len(updates) > 0 {
			if err := tx.Model(target).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update profile, %w", err)
			}
		}

		user, err = loadUser(tx, actor.UserID)
		if err != nil {
			return err
		}

		view = &model.ProfileView{User: user.View(), Profile: user.Profile()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// Upload stores a CV for job seekers or a company logo for employers and
// points the profile at it. The content type is sniffed, the client's claim
// is ignored.
func (s *ProfileService) Upload(ctx context.Context, actor security.Identity, kind UploadKind, r io.Reader) (*model.ProfileView, error) {
	var (
		allowed []string
		column  string
		prefix  string
	)

	switch {
	case kind == UploadCV && actor.Role == model.RoleJobSeeker:
		allowed, column, prefix = cvTypes, "cv_url", "cv"
	case kind == UploadLogo && actor.Role == model.RoleEmployer:
		allowed, column, prefix = logoTypes, "company_logo_url", "logos"
	default:
		return nil, apierr.Forbidden("Insufficient permissions")
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxUpload+1))
	if err != nil {
		return nil, apierr.FromBind(err)
	}

	if int64(len(data)) > s.maxUpload {
		return nil, apierr.TooLarge("File size exceeds limit")
	}

	if len(data) == 0 {
		return nil, apierr.BadRequest("No file provided")
	}

	mt := mimetype.Detect(data)
	if !slices.ContainsFunc(allowed, mt.Is) {
		return nil, apierr.BadRequest("Unsupported file type " + mt.String())
	}

	name, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate file name, %w", err)
	}

	key := fmt.Sprintf("%s/%s/%s%s", prefix, actor.UserID, name, mt.Extension())

	url, err := s.store.Put(ctx, key, bytes.NewReader(data), mt.String())
	if err != nil {
		return nil, fmt.Errorf("failed to store upload, %w", err)
	}

	var view *model.ProfileView

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := loadUser(tx, actor.UserID)
		if err != nil {
			return err
		}

		p := user.Profile()
		if p == nil {
			return apierr.NotFound("Profile not found")
		}

		if err := tx.Model(p).Update(column, url).Error; err != nil {
			return fmt.Errorf("failed to update profile, %w", err)
		}

		user, err = loadUser(tx, actor.UserID)
		if err != nil {
			return err
		}

		view = &model.ProfileView{User: user.View(), Profile: user.Profile()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// Employer is the public company page
func (s *ProfileService) Employer(ctx context.Context, id uint) (*model.EmployerView, error) {
	var emp model.EmployerProfile

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("Employer not found")
		}

		return nil, fmt.Errorf("failed to find employer, %w", err)
	}

	user, err := loadUser(s.db.WithContext(ctx), emp.UserID)
	if err != nil {
		return nil, err
	}

	return &model.EmployerView{Employer: &emp, User: user.View()}, nil
}
