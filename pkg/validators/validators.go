package validators

import (
	"bitwise74/job-portal/internal/model"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// messages are looked up as "field.tag", then "field", then by tag alone
var messages = map[string]string{
	"email.required":     "Email is required",
	"email":              "Invalid email format",
	"password":           "Password must be at least 8 characters with uppercase, lowercase, and digits",
	"full_name":          "Full name must be at least 2 characters",
	"company_name":       "Company name must be at least 2 characters",
	"title":              "Title must be at least 5 characters",
	"description":        "Description must be at least 20 characters",
	"location.required":  "Location is required",
	"location.min":       "Location is required",
	"job_type":           "Job type must be one of full_time, part_time, contract, freelance, internship",
	"salary_min":         "Minimum salary must be a positive number",
	"salary_max":         "Maximum salary must be a positive number",
	"experience_years":   "Experience years must be between 0 and 80",
	"skills.excludesall": "Skills can't contain commas",
}

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report json names so the client can map errors back to its fields
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		mustRegister := func(tag string, fn validator.Func) {
			if err := v.RegisterValidation(tag, fn); err != nil {
				panic(fmt.Sprintf("failed to register validation tag %q, %v", tag, err))
			}
		}

		mustRegister("emailaddr", func(fl validator.FieldLevel) bool {
			return EmailValidator(fl.Field().String()) == nil
		})
		mustRegister("password", func(fl validator.FieldLevel) bool {
			return PasswordValidator(fl.Field().String()) == nil
		})
		mustRegister("jobtype", func(fl validator.FieldLevel) bool {
			return model.JobType(fl.Field().String()).Valid()
		})

		validate = v
	})

	return validate
}

// Struct validates s and returns every failed field with a readable message,
// nil when s is valid.
func Struct(s any) map[string]string {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"body": "Invalid request"}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i > 0 {
			field = field[:i]
		}

		if _, exists := out[field]; exists {
			continue
		}

		out[field] = message(field, fe)
	}

	return out
}

func message(field string, fe validator.FieldError) string {
	if m, ok := messages[field+"."+fe.Tag()]; ok {
		return m
	}

	if m, ok := messages[field]; ok {
		return m
	}

	switch fe.Tag() {
	case "required", "required_if":
		return "This field is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "url", "http_url":
		return "Must be a valid URL"
	default:
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}
