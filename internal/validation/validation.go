// Package validation runs the field-level form checks that guard the
// record store. Nothing invalid ever reaches internal/directory: handlers
// call Student first and reject the request when it fails.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/aanand-mishra/student-directory/internal/types"
	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator with the directory's custom tags
// registered. validator.Validate caches struct metadata and is safe for
// concurrent use, so one instance serves every request.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report JSON names ("name", "email") instead of Go field names.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		mustRegister(v, "trimmin", trimMin)
		mustRegister(v, "simpleemail", func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		})
		mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})

		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}

// trimMin checks the length of the value after surrounding whitespace is
// removed, so "  ab " does not pass trimmin=3.
func trimMin(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len([]rune(strings.TrimSpace(fl.Field().String()))) >= n
}

// Student validates the submitted fields. A nil return means the data may
// be handed to the store. Any failure is returned as
// validator.ValidationErrors.
func Student(fields types.StudentFields) error {
	if err := Validator().Struct(fields); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return verrs
		}
		return err
	}
	return nil
}

// Messages maps each failing field (by JSON name) to the message the
// student form shows next to it. Only the first failing rule per field is
// reported.
func Messages(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		field := e.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = Message(e)
	}
	return out
}

// Message renders a single field error. A value that is only whitespace
// counts as missing, the same as an empty one.
func Message(e validator.FieldError) string {
	missing := e.Tag() == "required" || blank(e.Value())

	switch e.Field() {
	case "name":
		if missing {
			return "Name is required"
		}
		return "Name must be at least 3 characters"
	case "email":
		if missing {
			return "Email is required"
		}
		return "Email format is invalid"
	case "phone":
		if missing {
			return "Phone number is required"
		}
		return "Phone number must be 10 digits"
	case "gender":
		return "Please select a gender"
	case "department":
		return "Please select a department"
	}

	switch e.Tag() {
	case "required":
		return "field " + e.Field() + " is required"
	default:
		return "field " + e.Field() + " is invalid"
	}
}

func blank(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}
