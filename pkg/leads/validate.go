package leads

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/phone"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report storage column names rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("bson"), ",", 2)[0]
		if name == "_id" {
			return "id"
		}
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	})
	return v
}

// Normalize tidies free-text fields in place: whitespace is trimmed, the
// email is lower-cased and a recognizable phone number becomes E.164.
func Normalize(l *domain.Lead, region string) {
	l.FirstName = strings.TrimSpace(l.FirstName)
	l.LastName = strings.TrimSpace(l.LastName)
	l.Email = strings.ToLower(strings.TrimSpace(l.Email))
	l.Phone = phone.Canonical(l.Phone, region)
	l.Company = strings.TrimSpace(l.Company)
	l.City = strings.TrimSpace(l.City)
	l.State = strings.TrimSpace(l.State)
	l.Source = domain.Source(strings.TrimSpace(string(l.Source)))
	l.Status = domain.Status(strings.TrimSpace(string(l.Status)))
}

// Validate checks a lead before it is written. Every write path, single or
// bulk, goes through it. The error lists each failing field.
func Validate(l *domain.Lead) error {
	err := validate.Struct(l)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewInternalError(err)
	}
	details := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, domain.FieldError{
			Field:   fe.Field(),
			Message: describe(fe),
			Value:   fmt.Sprint(fe.Value()),
		})
	}
	return domain.NewValidationErrors(details)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "email must be a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "finite":
		return fe.Field() + " must be a finite number"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be before %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC().Truncate(time.Millisecond)
	return &v
}
