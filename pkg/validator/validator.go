package validator

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var (
	validate = validator.New()
	hhmmRe   = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)
	colorRe  = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	periodRe = regexp.MustCompile(`^[0-9]{4}-(0[1-9]|1[0-2])$`)
)

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func init() {
	// Register custom validation for UUID
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})
	validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return IsHHMM(fl.Field().String())
	})
	validate.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return IsWeekday(fl.Field().String())
	})
	validate.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
		return colorRe.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("period", func(fl validator.FieldLevel) bool {
		return periodRe.MatchString(fl.Field().String())
	})
}

// IsHHMM reports whether s is a 24h clock time between 00:00 and 23:59.
func IsHHMM(s string) bool {
	return hhmmRe.MatchString(s)
}

// IsWeekday accepts English weekday names, Monday..Sunday.
func IsWeekday(s string) bool {
	return slices.Contains(weekdays, s)
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*ErrorResponse{{FailedField: "body", Tag: "struct"}}
		}
		for _, err := range validationErrors {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}

// Message renders the first failure the way handlers report it.
func Message(errs []*ErrorResponse) string {
	if len(errs) == 0 {
		return ""
	}
	return fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
}
