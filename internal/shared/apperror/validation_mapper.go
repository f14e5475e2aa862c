package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(s)
}

// MapValidationError turns binding errors into a single AppError plus the full list of messages.
func MapValidationError(err error) (*AppError, []string) {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		details := make([]string, 0, len(errs))
		for _, e := range errs {
			details = append(details, describe(e))
		}

		first := errs[0]
		field := formatFieldName(first.Field())
		if first.Tag() == "required" {
			return RequiredField(field), details
		}
		return InvalidField(field), details
	}

	return New(CodeInvalidInput, "Invalid input", http.StatusBadRequest), []string{err.Error()}
}

func describe(e validator.FieldError) string {
	field := formatFieldName(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, e.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "email":
		return field + " must be a valid email"
	default:
		return field + " is invalid"
	}
}
