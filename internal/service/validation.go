package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"team-collab/internal/apperror"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that reports fields by their JSON name.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validationError turns validator output into a ValidationError carrying
// the first failing field.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperror.Internal("Error validating input", err)
	}

	fe := fieldErrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", fe.Field())
	case "email":
		msg = "Invalid email format"
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		msg = fmt.Sprintf("%s cannot exceed %s characters", fe.Field(), fe.Param())
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		msg = fmt.Sprintf("%s is invalid", fe.Field())
	}
	return apperror.Validation("", msg)
}

var (
	errTitleRequired       = apperror.Validation("titleRequired", "Task title is required")
	errTitleTooLong        = apperror.Validation("titleTooLong", "Title cannot exceed 100 characters")
	errDescriptionRequired = apperror.Validation("descriptionRequired", "Task description is required")
	errDescriptionTooLong  = apperror.Validation("descriptionTooLong", "Description cannot exceed 500 characters")
	errInvalidStatus       = apperror.Validation("invalidStatus", "Status must be pending or completed")
	errAssigneeRequired    = apperror.Validation("assigneeRequired", "Assigned user is required")
	errCommentRequired     = apperror.Validation("commentRequired", "Comment text is required")
	errCommentTooLong      = apperror.Validation("commentTooLong", "Comment cannot exceed 500 characters")
	errNameRequired        = apperror.Validation("nameRequired", "Name cannot be empty")
	errInvalidEmail        = apperror.Validation("invalidEmail", "Invalid email format")
	errPasswordTooLong     = apperror.Validation("passwordTooLong", "Password is too long")
)

// checkText trims s and enforces a required, rune-bounded value.
func checkText(s string, max int, required, tooLong *apperror.Error) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", required
	}
	if utf8.RuneCountInString(s) > max {
		return "", tooLong
	}
	return s, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
