package app

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUsernameExists    = errors.New("username already exists")
	ErrEmailExists       = errors.New("email already exists")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrForbidden         = errors.New("forbidden")
	ErrPostNotFound      = errors.New("post not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrConflict          = errors.New("conflict")
)

// ValidationError carries a message per offending field. It matches ErrInvalidInput.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func newFieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs the `validate` tags on v and reports failures as a *ValidationError.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return FromValidator(verrs)
	}
	return fmt.Errorf("validate input failed: %w", err)
}

// FromValidator converts validator errors, including those produced by gin binding.
func FromValidator(verrs validator.ValidationErrors) *ValidationError {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = describe(fe)
	}
	return &ValidationError{Fields: fields}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "email":
		return "must be a valid email address"
	case "alphanum":
		return "must contain only letters and digits"
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "is invalid"
	}
}
