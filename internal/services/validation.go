package services

import (
	"errors"
	"reflect"
	"strings"

	"blog-backend/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput checks input against its struct tags. On failure the
// returned ValidationError lists each rejected field with the rule it broke
// and echoes args back.
func validateInput(input any, args map[string]any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.ErrValidation.WithCause(err)
	}

	fields := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[fe.Field()] = rule
	}

	details := apperrors.InvalidArgs(args)
	details["fields"] = fields
	return apperrors.ErrValidation.WithCause(err).WithDetails(details)
}

// validateID rejects ids that are not UUIDs before they reach the store
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.ErrInvalidID.WithCause(err).WithDetails(apperrors.InvalidArgs(map[string]any{"id": id}))
	}
	return nil
}
