// Package validator adapts go-playground/validator to echo.Validator.
package validator

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// TagPassword enforces the configured minimum password length in characters.
const TagPassword = "password"

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator. minPasswordLength backs the "password" tag.
func New(minPasswordLength int) *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Registration only fails for an empty or duplicate tag.
	_ = validate.RegisterValidation(TagPassword, func(fl validator.FieldLevel) bool {
		return utf8.RuneCountInString(fl.Field().String()) >= minPasswordLength
	})

	return &Validator{validate: validate}
}

// Validate runs the struct tags of i.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Describe flattens validation failures into "field: tag" pairs.
func Describe(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		part := fe.Field() + ": " + fe.Tag()
		if fe.Param() != "" {
			part += "=" + fe.Param()
		}
		parts = append(parts, part)
	}

	return strings.Join(parts, "; ")
}
