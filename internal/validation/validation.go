// Package validation checks request payloads against their `validate` struct
// tags and reports failures keyed by JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return strings.ToLower(field.Name)
			}
			return name
		})
	})
	return validate
}

// Validate returns the field errors for payload and whether it is valid.
func Validate(payload any) (map[string]string, bool) {
	err := instance().Struct(payload)
	if err == nil {
		return nil, true
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"_": err.Error()}, false
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, exists := out[fe.Field()]; exists {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out, false
}

func message(fe validator.FieldError) string {
	label := humanize(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s field is required", label)
	case "email":
		return "Email is invalid"
	case "url":
		return fmt.Sprintf("%s is not a valid URL", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in the form YYYY-MM-DD", label)
	case "eqfield":
		return fmt.Sprintf("%s must match %s", label, strings.ToLower(fe.Param()))
	case "uuid":
		return fmt.Sprintf("%s is not a valid id", label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func humanize(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
