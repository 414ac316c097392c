package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field name to its message
type FieldErrors map[string]string

// Error implements error so FieldErrors can travel as one
func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	messages := make([]string, 0, len(keys))
	for _, k := range keys {
		messages = append(messages, fmt.Sprintf("%s: %s", k, fe[k]))
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

// Add records a message unless the field already has one
func (fe FieldErrors) Add(field, message string) {
	if _, ok := fe[field]; !ok {
		fe[field] = message
	}
}

// Validator wraps go-playground validator
type Validator struct {
	validate *validator.Validate
}

// New creates a new validator that reports fields by their form name
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	return &Validator{
		validate: v,
	}
}

// Validate validates a struct and returns per-field messages
func (v *Validator) Validate(s interface{}) FieldErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrors := FieldErrors{}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fieldErrors.Add("__all__", err.Error())
		return fieldErrors
	}

	for _, e := range validationErrors {
		fieldErrors.Add(e.Field(), formatFieldError(e))
	}
	return fieldErrors
}

// formatFieldError formats a single field error
func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", e.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", e.Param())
	case "gt":
		return "Select a valid choice."
	default:
		return fmt.Sprintf("Failed validation for %s.", e.Tag())
	}
}
