package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator checks request structs against their validate tags
type Validator struct {
	validate *validator.Validate
}

// GetValidator returns the shared validator. Field errors carry the json
// name so they line up with the keys the client sent.
var GetValidator = sync.OnceValue(func() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return &Validator{validate: v}
})

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// ValidateStruct validates s using its tags
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// fieldMessage renders one failed rule for API clients
func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min", "gte":
		return fmt.Sprintf("Must be at least %s", e.Param())
	case "max", "lte":
		return fmt.Sprintf("Must be at most %s", e.Param())
	default:
		return "Invalid value"
	}
}

// FormatValidationError maps validation failures to field -> message. Errors
// that are not validation failures collapse into a single "error" entry.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"error": "Invalid request format"}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, e := range fieldErrs {
		out[e.Field()] = fieldMessage(e)
	}
	return out
}
