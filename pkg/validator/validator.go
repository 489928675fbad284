package validator

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Validator is a validator that validates the given struct.
type Validator interface {
	// Validate validates the given struct
	Validate(s any) error
}

type DefaultValidator struct {
	v *validator.Validate
}

// NewDefaultValidator creates a new default validator.
// Field names in validation errors are taken from the json tag.
func NewDefaultValidator() (*DefaultValidator, error) {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// present must run on nil values, otherwise a missing field is reported
	// under whatever tag comes first.
	if err := v.RegisterValidation("present", validatePresent, true); err != nil {
		return nil, fmt.Errorf("register present validator: %w", err)
	}

	custom := map[string]validator.Func{
		"notblank":      validators.NotBlank,
		"string_value":  validateStringValue,
		"numeric_value": validateNumericValue,
		"positive":      validatePositive,
		"boolean_value": validateBooleanValue,
		"positive_int":  validatePositiveInt,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("register %s validator: %w", tag, err)
		}
	}

	return &DefaultValidator{v: v}, nil
}

func (v DefaultValidator) Validate(s any) error {
	return v.v.Struct(s)
}

// IsValidationError checks if the given error is a validation error
func IsValidationError(err error) bool {
	_, ok := err.(validator.ValidationErrors)
	return ok
}

func ValidationErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "present":
		return "field is required"
	case "notblank":
		return "must not be empty"
	case "string_value":
		return "must be a string"
	case "numeric_value":
		return "must be a number"
	case "positive":
		return "must be greater than 0"
	case "boolean_value":
		return "must be a boolean"
	case "positive_int":
		return "must be a positive integer"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return "is invalid"
	}
}

// ParseNumber converts a decoded JSON value into a finite float64.
// JSON numbers and numeric strings are accepted.
func ParseNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseBool converts a decoded JSON value into a bool.
// JSON booleans and the strings "true" and "false" are accepted.
func ParseBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch b {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

func validatePresent(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Invalid:
		return false
	case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice:
		return !field.IsNil()
	default:
		return true
	}
}

func validateStringValue(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.String
}

func validateNumericValue(fl validator.FieldLevel) bool {
	_, ok := ParseNumber(fl.Field().Interface())
	return ok
}

func validatePositive(fl validator.FieldLevel) bool {
	n, ok := ParseNumber(fl.Field().Interface())
	return ok && n > 0
}

func validateBooleanValue(fl validator.FieldLevel) bool {
	_, ok := ParseBool(fl.Field().Interface())
	return ok
}

func validatePositiveInt(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	n, err := strconv.ParseInt(fl.Field().String(), 10, 64)
	return err == nil && n > 0
}
