package validator_test

import (
	"errors"
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-api/pkg/validator"
)

type payload struct {
	ID           string `json:"id" validate:"positive_int"`
	Name         any    `json:"name" validate:"present,string_value,notblank"`
	Price        any    `json:"price" validate:"present,numeric_value,positive"`
	Availability any    `json:"availability" validate:"present,boolean_value"`
}

type optionalPayload struct {
	Availability any `json:"availability" validate:"omitempty,boolean_value"`
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()

	var vErrs govalidator.ValidationErrors
	require.True(t, errors.As(err, &vErrs), "expected validation errors, got %v", err)

	res := make(map[string]string, len(vErrs))
	for _, fe := range vErrs {
		res[fe.Field()] = validator.ValidationErrorMessage(fe)
	}
	return res
}

func TestDefaultValidator(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	t.Run("Should accept a valid payload", func(t *testing.T) {
		err := v.Validate(payload{ID: "1", Name: "Monitor", Price: 300.0, Availability: false})
		assert.NoError(t, err)
	})

	t.Run("Should accept numeric and boolean strings", func(t *testing.T) {
		err := v.Validate(payload{ID: "12", Name: "Monitor", Price: "399.5", Availability: "true"})
		assert.NoError(t, err)
	})

	t.Run("Should collect every failing field", func(t *testing.T) {
		err := v.Validate(payload{ID: "abc"})
		assert.True(t, validator.IsValidationError(err))

		assert.Equal(t, map[string]string{
			"id":           "must be a positive integer",
			"name":         "field is required",
			"price":        "field is required",
			"availability": "field is required",
		}, fieldErrors(t, err))
	})

	t.Run("Should reject invalid values", func(t *testing.T) {
		cases := []struct {
			name    string
			payload payload
			field   string
			message string
		}{
			{"empty name", payload{ID: "1", Name: "", Price: 1.0, Availability: true}, "name", "must not be empty"},
			{"blank name", payload{ID: "1", Name: "   ", Price: 1.0, Availability: true}, "name", "must not be empty"},
			{"numeric name", payload{ID: "1", Name: 42.0, Price: 1.0, Availability: true}, "name", "must be a string"},
			{"negative price", payload{ID: "1", Name: "a", Price: -5.0, Availability: true}, "price", "must be greater than 0"},
			{"zero price", payload{ID: "1", Name: "a", Price: 0.0, Availability: true}, "price", "must be greater than 0"},
			{"text price", payload{ID: "1", Name: "a", Price: "cheap", Availability: true}, "price", "must be a number"},
			{"nan price", payload{ID: "1", Name: "a", Price: "NaN", Availability: true}, "price", "must be a number"},
			{"bool price", payload{ID: "1", Name: "a", Price: true, Availability: true}, "price", "must be a number"},
			{"text availability", payload{ID: "1", Name: "a", Price: 1.0, Availability: "yes"}, "availability", "must be a boolean"},
			{"numeric availability", payload{ID: "1", Name: "a", Price: 1.0, Availability: 1.0}, "availability", "must be a boolean"},
			{"zero id", payload{ID: "0", Name: "a", Price: 1.0, Availability: true}, "id", "must be a positive integer"},
			{"negative id", payload{ID: "-3", Name: "a", Price: 1.0, Availability: true}, "id", "must be a positive integer"},
			{"decimal id", payload{ID: "1.5", Name: "a", Price: 1.0, Availability: true}, "id", "must be a positive integer"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				errs := fieldErrors(t, v.Validate(tc.payload))
				assert.Len(t, errs, 1)
				assert.Equal(t, tc.message, errs[tc.field])
			})
		}
	})

	t.Run("Should skip optional fields that are absent", func(t *testing.T) {
		assert.NoError(t, v.Validate(optionalPayload{}))
		assert.NoError(t, v.Validate(optionalPayload{Availability: false}))

		errs := fieldErrors(t, v.Validate(optionalPayload{Availability: "maybe"}))
		assert.Equal(t, "must be a boolean", errs["availability"])
	})
}

func TestParseNumber(t *testing.T) {
	n, ok := validator.ParseNumber(300.0)
	assert.True(t, ok)
	assert.Equal(t, 300.0, n)

	n, ok = validator.ParseNumber("12.5")
	assert.True(t, ok)
	assert.Equal(t, 12.5, n)

	_, ok = validator.ParseNumber("Inf")
	assert.False(t, ok)

	_, ok = validator.ParseNumber(nil)
	assert.False(t, ok)
}

func TestParseBool(t *testing.T) {
	b, ok := validator.ParseBool(false)
	assert.True(t, ok)
	assert.False(t, b)

	b, ok = validator.ParseBool("true")
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = validator.ParseBool("1")
	assert.False(t, ok)
}
