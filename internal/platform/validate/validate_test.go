// Copyright (c) 2026 Motorpool. All rights reserved.

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorpoolhq/motorpool/internal/platform/apperr"
	"github.com/motorpoolhq/motorpool/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "manufacturer", "Tesla", false},
		{"empty_string", "manufacturer", "", true},
		{"whitespace_only", "manufacturer", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_ExactLen checks fixed-width identifier validation (the VIN rule).
*/
func TestValidator_ExactLen(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"exact_17", "1HGBH41JXMN109186", true},
		{"too_short", "1HGBH41JX", false},
		{"too_long", "1HGBH41JXMN109186XX", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.ExactLen("vin", tt.value, 17)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Range checks the inclusive integer range rule (the year bounds).
*/
func TestValidator_Range(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		isValid bool
	}{
		{"lower_bound", 1900, true},
		{"upper_bound", 2100, true},
		{"in_range", 2024, true},
		{"below", 1899, false},
		{"above", 2101, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Range("year", tt.value, 1900, 2100)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_OneOf checks the allow-list rule used for search fields.
*/
func TestValidator_OneOf(t *testing.T) {
	allowed := []string{"manufacturer", "model", "year", "color", "vin"}

	t.Run("allowed_value", func(t *testing.T) {
		v := &validate.Validator{}
		v.OneOf("field", "model", allowed...)
		assert.False(t, v.HasErrors())
	})

	t.Run("unknown_value", func(t *testing.T) {
		v := &validate.Validator{}
		err := v.OneOf("field", "passwordhash", allowed...).Err()
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		assert.Equal(t, "field", ae.Details[0].Field)
	})
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("manufacturer", "Honda").
		MaxLen("manufacturer", "Honda", 50).
		Range("year", 1991, 1900, 2100).
		ExactLen("vin", "1HGBH41JXMN109186", 17).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("manufacturer", "").     // Fails
		Range("year", 1850, 1900, 2100).  // Fails
		ExactLen("vin", "SHORT-VIN", 17). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}
