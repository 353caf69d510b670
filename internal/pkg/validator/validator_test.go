package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/cto-planner/internal/pkg/validator"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, validator.IsEmpty(""))
	assert.True(t, validator.IsEmpty("   "))
	assert.False(t, validator.IsEmpty("balanced"))
}

func TestIsValidDate(t *testing.T) {
	_, ok := validator.IsValidDate("2025-07-04")
	assert.True(t, ok)

	_, ok = validator.IsValidDate("07/04/2025")
	assert.False(t, ok)

	_, ok = validator.IsValidDate("not-a-date")
	assert.False(t, ok)
}

func TestIsInSlice(t *testing.T) {
	assert.True(t, validator.IsInSlice("balanced", validator.KnownStrategies))
	assert.False(t, validator.IsInSlice("bogus", validator.KnownStrategies))
}

func TestIsInRange(t *testing.T) {
	assert.True(t, validator.IsInRange(2025, 1900, 2200))
	assert.False(t, validator.IsInRange(1899, 1900, 2200))
	assert.False(t, validator.IsInRange(2201, 1900, 2200))
}

func TestValidationErrors_ErrorJoinsFieldMessages(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "year", Message: "out of range"},
		{Field: "number_of_days", Message: "must be >= 0"},
	}
	assert.Equal(t, "year: out of range; number_of_days: must be >= 0", errs.Error())
	assert.Equal(t, map[string]string{
		"year":           "out of range",
		"number_of_days": "must be >= 0",
	}, errs.ToMap())
}
