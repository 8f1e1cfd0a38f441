package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name" validate:"notblank"`
	Time  string  `json:"reminder_time" validate:"hhmm"`
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=5"`
}

func TestValidator_Check(t *testing.T) {
	v := New()

	errs := v.Check(sample{Name: "   ", Time: "9:00"})
	assert.Equal(t, "is required", errs["name"])
	assert.Equal(t, "must be HH:MM", errs["reminder_time"])
	assert.NotContains(t, errs, "notes")

	long := "too long notes"
	errs = v.Check(sample{Name: "Aspirin", Time: "09:00", Notes: &long})
	assert.Len(t, errs, 1)
	assert.Contains(t, errs["notes"], "must not exceed")

	assert.NoError(t, v.Validate(sample{Name: "Aspirin", Time: "23:59"}))
}

func TestErrors_WrapAndExtract(t *testing.T) {
	sentinel := errors.New("invalid input")
	errs := Errors{}
	errs.Add("start_date", "is required")
	errs.Add("start_date", "second message is ignored")

	err := fmt.Errorf("%w: %w", sentinel, errs.Err())
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, map[string]string{"start_date": "is required"}, Fields(err))

	assert.NoError(t, Errors{}.Err())
	assert.Nil(t, Fields(sentinel))
}
