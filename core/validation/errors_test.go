package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAllStopsAtFirstBlank(t *testing.T) {
	err := RequireAll(
		Field{Name: "a", Value: "x"},
		Field{Name: "b", Value: " \t"},
		Field{Name: "c", Value: ""},
	)
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "b", verr.Field)
	assert.Equal(t, RuleRequired, verr.Rule)
	assert.Equal(t, "b is required", verr.Error())

	assert.NoError(t, RequireAll(Field{Name: "a", Value: "x"}))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "incident_datetime must not be later than the current time", (&Error{Field: "incident_datetime", Rule: RuleNotFuture}).Error())
	assert.Equal(t, "birth_date has an invalid format", (&Error{Field: "birth_date", Rule: RuleFormat}).Error())
	assert.Equal(t, "x failed custom", (&Error{Field: "x", Rule: "custom"}).Error())
}
