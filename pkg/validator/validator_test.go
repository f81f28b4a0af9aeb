package validator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID      string `validate:"omitempty,objectid"`
	Email   string `validate:"required,email"`
	Message string `validate:"omitempty,min=10"`
}

func TestValidateAcceptsValidStruct(t *testing.T) {
	err := Validate(context.Background(), sample{
		ID:      "507f1f77bcf86cd799439011",
		Email:   "jane@example.com",
		Message: "long enough message",
	})
	require.NoError(t, err)
}

func TestValidateRequired(t *testing.T) {
	err := Validate(context.Background(), sample{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrFieldRequired)
}

func TestValidateEmail(t *testing.T) {
	err := Validate(context.Background(), sample{Email: "not-an-email"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrInvalidEmail)
}

func TestValidateMinLen(t *testing.T) {
	err := Validate(context.Background(), sample{Email: "jane@example.com", Message: "short"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrFieldBelowMinLen)
}

func TestValidateObjectID(t *testing.T) {
	err := Validate(context.Background(), sample{ID: "not-a-hex-id", Email: "jane@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrInvalidFormat)
}

func TestObjectIDPattern(t *testing.T) {
	assert.True(t, objectIDHex.MatchString("507f1f77bcf86cd799439011"))
	assert.False(t, objectIDHex.MatchString("507f1f77bcf86cd79943901"))
	assert.False(t, objectIDHex.MatchString("507f1f77bcf86cd79943901z"))
}
