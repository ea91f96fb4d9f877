package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrors(t *testing.T) {
	var v ValidationErrors
	assert.NoError(t, v.Err())

	v.Required("name", "  ")
	v.Required("sku", "SKU-1")
	v.Add("price", "must be >= 0")

	err := v.Err()
	require.Error(t, err)
	assert.Equal(t, "name: is required; price: must be >= 0", err.Error())
	assert.True(t, IsValidation(err))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "name", ve.Field)
}

func TestIsValidationOnOtherErrors(t *testing.T) {
	assert.False(t, IsValidation(errors.New("boom")))
	assert.False(t, IsValidation(nil))
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"john@example.com", true},
		{"a@b.c", true},
		{"john@example", false},
		{"john example@x.com", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidEmail(tt.in))
		})
	}
}
