//go:build unit
// +build unit

package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keyRequest struct {
	Bits int `validate:"keyBitLength"`
}

func TestKeyBitLengthValidation(t *testing.T) {
	validate := validator.New()
	require.NoError(t, validate.RegisterValidation("keyBitLength", KeyBitLengthValidation))

	tests := []struct {
		bits  int
		valid bool
	}{
		{8, false},
		{15, false},
		{16, true},
		{100, true},
		{2048, true},
		{16384, true},
		{16385, false},
		{-2048, false},
	}

	for _, tt := range tests {
		err := validate.Struct(&keyRequest{Bits: tt.bits})
		if tt.valid {
			assert.NoError(t, err, "bits=%d", tt.bits)
		} else {
			assert.Error(t, err, "bits=%d", tt.bits)
		}
	}
}
