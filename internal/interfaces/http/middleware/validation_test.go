package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	require.NotNil(t, v)
}

func TestDocumentValidation(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type payload struct {
		Document string `json:"document" binding:"document"`
	}

	tests := []struct {
		name     string
		document string
		valid    bool
	}{
		{"cedula", "12345678", true},
		{"nit with check digit", "900123456-7", true},
		{"too short", "1234", false},
		{"letters", "12a45678", false},
		{"bad check digit", "900123456-77", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(payload{Document: tt.document})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestTagNameFuncUsesJSONNames(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type payload struct {
		PartnerName string `json:"partner_name" binding:"required"`
	}

	err := v.Struct(payload{})
	require.Error(t, err)

	validationErrors, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	require.Len(t, validationErrors, 1)
	assert.Equal(t, "partner_name", validationErrors[0].Field())
}
