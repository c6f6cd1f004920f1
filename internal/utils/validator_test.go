// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	CPF      string `validate:"required,cpf"`
	Password string `validate:"required,strong_password"`
}

func TestValidateStructCustomTags(t *testing.T) {
	err := ValidateStruct(&sampleForm{CPF: "529.982.247-25", Password: "SenhaForte123"})
	assert.NoError(t, err)

	err = ValidateStruct(&sampleForm{CPF: "11111111111", Password: "SenhaForte123"})
	assert.Error(t, err)

	err = ValidateStruct(&sampleForm{CPF: "52998224725", Password: "fraca"})
	assert.Error(t, err)
}

func TestStrongPasswordRules(t *testing.T) {
	weak := []string{
		"curtaA1",        // under 8 characters
		"minusculas123",  // no uppercase
		"MAIUSCULAS123",  // no lowercase
		"SemNumeros",     // no digit
	}
	for _, password := range weak {
		err := ValidateStruct(&sampleForm{CPF: "52998224725", Password: password})
		assert.Error(t, err, "password %q must fail", password)
	}

	err := ValidateStruct(&sampleForm{CPF: "52998224725", Password: "Senha123Forte"})
	assert.NoError(t, err)
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&sampleForm{})
	require.Error(t, err)

	fieldErrors := GetValidationErrors(err)
	require.Len(t, fieldErrors, 2)
	assert.NotEmpty(t, fieldErrors[0].Field)
	assert.NotEmpty(t, fieldErrors[0].Message)
}
