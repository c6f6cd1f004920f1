// internal/utils/cpf_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCPF(t *testing.T) {
	assert.Equal(t, "52998224725", NormalizeCPF("529.982.247-25"))
	assert.Equal(t, "52998224725", NormalizeCPF("52998224725"))
	assert.Equal(t, "", NormalizeCPF("abc.def-gh"))
}

func TestValidateCPF(t *testing.T) {
	valid := []string{
		"52998224725",
		"529.982.247-25",
		"11144477735",
		"390.533.447-05",
	}
	for _, cpf := range valid {
		assert.True(t, ValidateCPF(cpf), "CPF %s must be valid", cpf)
	}

	invalid := []string{
		"",
		"123",
		"529982247250",  // too long
		"52998224724",   // wrong second check digit
		"52998224735",   // wrong first check digit
		"11111111111",   // repeated digit
		"000.000.000-00",
	}
	for _, cpf := range invalid {
		assert.False(t, ValidateCPF(cpf), "CPF %s must be invalid", cpf)
	}
}
