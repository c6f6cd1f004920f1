// internal/utils/cpf.go
package utils

import (
	"strings"
)

// NormalizeCPF strips every non-digit character from a CPF string.
func NormalizeCPF(cpf string) string {
	var b strings.Builder
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateCPF runs the standard two check-digit algorithm over a normalized
// CPF. Sequences of a single repeated digit (e.g. 111.111.111-11) pass the
// arithmetic but are invalid by definition.
func ValidateCPF(cpf string) bool {
	cpf = NormalizeCPF(cpf)
	if len(cpf) != 11 {
		return false
	}

	allEqual := true
	for i := 1; i < 11; i++ {
		if cpf[i] != cpf[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	digits := make([]int, 11)
	for i, r := range cpf {
		digits[i] = int(r - '0')
	}

	if cpfCheckDigit(digits, 9) != digits[9] {
		return false
	}
	return cpfCheckDigit(digits, 10) == digits[10]
}

// cpfCheckDigit computes the verification digit over the first n positions,
// with weights n+1 down to 2.
func cpfCheckDigit(digits []int, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += digits[i] * (n + 1 - i)
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}
