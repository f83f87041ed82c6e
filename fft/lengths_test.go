package fft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNFFTSmall(t *testing.T) {
	assert.Equal(t, 1, NFFTSmall(0))
	assert.Equal(t, 1, NFFTSmall(1))
	assert.True(t, IsValidLength(NFFTSmall(17)))
	assert.GreaterOrEqual(t, NFFTSmall(1000), 1000)
	assert.Equal(t, MaxLength, NFFTSmall(MaxLength))
}

func TestNFFTFastMatchesSmall(t *testing.T) {
	for _, n := range []int{1, 2, 17, 1000, 5000, MaxLength} {
		assert.Equal(t, NFFTSmall(n), NFFTFast(n))
	}
}

func TestMaxLengthValue(t *testing.T) {
	assert.Equal(t, 720720, MaxLength)
	assert.True(t, IsValidLength(MaxLength))
}

func TestValidLengthsSortedAndDeduped(t *testing.T) {
	for i := 1; i < len(validLengths); i++ {
		assert.Less(t, validLengths[i-1], validLengths[i])
	}
}

func TestFactorizeProducesCoprimeFactors(t *testing.T) {
	for _, n := range validLengths[:50] {
		factors := factorize(n)
		product := 1
		for _, f := range factors {
			product *= f
		}
		assert.Equal(t, n, product)
		for i := 0; i < len(factors); i++ {
			for j := i + 1; j < len(factors); j++ {
				assert.Equal(t, 1, gcd(factors[i], factors[j]), "factors %v not coprime", factors)
			}
		}
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
