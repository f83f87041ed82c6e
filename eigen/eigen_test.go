package eigen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompose2Diagonal(t *testing.T) {
	out := Decompose2(3, 0, 1)
	assert.InDelta(t, 3, out.Au, 1e-12)
	assert.InDelta(t, 1, out.Av, 1e-12)
	assert.InDelta(t, 1, out.U[0], 1e-12)
	assert.InDelta(t, 0, out.U[1], 1e-12)
}

// TestDecompose2Scenario checks a 2x2 symmetric matrix with a known
// closed-form eigen-decomposition.
func TestDecompose2Scenario(t *testing.T) {
	out := Decompose2(2, 1, 2)
	assert.InDelta(t, 3, out.Au, 1e-9)
	assert.InDelta(t, 1, out.Av, 1e-9)
	// For this matrix the Au-eigenvector is +/-(1,1)/sqrt(2); the
	// orientation convention forces U[0] >= 0.
	assert.InDelta(t, 1/math.Sqrt2, out.U[0], 1e-9)
	assert.InDelta(t, 1/math.Sqrt2, out.U[1], 1e-9)
	assert.GreaterOrEqual(t, out.U[0], 0.0)
}

// TestDecompose2Reconstructs is property 5: A = Au*u*u' + Av*v*v' for
// the recovered eigenpairs.
func TestDecompose2Reconstructs(t *testing.T) {
	cases := [][3]float64{
		{2, 1, 2},
		{5, -2, 3},
		{1, 0, 1},
		{-4, 3, 2},
	}
	for _, c := range cases {
		a00, a01, a11 := c[0], c[1], c[2]
		out := Decompose2(a00, a01, a11)
		v := [2]float64{out.U[1], -out.U[0]}
		r00 := out.Au*out.U[0]*out.U[0] + out.Av*v[0]*v[0]
		r01 := out.Au*out.U[0]*out.U[1] + out.Av*v[0]*v[1]
		r11 := out.Au*out.U[1]*out.U[1] + out.Av*v[1]*v[1]
		assert.InDelta(t, a00, r00, 1e-8)
		assert.InDelta(t, a01, r01, 1e-8)
		assert.InDelta(t, a11, r11, 1e-8)
		assert.GreaterOrEqual(t, out.Au, out.Av)
		assert.GreaterOrEqual(t, out.U[0], 0.0)
	}
}

func TestDecompose3Diagonal(t *testing.T) {
	a := [3][3]float64{{5, 0, 0}, {0, 3, 0}, {0, 0, 1}}
	out, err := Decompose3(a)
	require.NoError(t, err)
	assert.InDelta(t, 5, out.Lambda[0], 1e-9)
	assert.InDelta(t, 3, out.Lambda[1], 1e-9)
	assert.InDelta(t, 1, out.Lambda[2], 1e-9)
}

// TestDecompose3Reconstructs is property 5 for the 3x3 case: A is
// recovered from U*diag(Lambda)*U' for the orthonormal frame (U,V,W).
func TestDecompose3Reconstructs(t *testing.T) {
	a := [3][3]float64{
		{4, 1, 0.5},
		{1, 3, -0.2},
		{0.5, -0.2, 2},
	}
	out, err := Decompose3(a)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, out.Lambda[0], out.Lambda[1])
	assert.GreaterOrEqual(t, out.Lambda[1], out.Lambda[2])
	assert.GreaterOrEqual(t, out.U[0], 0.0)

	vecs := [3][3]float64{out.U, out.V, out.W}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := a[i][j]
			got := 0.0
			for k := 0; k < 3; k++ {
				got += out.Lambda[k] * vecs[k][i] * vecs[k][j]
			}
			assert.InDelta(t, want, got, 1e-7, "i=%d j=%d", i, j)
		}
	}

	// U, V, W form a right-handed orthonormal basis.
	assert.InDelta(t, 1, dot(out.U, out.U), 1e-9)
	assert.InDelta(t, 1, dot(out.V, out.V), 1e-9)
	assert.InDelta(t, 1, dot(out.W, out.W), 1e-9)
	assert.InDelta(t, 0, dot(out.U, out.V), 1e-9)
	assert.InDelta(t, 0, dot(out.U, out.W), 1e-9)
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
