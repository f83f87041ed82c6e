package fft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRowsMatchesPerRowApply(t *testing.T) {
	const n, rows = 12, 4
	plan, err := NewComplex(n)
	require.NoError(t, err)

	cx := make([][]float32, rows)
	want := make([][]float32, rows)
	for i := range cx {
		cx[i] = packComplex(randComplex128(n))
		want[i] = make([]float32, 2*n)
		copy(want[i], cx[i])
		require.NoError(t, plan.Apply(1, want[i], want[i]))
	}

	require.NoError(t, plan.ApplyRows(1, cx))
	for i := range cx {
		for j := range cx[i] {
			assert.InDelta(t, want[i][j], cx[i][j], 1e-4)
		}
	}
}

func TestApplyColumnsMatchesPerColumnApply(t *testing.T) {
	const n2, n1 = 12, 3
	plan, err := NewComplex(n2)
	require.NoError(t, err)

	cx := make([][]float32, n2)
	for i2 := range cx {
		cx[i2] = make([]float32, 2*n1)
	}
	cols := make([][]complex128, n1)
	for i1 := range cols {
		cols[i1] = randComplex128(n2)
		for i2 := 0; i2 < n2; i2++ {
			cx[i2][2*i1] = float32(real(cols[i1][i2]))
			cx[i2][2*i1+1] = float32(imag(cols[i1][i2]))
		}
	}

	require.NoError(t, plan.ApplyColumns(1, n1, cx))

	for i1 := range cols {
		want := make([]float32, 2*n2)
		require.NoError(t, plan.Apply(1, packComplex(cols[i1]), want))
		for i2 := 0; i2 < n2; i2++ {
			assert.InDelta(t, want[2*i2], cx[i2][2*i1], 1e-4)
			assert.InDelta(t, want[2*i2+1], cx[i2][2*i1+1], 1e-4)
		}
	}
}
