package helix

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a 1-D causal filter y[i] = x[i] - 0.5*x[i-1] is a minimal, provably
// minimum-phase helix filter (pole at z=0.5, inside the unit circle
// for the inverse's z^-1 ... region of convergence).
func simple1D(t *testing.T) *Filter {
	t.Helper()
	f, err := NewMinPhaseFilter([]int{16}, 1, []Lag{{Offset: []int{1}, A: -0.5}})
	require.NoError(t, err)
	return f
}

func TestApplyKnownSequence(t *testing.T) {
	f := simple1D(t)
	x := make([]float64, 16)
	x[0] = 1
	y := make([]float64, 16)
	require.NoError(t, f.Apply(x, y))
	assert.InDelta(t, 1, y[0], 1e-12)
	assert.InDelta(t, -0.5, y[1], 1e-12)
	for i := 2; i < 16; i++ {
		assert.InDelta(t, 0, y[i], 1e-12)
	}
}

// TestInverseRoundTrip is property: ApplyInverse(Apply(x)) recovers x.
func TestInverseRoundTrip(t *testing.T) {
	f := simple1D(t)
	x := make([]float64, 16)
	for i := range x {
		x[i] = float64(i%5) - 2
	}
	y := make([]float64, 16)
	require.NoError(t, f.Apply(x, y))
	back := make([]float64, 16)
	require.NoError(t, f.ApplyInverse(y, back))
	for i := range x {
		assert.InDelta(t, x[i], back[i], 1e-9)
	}
}

// TestInverseTransposeRoundTrip mirrors TestInverseRoundTrip for the
// transpose operator pair.
func TestInverseTransposeRoundTrip(t *testing.T) {
	f := simple1D(t)
	x := make([]float64, 16)
	for i := range x {
		x[i] = float64(i%7) - 3
	}
	y := make([]float64, 16)
	require.NoError(t, f.ApplyTranspose(x, y))
	back := make([]float64, 16)
	require.NoError(t, f.ApplyInverseTranspose(y, back))
	for i := range x {
		assert.InDelta(t, x[i], back[i], 1e-9)
	}
}

func TestTransposeIsTimeReversedConvolution(t *testing.T) {
	f := simple1D(t)
	x := make([]float64, 16)
	x[15] = 1
	y := make([]float64, 16)
	require.NoError(t, f.ApplyTranspose(x, y))
	assert.InDelta(t, 1, y[15], 1e-12)
	assert.InDelta(t, -0.5, y[14], 1e-12)
}

func TestNewMinPhaseFilterRejectsZeroA0(t *testing.T) {
	_, err := NewMinPhaseFilter([]int{8}, 0, nil)
	require.Error(t, err)
}

func TestNewMinPhaseFilterRejectsMismatchedLagDim(t *testing.T) {
	_, err := NewMinPhaseFilter([]int{8, 8}, 1, []Lag{{Offset: []int{1}, A: 0.3}})
	require.Error(t, err)
}

func Test2DBoundaryMasking(t *testing.T) {
	// Shape [4,4]; lag (1,0) reads the previous row. Row 0 has no
	// predecessor, so its output must equal a0*x alone.
	f, err := NewMinPhaseFilter([]int{4, 4}, 1, []Lag{{Offset: []int{1, 0}, A: 0.25}})
	require.NoError(t, err)
	x := make([]float64, 16)
	for i := range x {
		x[i] = float64(i + 1)
	}
	y := make([]float64, 16)
	require.NoError(t, f.Apply(x, y))
	for col := 0; col < 4; col++ {
		assert.InDelta(t, x[col], y[col], 1e-12, "row 0 col %d", col)
	}
	for col := 0; col < 4; col++ {
		want := x[4+col] + 0.25*x[col]
		assert.InDelta(t, want, y[4+col], 1e-12, "row 1 col %d", col)
	}
}

func TestRefitWilsonBurgMovesTowardTarget(t *testing.T) {
	f := simple1D(t)
	const target = -0.9
	before := f.lags[0].A
	RefitWilsonBurg(f, []Autocorrelation{{Offset: []int{1}, R: target}}, 50, 0.1)
	assert.Less(t, math.Abs(f.lags[0].A-target), math.Abs(before-target))
}
