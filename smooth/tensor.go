// Package smooth implements local anisotropic smoothing (C6): a
// conjugate-gradient solution of (I + c*G'DG)y = x where D is a
// spatially-varying structure tensor built from the eigen package, G
// is a first-order finite-difference gradient, and c is a scale.
package smooth

import (
	"github.com/andewx/corefft/cerr"
	"github.com/andewx/corefft/eigen"
)

// Tensor2 is the per-sample eigen-decomposed 2x2 tensor representation
// shared with package eigen: A = au*u*u' + av*v*v', v = (u2,-u1),
// u1 >= 0, au >= av >= 0.
type Tensor2 struct {
	U1, U2, Au, Av float64
}

// Matrix reconstructs the symmetric entries (d00, d01, d11) of A.
func (t Tensor2) Matrix() (d00, d01, d11 float64) {
	v1, v2 := t.U2, -t.U1
	d00 = t.Au*t.U1*t.U1 + t.Av*v1*v1
	d01 = t.Au*t.U1*t.U2 + t.Av*v1*v2
	d11 = t.Au*t.U2*t.U2 + t.Av*v2*v2
	return
}

// TensorField2 is an n1-by-n2 field of Tensor2 samples, row-major with
// axis 2 varying fastest.
type TensorField2 struct {
	N1, N2 int
	T      []Tensor2
}

// EigenTensors2 allocates an n1-by-n2 tensor field initialized to the
// identity tensor (au=av=1) at every sample.
func EigenTensors2(n1, n2 int) *TensorField2 {
	f := &TensorField2{N1: n1, N2: n2, T: make([]Tensor2, n1*n2)}
	for i := range f.T {
		f.T[i] = Tensor2{U1: 1, U2: 0, Au: 1, Av: 1}
	}
	return f
}

func (f *TensorField2) index(i1, i2 int) int { return i1*f.N2 + i2 }

// At returns the tensor stored at (i1, i2).
func (f *TensorField2) At(i1, i2 int) Tensor2 { return f.T[f.index(i1, i2)] }

// SetFromMatrix decomposes the symmetric matrix (a00,a01,a11) with
// package eigen and stores its oriented quadruple at (i1, i2).
func (f *TensorField2) SetFromMatrix(i1, i2 int, a00, a01, a11 float64) {
	d := eigen.Decompose2(a00, a01, a11)
	f.T[f.index(i1, i2)] = Tensor2{U1: d.U[0], U2: d.U[1], Au: d.Au, Av: d.Av}
}

// Tensor3 is the per-sample eigen-decomposed 3x3 tensor representation
// for the 3-D anisotropic smoother.
type Tensor3 struct {
	U, V, W [3]float64
	Lambda  [3]float64
}

// Matrix reconstructs the six independent entries of the symmetric 3x3
// tensor A = sum_k Lambda[k] * vec_k * vec_k'.
func (t Tensor3) Matrix() (d00, d01, d02, d11, d12, d22 float64) {
	vecs := [3][3]float64{t.U, t.V, t.W}
	for k := 0; k < 3; k++ {
		l := t.Lambda[k]
		v := vecs[k]
		d00 += l * v[0] * v[0]
		d01 += l * v[0] * v[1]
		d02 += l * v[0] * v[2]
		d11 += l * v[1] * v[1]
		d12 += l * v[1] * v[2]
		d22 += l * v[2] * v[2]
	}
	return
}

// TensorField3 is an n1-by-n2-by-n3 field of Tensor3 samples, row-major
// with axis 3 varying fastest.
type TensorField3 struct {
	N1, N2, N3 int
	T          []Tensor3
}

// EigenTensors3 allocates an n1-by-n2-by-n3 tensor field initialized
// to the identity tensor at every sample.
func EigenTensors3(n1, n2, n3 int) *TensorField3 {
	f := &TensorField3{N1: n1, N2: n2, N3: n3, T: make([]Tensor3, n1*n2*n3)}
	for i := range f.T {
		f.T[i] = Tensor3{
			U:      [3]float64{1, 0, 0},
			V:      [3]float64{0, 1, 0},
			W:      [3]float64{0, 0, 1},
			Lambda: [3]float64{1, 1, 1},
		}
	}
	return f
}

func (f *TensorField3) index(i1, i2, i3 int) int { return (i1*f.N2+i2)*f.N3 + i3 }

// At returns the tensor stored at (i1, i2, i3).
func (f *TensorField3) At(i1, i2, i3 int) Tensor3 { return f.T[f.index(i1, i2, i3)] }

// SetFromMatrix decomposes the symmetric 3x3 matrix a with package
// eigen and stores its oriented frame at (i1, i2, i3).
func (f *TensorField3) SetFromMatrix(i1, i2, i3 int, a [3][3]float64) error {
	d, err := eigen.Decompose3(a)
	if err != nil {
		return &cerr.Unreachable{Context: "smooth.TensorField3.SetFromMatrix", Detail: err.Error()}
	}
	f.T[f.index(i1, i2, i3)] = Tensor3{U: d.U, V: d.V, W: d.W, Lambda: d.Lambda}
	return nil
}
