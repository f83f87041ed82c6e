// Package eigen implements the symmetric 2x2 and 3x3 eigen-decomposition
// kernels (C1) that the anisotropic smoother (package smooth) uses to
// turn a structure tensor into an orthonormal frame and an ordered pair
// (or triple) of eigenvalues.
package eigen

import (
	"math"

	"github.com/andewx/corefft/cerr"
)

// eps is the Jacobi rotation's small-angle threshold, the square root
// of float64 machine epsilon divided by 10, per §4.1.
var eps = math.Sqrt(2.220446049250313e-16) / 10

// Sym2 is the eigen-decomposition of a symmetric 2x2 matrix
//
//	A = [[a00, a01], [a01, a11]]
//
// Au and Av are the eigenvalues (Au >= Av); U is the unit eigenvector
// for Au, oriented so U[0] >= 0. The second eigenvector is never
// returned explicitly: callers derive it as V = (U[1], -U[0]).
type Sym2 struct {
	Au, Av float64
	U      [2]float64
}

// Decompose2 computes the Jacobi rotation that diagonalizes a
// symmetric 2x2 matrix. It never fails for finite input; NaN in
// propagates to NaN out, matching §4.1 ("fails only if the input
// contains NaN", i.e. there is no distinct failure path - the IEEE
// NaN propagation through the arithmetic below is the signal).
func Decompose2(a00, a01, a11 float64) Sym2 {
	var c, s float64 = 1, 0
	if a01 != 0 {
		u := a11 - a00
		var t float64
		if math.Abs(a01) < eps*math.Abs(u) {
			t = a01 / u
		} else {
			r := 0.5 * u / a01
			if r >= 0 {
				t = 1 / (r + math.Sqrt(1+r*r))
			} else {
				t = 1 / (r - math.Sqrt(1+r*r))
			}
		}
		c = 1 / math.Sqrt(1+t*t)
		s = t * c
	}

	// Rotated diagonal entries: lam0 = c^2 a00 - 2 c s a01 + s^2 a11,
	// and symmetrically for lam1. The corresponding eigenvector for
	// lam0 is the rotation's first column (c, -s).
	lam0 := a00*c*c - 2*c*s*a01 + a11*s*s
	lam1 := a00*s*s + 2*c*s*a01 + a11*c*c
	u0 := [2]float64{c, -s}
	u1 := [2]float64{s, c}

	var out Sym2
	if lam0 >= lam1 {
		out.Au, out.Av = lam0, lam1
		out.U = u0
	} else {
		out.Au, out.Av = lam1, lam0
		out.U = u1
	}
	if out.U[0] < 0 {
		out.U[0], out.U[1] = -out.U[0], -out.U[1]
	}
	return out
}

// Sym3 is the eigen-decomposition of a symmetric 3x3 matrix: ordered
// eigenvalues Lambda[0] >= Lambda[1] >= Lambda[2], and an orthonormal
// frame U (for Lambda[0]), V (for Lambda[1]), W = U x V (for
// Lambda[2]), with U[0] >= 0.
type Sym3 struct {
	Lambda  [3]float64
	U, V, W [3]float64
}

// Decompose3 diagonalizes a symmetric 3x3 matrix by cyclic Jacobi
// rotation on the largest-magnitude off-diagonal element, stopping
// when all three off-diagonals are exactly zero. The classical Jacobi
// convergence bound never requires more than a few dozen rotations in
// double precision for a 3x3 matrix; reaching the 100-rotation cap
// without converging indicates a construction bug (NaN/Inf input
// bypassing the usual contraction), reported as *cerr.Unreachable
// rather than silently returning a partial result.
func Decompose3(a [3][3]float64) (Sym3, error) {
	v := [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	for iter := 0; ; iter++ {
		p, q, maxOff := offDiagPivot(a)
		if maxOff == 0 {
			break
		}
		if iter >= 100 {
			return Sym3{}, &cerr.Unreachable{Context: "eigen.Decompose3", Detail: "Jacobi rotation cap (100) reached"}
		}
		jacobiRotate3(&a, &v, p, q)
	}

	lam := [3]float64{a[0][0], a[1][1], a[2][2]}
	idx := [3]int{0, 1, 2}
	// Insertion sort descending by eigenvalue; stable for 3 elements.
	for i := 1; i < 3; i++ {
		for j := i; j > 0 && lam[idx[j-1]] < lam[idx[j]]; j-- {
			idx[j-1], idx[j] = idx[j], idx[j-1]
		}
	}

	var out Sym3
	out.Lambda = [3]float64{lam[idx[0]], lam[idx[1]], lam[idx[2]]}
	for k := 0; k < 3; k++ {
		out.U[k] = v[k][idx[0]]
		out.V[k] = v[k][idx[1]]
	}
	if out.U[0] < 0 {
		out.U[0], out.U[1], out.U[2] = -out.U[0], -out.U[1], -out.U[2]
	}
	out.W = cross(out.U, out.V)
	return out, nil
}

func offDiagPivot(a [3][3]float64) (p, q int, max float64) {
	abs01, abs02, abs12 := math.Abs(a[0][1]), math.Abs(a[0][2]), math.Abs(a[1][2])
	p, q, max = 0, 1, abs01
	if abs02 > max {
		p, q, max = 0, 2, abs02
	}
	if abs12 > max {
		p, q, max = 1, 2, abs12
	}
	return p, q, max
}

// jacobiRotate3 eliminates a[p][q] by a single Jacobi rotation in the
// (p,q) plane, updating a in place and accumulating the rotation into
// v's columns.
func jacobiRotate3(a *[3][3]float64, v *[3][3]float64, p, q int) {
	app, aqq, apq := a[p][p], a[q][q], a[p][q]
	if apq == 0 {
		return
	}
	theta := (aqq - app) / (2 * apq)
	var t float64
	if theta >= 0 {
		t = 1 / (theta + math.Sqrt(1+theta*theta))
	} else {
		t = 1 / (theta - math.Sqrt(1+theta*theta))
	}
	c := 1 / math.Sqrt(1+t*t)
	s := t * c

	r := [3]int{0, 1, 2}
	var k int
	for _, idx := range r {
		if idx != p && idx != q {
			k = idx
		}
	}
	akp, akq := a[k][p], a[k][q]
	a[k][p] = c*akp - s*akq
	a[p][k] = a[k][p]
	a[k][q] = s*akp + c*akq
	a[q][k] = a[k][q]
	a[p][p] = app - t*apq
	a[q][q] = aqq + t*apq
	a[p][q] = 0
	a[q][p] = 0

	for row := 0; row < 3; row++ {
		vp, vq := v[row][p], v[row][q]
		v[row][p] = c*vp - s*vq
		v[row][q] = s*vp + c*vq
	}
}

func cross(u, v [3]float64) [3]float64 {
	return [3]float64{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
}
