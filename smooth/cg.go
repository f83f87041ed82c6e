package smooth

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/andewx/corefft/cerr"
)

// Smoother2 solves (I + c*G'DG)y = x over a 2-D image by conjugate
// gradients (unpreconditioned unless SetPreconditioned(true) enables
// the diagonal preconditioner), using a tensor field built from
// package eigen.
// It is immutable after construction aside from the configuration
// setters and is safe to reuse across Apply calls; each Apply
// allocates its own CG workspace.
type Smoother2 struct {
	tensor       *TensorField2
	c            float64
	weight       []float64
	small        float64
	niter        int
	precondition bool
}

// NewSmoother2 builds a smoother for the given tensor field and scale
// c. small defaults to 0.01 and niter to 100, matching the published
// stopping rule; use SetStopping to override either.
func NewSmoother2(tensor *TensorField2, c float64) *Smoother2 {
	return &Smoother2{tensor: tensor, c: c, small: 0.01, niter: 100}
}

// SetStopping overrides the CG convergence threshold and iteration cap.
func (s *Smoother2) SetStopping(small float64, niter int) {
	s.small, s.niter = small, niter
}

// SetWeight installs a per-sample scalar that pointwise scales D; nil
// (the default) applies no extra weighting.
func (s *Smoother2) SetWeight(w []float64) { s.weight = w }

// SetPreconditioned toggles the diagonal Jacobi preconditioner.
func (s *Smoother2) SetPreconditioned(on bool) { s.precondition = on }

func (s *Smoother2) weightAt(i int) float64 {
	if s.weight == nil {
		return 1
	}
	return s.weight[i]
}

// gdg computes out = G'DG * y for the whole field, accumulating one
// 2x2-cell contribution at a time: gather averaged-difference
// gradients from the cell's 4 corners, apply the local tensor, then
// scatter with the transpose of the gather stencil.
func (s *Smoother2) gdg(y, out []float64) {
	n1, n2 := s.tensor.N1, s.tensor.N2
	for v := range out {
		out[v] = 0
	}
	for i1 := 0; i1 < n1-1; i1++ {
		for i2 := 0; i2 < n2-1; i2++ {
			idx00 := i1*n2 + i2
			idx10 := (i1+1)*n2 + i2
			idx01 := i1*n2 + i2 + 1
			idx11 := (i1+1)*n2 + i2 + 1

			p00, p10, p01, p11 := y[idx00], y[idx10], y[idx01], y[idx11]
			x1 := 0.5 * ((p10 - p00) + (p11 - p01))
			x2 := 0.5 * ((p01 - p00) + (p11 - p10))

			d00, d01, d11 := s.tensor.At(i1, i2).Matrix()
			w := s.weightAt(idx00)
			y1 := w * (d00*x1 + d01*x2)
			y2 := w * (d01*x1 + d11*x2)

			out[idx00] += -0.5*y1 - 0.5*y2
			out[idx10] += 0.5*y1 - 0.5*y2
			out[idx01] += -0.5*y1 + 0.5*y2
			out[idx11] += 0.5*y1 + 0.5*y2
		}
	}
}

// matvec computes out = A*y = y + c*G'DG*y.
func (s *Smoother2) matvec(y, out, scratch []float64) {
	s.gdg(y, scratch)
	for i := range out {
		out[i] = y[i] + s.c*scratch[i]
	}
}

// diagPrecond builds the Jacobi preconditioner P[i] = 1/(1+local
// diagonal tensor contribution at i), summing the contribution of
// every cell touching sample i.
func (s *Smoother2) diagPrecond() []float64 {
	n1, n2 := s.tensor.N1, s.tensor.N2
	diag := make([]float64, n1*n2)
	for i1 := 0; i1 < n1-1; i1++ {
		for i2 := 0; i2 < n2-1; i2++ {
			d00, _, d11 := s.tensor.At(i1, i2).Matrix()
			w := s.weightAt(i1*n2 + i2)
			contrib := 0.25 * w * (d00 + d11)
			diag[i1*n2+i2] += contrib
			diag[(i1+1)*n2+i2] += contrib
			diag[i1*n2+i2+1] += contrib
			diag[(i1+1)*n2+i2+1] += contrib
		}
	}
	p := make([]float64, len(diag))
	for i, v := range diag {
		p[i] = 1 / (1 + s.c*v)
	}
	return p
}

// Apply solves (I + c*G'DG)y = x, returning y. If the iteration cap is
// reached before the residual target, Apply still returns the last
// iterate together with a non-fatal *cerr.NotConverged.
func (s *Smoother2) Apply(x []float64) ([]float64, error) {
	n := s.tensor.N1 * s.tensor.N2
	if len(x) != n {
		return nil, &cerr.InsufficientBuffer{Context: "smooth.Smoother2.Apply", Required: n, Got: len(x)}
	}

	y := append([]float64(nil), x...)
	r := make([]float64, n)
	q := make([]float64, n)
	d := make([]float64, n)
	scratch := make([]float64, n)

	s.matvec(y, q, scratch)
	for i := range r {
		r[i] = x[i] - q[i]
	}

	var precond []float64
	sVec := make([]float64, n)
	if s.precondition {
		precond = s.diagPrecond()
	}

	applyPrecond := func(r, s0 []float64) {
		if precond == nil {
			copy(s0, r)
			return
		}
		for i := range s0 {
			s0[i] = precond[i] * r[i]
		}
	}
	applyPrecond(r, sVec)
	copy(d, sVec)

	bNorm := math.Sqrt(floats.Dot(x, x))
	if bNorm == 0 {
		return y, nil
	}
	rsOld := floats.Dot(r, sVec)

	for iter := 0; iter < s.niter; iter++ {
		rNorm := math.Sqrt(floats.Dot(r, r))
		if rNorm <= s.small*bNorm {
			return y, nil
		}

		s.matvec(d, q, scratch)
		dq := floats.Dot(d, q)
		if dq == 0 {
			break
		}
		alpha := rsOld / dq
		for i := range y {
			y[i] += alpha * d[i]
		}

		if (iter+1)%50 == 0 {
			s.matvec(y, q, scratch)
			for i := range r {
				r[i] = x[i] - q[i]
			}
		} else {
			for i := range r {
				r[i] -= alpha * q[i]
			}
		}

		applyPrecond(r, sVec)
		rsNew := floats.Dot(r, sVec)
		beta := rsNew / rsOld
		for i := range d {
			d[i] = sVec[i] + beta*d[i]
		}
		rsOld = rsNew
	}

	finalNorm := math.Sqrt(floats.Dot(r, r))
	if finalNorm <= s.small*bNorm {
		return y, nil
	}
	return y, &cerr.NotConverged{
		Context:       "smooth.Smoother2.Apply",
		Iterations:    s.niter,
		ResidualRatio: finalNorm / bNorm,
		Target:        s.small,
	}
}

// Smoother3 is the 3-D analogue of Smoother2. Its A-product sweeps
// cells grouped by the parity of the cell anchor's i3 index (odd i3
// slices, then even ones; i3 is the fastest-varying axis of
// TensorField3's layout); cells within one parity group never share a
// corner, so that group's scatter-accumulate runs safely in parallel
// goroutines.
type Smoother3 struct {
	tensor       *TensorField3
	c            float64
	weight       []float64
	small        float64
	niter        int
	precondition bool
	parallel     bool
}

// NewSmoother3 builds a 3-D smoother for the given tensor field and
// scale c, with the same default stopping rule as NewSmoother2.
func NewSmoother3(tensor *TensorField3, c float64) *Smoother3 {
	return &Smoother3{tensor: tensor, c: c, small: 0.01, niter: 100}
}

func (s *Smoother3) SetStopping(small float64, niter int) { s.small, s.niter = small, niter }
func (s *Smoother3) SetWeight(w []float64)                { s.weight = w }
func (s *Smoother3) SetPreconditioned(on bool)            { s.precondition = on }
func (s *Smoother3) SetParallel(on bool)                  { s.parallel = on }

func (s *Smoother3) weightAt(i int) float64 {
	if s.weight == nil {
		return 1
	}
	return s.weight[i]
}

func (s *Smoother3) cellCorners(i1, i2, i3 int) (c000, c100, c010, c110, c001, c101, c011, c111 int) {
	n2, n3 := s.tensor.N2, s.tensor.N3
	base := func(a1, a2, a3 int) int { return (a1*n2+a2)*n3 + a3 }
	return base(i1, i2, i3), base(i1+1, i2, i3), base(i1, i2+1, i3), base(i1+1, i2+1, i3),
		base(i1, i2, i3+1), base(i1+1, i2, i3+1), base(i1, i2+1, i3+1), base(i1+1, i2+1, i3+1)
}

// accumulateCell gathers the averaged-difference gradient over one
// 2x2x2 cell anchored at (i1,i2,i3), applies the local tensor, and
// scatters the transpose stencil into out.
func (s *Smoother3) accumulateCell(y, out []float64, i1, i2, i3 int) {
	c000, c100, c010, c110, c001, c101, c011, c111 := s.cellCorners(i1, i2, i3)
	p000, p100, p010, p110 := y[c000], y[c100], y[c010], y[c110]
	p001, p101, p011, p111 := y[c001], y[c101], y[c011], y[c111]

	x1 := 0.25 * ((p100 - p000) + (p110 - p010) + (p101 - p001) + (p111 - p011))
	x2 := 0.25 * ((p010 - p000) + (p110 - p100) + (p011 - p001) + (p111 - p101))
	x3 := 0.25 * ((p001 - p000) + (p101 - p100) + (p011 - p010) + (p111 - p110))

	d00, d01, d02, d11, d12, d22 := s.tensor.At(i1, i2, i3).Matrix()
	w := s.weightAt(c000)
	y1 := w * (d00*x1 + d01*x2 + d02*x3)
	y2 := w * (d01*x1 + d11*x2 + d12*x3)
	y3 := w * (d02*x1 + d12*x2 + d22*x3)

	sign := func(s1, s2, s3 float64) float64 { return s1*y1 + s2*y2 + s3*y3 }
	out[c000] += 0.25 * sign(-1, -1, -1)
	out[c100] += 0.25 * sign(1, -1, -1)
	out[c010] += 0.25 * sign(-1, 1, -1)
	out[c110] += 0.25 * sign(1, 1, -1)
	out[c001] += 0.25 * sign(-1, -1, 1)
	out[c101] += 0.25 * sign(1, -1, 1)
	out[c011] += 0.25 * sign(-1, 1, 1)
	out[c111] += 0.25 * sign(1, 1, 1)
}

func (s *Smoother3) gdg(y, out []float64) {
	n1, n2, n3 := s.tensor.N1, s.tensor.N2, s.tensor.N3
	for v := range out {
		out[v] = 0
	}
	sweep := func(parity int) {
		for i3 := 0; i3 < n3-1; i3++ {
			if i3%2 != parity {
				continue
			}
			for i1 := 0; i1 < n1-1; i1++ {
				for i2 := 0; i2 < n2-1; i2++ {
					s.accumulateCell(y, out, i1, i2, i3)
				}
			}
		}
	}
	if !s.parallel {
		sweep(1)
		sweep(0)
		return
	}
	for _, parity := range []int{1, 0} {
		var wg sync.WaitGroup
		numWorkers := 4
		for w := 0; w < numWorkers; w++ {
			wg.Add(1)
			go func(worker int) {
				defer wg.Done()
				for i3 := worker; i3 < n3-1; i3 += numWorkers {
					if i3%2 != parity {
						continue
					}
					for i1 := 0; i1 < n1-1; i1++ {
						for i2 := 0; i2 < n2-1; i2++ {
							s.accumulateCell(y, out, i1, i2, i3)
						}
					}
				}
			}(w)
		}
		wg.Wait()
	}
}

func (s *Smoother3) matvec(y, out, scratch []float64) {
	s.gdg(y, scratch)
	for i := range out {
		out[i] = y[i] + s.c*scratch[i]
	}
}

// diagPrecond builds the 3-D Jacobi preconditioner P[i] = 1/(1+local
// diagonal tensor contribution at i), the same construction as
// Smoother2.diagPrecond generalized to the 8-corner cell: each of the
// 2x2x2 cell's 8 corners receives 1/8 of the cell's d00+d11+d22
// contribution instead of the 2-D cell's 4 corners each receiving 1/4.
func (s *Smoother3) diagPrecond() []float64 {
	n1, n2, n3 := s.tensor.N1, s.tensor.N2, s.tensor.N3
	diag := make([]float64, n1*n2*n3)
	for i1 := 0; i1 < n1-1; i1++ {
		for i2 := 0; i2 < n2-1; i2++ {
			for i3 := 0; i3 < n3-1; i3++ {
				c000, c100, c010, c110, c001, c101, c011, c111 := s.cellCorners(i1, i2, i3)
				d00, _, _, d11, _, d22 := s.tensor.At(i1, i2, i3).Matrix()
				w := s.weightAt(c000)
				contrib := 0.125 * w * (d00 + d11 + d22)
				diag[c000] += contrib
				diag[c100] += contrib
				diag[c010] += contrib
				diag[c110] += contrib
				diag[c001] += contrib
				diag[c101] += contrib
				diag[c011] += contrib
				diag[c111] += contrib
			}
		}
	}
	p := make([]float64, len(diag))
	for i, v := range diag {
		p[i] = 1 / (1 + s.c*v)
	}
	return p
}

// Apply solves (I + c*G'DG)y = x over the 3-D field.
func (s *Smoother3) Apply(x []float64) ([]float64, error) {
	n := s.tensor.N1 * s.tensor.N2 * s.tensor.N3
	if len(x) != n {
		return nil, &cerr.InsufficientBuffer{Context: "smooth.Smoother3.Apply", Required: n, Got: len(x)}
	}

	y := append([]float64(nil), x...)
	r := make([]float64, n)
	q := make([]float64, n)
	d := make([]float64, n)
	scratch := make([]float64, n)

	s.matvec(y, q, scratch)
	for i := range r {
		r[i] = x[i] - q[i]
	}

	var precond []float64
	sVec := make([]float64, n)
	if s.precondition {
		precond = s.diagPrecond()
	}

	applyPrecond := func(r, s0 []float64) {
		if precond == nil {
			copy(s0, r)
			return
		}
		for i := range s0 {
			s0[i] = precond[i] * r[i]
		}
	}
	applyPrecond(r, sVec)
	copy(d, sVec)

	bNorm := math.Sqrt(floats.Dot(x, x))
	if bNorm == 0 {
		return y, nil
	}
	rsOld := floats.Dot(r, sVec)

	for iter := 0; iter < s.niter; iter++ {
		rNorm := math.Sqrt(floats.Dot(r, r))
		if rNorm <= s.small*bNorm {
			return y, nil
		}

		s.matvec(d, q, scratch)
		dq := floats.Dot(d, q)
		if dq == 0 {
			break
		}
		alpha := rsOld / dq
		for i := range y {
			y[i] += alpha * d[i]
		}

		if (iter+1)%50 == 0 {
			s.matvec(y, q, scratch)
			for i := range r {
				r[i] = x[i] - q[i]
			}
		} else {
			for i := range r {
				r[i] -= alpha * q[i]
			}
		}

		applyPrecond(r, sVec)
		rsNew := floats.Dot(r, sVec)
		beta := rsNew / rsOld
		for i := range d {
			d[i] = sVec[i] + beta*d[i]
		}
		rsOld = rsNew
	}

	finalNorm := math.Sqrt(floats.Dot(r, r))
	if finalNorm <= s.small*bNorm {
		return y, nil
	}
	return y, &cerr.NotConverged{
		Context:       "smooth.Smoother3.Apply",
		Iterations:    s.niter,
		ResidualRatio: finalNorm / bNorm,
		Target:        s.small,
	}
}
