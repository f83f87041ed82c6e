package smooth

import "github.com/andewx/corefft/gauss"

// SmoothS2 applies the 2-D "S" smoother: a single pass of a 3x3
// weighted-average stencil (center 1/4, the 4 axis neighbors 1/8
// each, the 4 diagonal neighbors 1/16 each), usable as pre- or
// post-smoothing around the CG core but not part of the CG loop
// itself. Samples outside the field are treated as zero.
func SmoothS2(x []float64, n1, n2 int) []float64 {
	const center, axis, diag = 0.25, 0.125, 0.0625
	y := make([]float64, len(x))
	at := func(i1, i2 int) float64 {
		if i1 < 0 || i1 >= n1 || i2 < 0 || i2 >= n2 {
			return 0
		}
		return x[i1*n2+i2]
	}
	for i1 := 0; i1 < n1; i1++ {
		for i2 := 0; i2 < n2; i2++ {
			v := center * at(i1, i2)
			v += axis * (at(i1-1, i2) + at(i1+1, i2) + at(i1, i2-1) + at(i1, i2+1))
			v += diag * (at(i1-1, i2-1) + at(i1-1, i2+1) + at(i1+1, i2-1) + at(i1+1, i2+1))
			y[i1*n2+i2] = v
		}
	}
	return y
}

// SmoothS3 applies the 3-D "S" smoother: center 1/8, the 6 face
// neighbors 1/16 each, the 12 edge neighbors 1/32 each, and the 8
// corner neighbors 1/64 each.
func SmoothS3(x []float64, n1, n2, n3 int) []float64 {
	const center, face, edge, corner = 0.125, 0.0625, 0.03125, 0.015625
	y := make([]float64, len(x))
	at := func(i1, i2, i3 int) float64 {
		if i1 < 0 || i1 >= n1 || i2 < 0 || i2 >= n2 || i3 < 0 || i3 >= n3 {
			return 0
		}
		return x[(i1*n2+i2)*n3+i3]
	}
	for i1 := 0; i1 < n1; i1++ {
		for i2 := 0; i2 < n2; i2++ {
			for i3 := 0; i3 < n3; i3++ {
				v := center * at(i1, i2, i3)
				for _, d := range [][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}} {
					v += face * at(i1+d[0], i2+d[1], i3+d[2])
				}
				for _, d := range edgeOffsets3 {
					v += edge * at(i1+d[0], i2+d[1], i3+d[2])
				}
				for _, d := range cornerOffsets3 {
					v += corner * at(i1+d[0], i2+d[1], i3+d[2])
				}
				y[(i1*n2+i2)*n3+i3] = v
			}
		}
	}
	return y
}

var edgeOffsets3 = func() [][3]int {
	var out [][3]int
	for _, a := range []int{-1, 0, 1} {
		for _, b := range []int{-1, 0, 1} {
			for _, c := range []int{-1, 0, 1} {
				nz := 0
				if a != 0 {
					nz++
				}
				if b != 0 {
					nz++
				}
				if c != 0 {
					nz++
				}
				if nz == 2 {
					out = append(out, [3]int{a, b, c})
				}
			}
		}
	}
	return out
}()

var cornerOffsets3 = [][3]int{
	{-1, -1, -1}, {-1, -1, 1}, {-1, 1, -1}, {-1, 1, 1},
	{1, -1, -1}, {1, -1, 1}, {1, 1, -1}, {1, 1, 1},
}

// SmoothL2 is the optional isotropic bandpass "L" smoother: the
// difference of two recursive-Gaussian lowpasses (sigmaLow < sigmaHigh)
// applied along both axes, isolating the band of detail between the
// two cutoffs.
func SmoothL2(x []float64, n1, n2 int, sigmaLow, sigmaHigh float64) ([]float64, error) {
	low, err := gauss.NewRecursiveGaussian(sigmaLow)
	if err != nil {
		return nil, err
	}
	high, err := gauss.NewRecursiveGaussian(sigmaHigh)
	if err != nil {
		return nil, err
	}
	v := &gauss.Volume{Shape: []int{n1, n2}, Data: append([]float64(nil), x...)}
	lowOut, err := low.ApplyDerivative(v, []int{0, 0})
	if err != nil {
		return nil, err
	}
	highOut, err := high.ApplyDerivative(v, []int{0, 0})
	if err != nil {
		return nil, err
	}
	band := make([]float64, len(x))
	for i := range band {
		band[i] = lowOut.Data[i] - highOut.Data[i]
	}
	return band, nil
}
