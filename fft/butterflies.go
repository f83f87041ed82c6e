package fft

// radixButterfly computes the length-p discrete Fourier transform of
// x (p in {2,3,4,5,7,8,9,11,13,16}). Factors 2, 3, 4 and 5 are
// dispatched to the hand-expanded radix2 .. radix5, which need no
// table lookup; every other factor goes through the single
// parameterized radixGeneric, which reads the precomputed per-factor
// twiddle table built in buildFactorTwiddles, instead of ten
// hand-unrolled straight-line programs (see DESIGN.md).
func radixButterfly(p int, x []complex128, sign int) []complex128 {
	switch p {
	case 2:
		return radix2(x)
	case 3:
		return radix3(x, sign)
	case 4:
		return radix4(x, sign)
	case 5:
		return radix5(x, sign)
	default:
		return radixGeneric(p, x, sign)
	}
}

func radix2(x []complex128) []complex128 {
	x0, x1 := x[0], x[1]
	return []complex128{x0 + x1, x0 - x1}
}

func radix3(x []complex128, sign int) []complex128 {
	// Hand expansion of the size-3 DFT using the standard 120-degree
	// rotation constants (c120, s120), rather than the generic table
	// lookup: X0 = x0+x1+x2; X1/X2 are the usual +/-120 deg rotations.
	sgn := 1.0
	if sign < 0 {
		sgn = -1.0
	}
	t1 := x[1] + x[2]
	t2 := x[0] + complex(c120, 0)*t1
	t3 := complex(0, sgn*s120) * (x[1] - x[2])
	X0 := x[0] + t1
	X1 := t2 + t3
	X2 := t2 - t3
	return []complex128{X0, X1, X2}
}

func radix4(x []complex128, sign int) []complex128 {
	sgn := complex(0, 1)
	if sign < 0 {
		sgn = complex(0, -1)
	}
	t0 := x[0] + x[2]
	t1 := x[0] - x[2]
	t2 := x[1] + x[3]
	t3 := sgn * (x[1] - x[3])
	return []complex128{
		t0 + t2,
		t1 + t3,
		t0 - t2,
		t1 - t3,
	}
}

func radix5(x []complex128, sign int) []complex128 {
	sgn := 1.0
	if sign < 0 {
		sgn = -1.0
	}
	out := make([]complex128, 5)
	// Direct summation using the cos72/sin72/cos144/sin144 constants
	// computed in constants.go, in the standard Rader/Bluestein-free
	// 5-point closed form.
	a1 := x[1] + x[4]
	a2 := x[2] + x[3]
	b1 := x[1] - x[4]
	b2 := x[2] - x[3]
	X0 := x[0] + a1 + a2
	re1 := real(x[0]) + c072*real(a1) + c144*real(a2)
	im1 := imag(x[0]) + c072*imag(a1) + c144*imag(a2)
	re2 := real(x[0]) + c144*real(a1) + c072*real(a2)
	im2 := imag(x[0]) + c144*imag(a1) + c072*imag(a2)
	s1 := sgn * s072
	s2 := sgn * s144
	imPart1 := s1*real(b1) + s2*real(b2)
	rePart1 := -(s1*imag(b1) + s2*imag(b2))
	imPart2 := s2*real(b1) - s1*real(b2)
	rePart2 := -(s2*imag(b1) - s1*imag(b2))
	X1 := complex(re1+rePart1, im1+imPart1)
	X4 := complex(re1-rePart1, im1-imPart1)
	X2 := complex(re2+rePart2, im2+imPart2)
	X3 := complex(re2-rePart2, im2-imPart2)
	out[0], out[1], out[2], out[3], out[4] = X0, X1, X2, X3, X4
	return out
}

// radixGeneric evaluates the length-p DFT directly from the
// precomputed per-factor twiddle table for the larger coprime
// factors (7, 8, 9, 11, 13, 16), none of which benefit enough from
// hand expansion to justify the extra code. The table for the
// requested sign is selected once before the accumulation loop, so
// the loop body itself is a straight-line multiply-accumulate with no
// per-element branch.
func radixGeneric(p int, x []complex128, sign int) []complex128 {
	tw := factorTwiddles[p]
	if sign < 0 {
		tw = factorTwiddlesInv[p]
	}
	out := make([]complex128, p)
	for k := 0; k < p; k++ {
		var sum complex128
		for n := 0; n < p; n++ {
			idx := (n * k) % p
			sum += x[n] * complex(tw.cos[idx], tw.sin[idx])
		}
		out[k] = sum
	}
	return out
}
