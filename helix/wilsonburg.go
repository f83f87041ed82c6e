package helix

// Autocorrelation pairs a lag offset with its target autocorrelation
// value r[lag], the input to the Wilson-Burg style refitting routine.
type Autocorrelation struct {
	Offset []int
	R      float64
}

// RefitWilsonBurg is the experimental factorization extension: given a
// target autocorrelation, it nudges f's lag coefficients in place by
// gradient descent on the sum of squared differences between each
// target r[lag] and a0 times the coefficient of the lag with the same
// offset. Cross products between lag coefficients are not included in
// that estimate, a0 is left unchanged, and target entries whose offset
// matches no lag are ignored. This is a simplified stand-in for the full spectral
// factorization, sufficient for the cases where the target
// autocorrelation is already close to the filter's current one; a
// full Wilson-Burg iteration is not implemented.
func RefitWilsonBurg(f *Filter, target []Autocorrelation, iterations int, step float64) {
	if iterations <= 0 || step <= 0 {
		return
	}
	index := make(map[string]int, len(f.lags))
	for i, lag := range f.lags {
		index[key(lag.Offset)] = i
	}

	for iter := 0; iter < iterations; iter++ {
		grad := make([]float64, len(f.lags))
		for _, t := range target {
			idx, ok := index[key(t.Offset)]
			if !ok {
				continue
			}
			current := f.a0 * f.lags[idx].A
			grad[idx] += 2 * (current - t.R) * f.a0
		}
		for i := range f.lags {
			f.lags[i].A -= step * grad[i]
		}
	}
}

func key(offset []int) string {
	b := make([]byte, 0, len(offset)*4)
	for _, v := range offset {
		b = append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}
	return string(b)
}
