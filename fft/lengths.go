package fft

import "sort"

// The factor groups below make up the prime-factor-algorithm factor set
// F from which a valid transform length is built: at most one
// power-of-two member, at
// most one power-of-three member, and any subset of the remaining
// primes, each used at most once. That grouping (rather than "any
// subset of all ten factors") is what keeps every chosen combination
// pairwise coprime, which is the property the self-sorting stage
// construction in Complex depends on.
var (
	pow2Factors   = []int{1, 2, 4, 8, 16}
	pow3Factors   = []int{1, 3, 9}
	singleFactors = []int{5, 7, 11, 13}
)

// MaxLength is the largest representable transform length: the product
// of the largest member of every coprime factor group (16*9*5*7*11*13).
const MaxLength = 16 * 9 * 5 * 7 * 11 * 13

// validLengths is the sorted, deduplicated table of every length
// reachable by the factor grouping above. It is built once at package
// init instead of transcribed as a literal list of magic numbers; it
// is a fixed, immutable table that never depends on the arguments to
// a particular transform.
var validLengths = buildValidLengths()

func buildValidLengths() []int {
	set := make(map[int]struct{})
	for _, a := range pow2Factors {
		for _, b := range pow3Factors {
			base := a * b
			// Each of the 16 subsets of singleFactors, including empty.
			for mask := 0; mask < 16; mask++ {
				n := base
				for i, f := range singleFactors {
					if mask&(1<<i) != 0 {
						n *= f
					}
				}
				set[n] = struct{}{}
			}
		}
	}
	out := make([]int, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// factorize returns the pairwise-coprime factor decomposition of a
// valid length, largest factor first, matching the descending-factor
// stage order Complex applies.
func factorize(n int) []int {
	var factors []int
	rem := n
	for _, f := range []int{16, 9, 13, 11, 8, 7, 4, 3, 5, 2} {
		if rem%f == 0 {
			factors = append(factors, f)
			rem /= f
		}
	}
	if rem != 1 {
		// n was not a member of validLengths; caller must have
		// checked IsValidLength first.
		return nil
	}
	sort.Sort(sort.Reverse(sort.IntSlice(factors)))
	return factors
}

// IsValidLength reports whether n appears in the PFA valid-length
// table.
func IsValidLength(n int) bool {
	i := sort.SearchInts(validLengths, n)
	return i < len(validLengths) && validLengths[i] == n
}

// NFFTSmall returns the smallest valid transform length N >= n, found
// by lower-bound search over the sorted valid-length table. It panics
// if n exceeds MaxLength, since no valid length can satisfy the
// request; callers at an API boundary should check n against MaxLength
// themselves if they want an error instead.
func NFFTSmall(n int) int {
	if n <= 1 {
		return 1
	}
	i := sort.SearchInts(validLengths, n)
	if i == len(validLengths) {
		panic("fft: no valid length >= n (n exceeds MaxLength)")
	}
	return validLengths[i]
}

// NFFTFast is identical to NFFTSmall in this revision: the "fast"
// length heuristic is a reserved extension point, not a distinct
// algorithm, per the source this library generalizes.
func NFFTFast(n int) int {
	return NFFTSmall(n)
}
