// Package cerr defines the failure taxonomy shared by every corefft
// kernel. Each exported type implements error and carries the values
// needed to reconstruct the failure without re-deriving it from the
// call site, the same way gofft's InputSizeError{context, reason,
// value} carries the offending dimension instead of just a formatted
// string.
package cerr

import "fmt"

// InvalidArgument reports a bad construction or call-entry parameter:
// an unsupported sign, an invalid length, a NaN coefficient, or a lag
// table that violates the ordering invariant.
type InvalidArgument struct {
	Context string
	Reason  string
}

func (e *InvalidArgument) Error() string {
	return fmt.Sprintf("%s: invalid argument: %s", e.Context, e.Reason)
}

// InsufficientBuffer reports an input or output array shorter than the
// kernel requires.
type InsufficientBuffer struct {
	Context  string
	Required int
	Got      int
}

func (e *InsufficientBuffer) Error() string {
	return fmt.Sprintf("%s: buffer too small: need %d, got %d", e.Context, e.Required, e.Got)
}

// AliasViolation reports that in and out were passed as the same
// backing array where aliasing is not supported.
type AliasViolation struct {
	Context string
}

func (e *AliasViolation) Error() string {
	return fmt.Sprintf("%s: in and out must not alias", e.Context)
}

// NotConverged reports that an iterative solver reached its iteration
// cap before its residual threshold. It is not fatal: the caller
// receives the last iterate along with this warning.
type NotConverged struct {
	Context       string
	Iterations    int
	ResidualRatio float64
	Target        float64
}

func (e *NotConverged) Error() string {
	return fmt.Sprintf("%s: did not converge after %d iterations: residual ratio %g > target %g",
		e.Context, e.Iterations, e.ResidualRatio, e.Target)
}

// Unreachable reports a programming error: a code path the algorithm's
// analysis guarantees cannot execute for well-formed inputs was
// reached anyway (e.g. the 3x3 Jacobi eigensolver's 100-rotation cap).
type Unreachable struct {
	Context string
	Detail  string
}

func (e *Unreachable) Error() string {
	return fmt.Sprintf("%s: unreachable: %s", e.Context, e.Detail)
}
