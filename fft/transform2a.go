package fft

import "github.com/andewx/corefft/cerr"

// ApplyRows applies the plan independently to n2 packed-complex rows,
// each row being a contiguous length-N sequence (cx[i2][2*i1],
// cx[i2][2*i1+1] addressing the real/imag parts of complex index i1).
// This is the "dim-1" transform case of §3: every row is transformed
// on its own, in place.
func (c *Complex) ApplyRows(sign int, cx [][]float32) error {
	for i2, row := range cx {
		if err := c.Apply(sign, row, row); err != nil {
			return &wrappedRowErr{i2: i2, err: err}
		}
	}
	return nil
}

type wrappedRowErr struct {
	i2  int
	err error
}

func (e *wrappedRowErr) Error() string { return e.err.Error() }
func (e *wrappedRowErr) Unwrap() error { return e.err }

// ApplyColumns implements the "transform2a" multi-transform strided
// variant of §4.2: it transforms n1 complex elements sharing the same
// outer (dim-2) index simultaneously, one independent length-N
// transform per column i1 = 0 .. n1-1, where N = c.Len() is the number
// of rows in cx. Element (i1, i2) lives at cx[i2][2*i1], cx[i2][2*i1+1].
//
// Because each column's samples are strided through cx rather than
// contiguous, ApplyColumns gathers each column into a scratch buffer,
// calls Apply, and scatters the result back; it does not mutate cx
// until every sample of that column has been read.
func (c *Complex) ApplyColumns(sign int, n1 int, cx [][]float32) error {
	if len(cx) < c.n {
		return &cerr.InsufficientBuffer{Context: "fft.Complex.ApplyColumns (rows)", Required: c.n, Got: len(cx)}
	}
	need := 2 * n1
	for _, row := range cx[:c.n] {
		if len(row) < need {
			return &cerr.InsufficientBuffer{Context: "fft.Complex.ApplyColumns (row)", Required: need, Got: len(row)}
		}
	}

	col := make([]float32, 2*c.n)
	for i1 := 0; i1 < n1; i1++ {
		for i2 := 0; i2 < c.n; i2++ {
			col[2*i2] = cx[i2][2*i1]
			col[2*i2+1] = cx[i2][2*i1+1]
		}
		if err := c.Apply(sign, col, col); err != nil {
			return err
		}
		for i2 := 0; i2 < c.n; i2++ {
			cx[i2][2*i1] = col[2*i2]
			cx[i2][2*i1+1] = col[2*i2+1]
		}
	}
	return nil
}
