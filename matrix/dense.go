// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set/Add return errors instead of panicking.
//   - Bridge to gonum/mat for dense factorizations (ToGonum / DenseFromGonum).
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set/Add: O(1); Clone: O(r*c);
//     Multiply/MultiplyTranspose: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/callow/vector"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"  // method tag used in error wrappers
	ctxSet = "Set" // method tag used in error wrappers
	ctxAdd = "Add" // method tag used in error wrappers
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts (>0)
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Operator     = (*Dense)(nil)
	_ Diagonaler   = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
// MAIN DESCRIPTION:
//   - Public constructor for Dense with strict shape validation.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrBadShape.
//   - Stage 2: allocate zero-filled buffer.
//
// Errors:
//   - ErrBadShape (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFrom copies a rectangular [][]float64 into a new Dense.
// Errors: ErrBadShape (empty or ragged input), ErrNaNInf.
func NewDenseFrom(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrBadShape
	}
	d, err := NewDense(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != d.c {
			return nil, ErrBadShape
		}
		for j, v := range row {
			if err = d.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return d, nil
}

// Rows returns the number of rows.
func (d *Dense) Rows() int { return d.r }

// Cols returns the number of columns.
func (d *Dense) Cols() int { return d.c }

// indexOf validates (i, j) and returns the flat offset.
func (d *Dense) indexOf(method string, i, j int) (int, error) {
	if i < 0 || i >= d.r || j < 0 || j >= d.c {
		return 0, denseErrorf(method, i, j, ErrOutOfRange)
	}

	return i*d.c + j, nil
}

// At returns the element at (i, j).
// Errors: ErrOutOfRange.
func (d *Dense) At(i, j int) (float64, error) {
	k, err := d.indexOf(ctxAt, i, j)
	if err != nil {
		return 0, err
	}

	return d.data[k], nil
}

// Set assigns v at (i, j).
// Errors: ErrOutOfRange, ErrNaNInf.
func (d *Dense) Set(i, j int, v float64) error {
	k, err := d.indexOf(ctxSet, i, j)
	if err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return denseErrorf(ctxSet, i, j, ErrNaNInf)
	}
	d.data[k] = v

	return nil
}

// Add accumulates v into (i, j).
// Errors: ErrOutOfRange, ErrNaNInf.
func (d *Dense) Add(i, j int, v float64) error {
	k, err := d.indexOf(ctxAdd, i, j)
	if err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return denseErrorf(ctxAdd, i, j, ErrNaNInf)
	}
	d.data[k] += v

	return nil
}

// RawRow returns row i as a slice aliasing the internal buffer.
// It panics on an out-of-range row, like slice indexing.
func (d *Dense) RawRow(i int) []float64 {
	return d.data[i*d.c : (i+1)*d.c]
}

// Clone returns a deep copy.
func (d *Dense) Clone() *Dense {
	return &Dense{r: d.r, c: d.c, data: append([]float64(nil), d.data...)}
}

// Multiply computes y = A x.
func (d *Dense) Multiply(x, y vector.Vector) error {
	if err := ValidateMultiply(d.r, d.c, x, y, false); err != nil {
		return matrixErrorf(opMultiply, err)
	}
	for i := 0; i < d.r; i++ {
		y[i] = vector.Vector(d.RawRow(i)).Dot(x)
	}

	return nil
}

// MultiplyTranspose computes y = Aᵗ x.
func (d *Dense) MultiplyTranspose(x, y vector.Vector) error {
	if err := ValidateMultiply(d.r, d.c, x, y, true); err != nil {
		return matrixErrorf(opMultiplyTranspose, err)
	}
	y.Set(0)
	for i := 0; i < d.r; i++ {
		y.AddScaled(x[i], d.RawRow(i))
	}

	return nil
}

// Diagonal writes the main diagonal into dst.
// Errors: ErrNonSquare, ErrDimensionMismatch.
func (d *Dense) Diagonal(dst vector.Vector) error {
	if d.r != d.c {
		return matrixErrorf(opDiagonal, ErrNonSquare)
	}
	if err := ValidateVecLen(dst, d.r); err != nil {
		return matrixErrorf(opDiagonal, err)
	}
	for i := range dst {
		dst[i] = d.data[i*d.c+i]
	}

	return nil
}

// ToGonum returns a gonum copy of d.
func (d *Dense) ToGonum() *mat.Dense {
	return mat.NewDense(d.r, d.c, append([]float64(nil), d.data...))
}

// DenseFromGonum copies any gonum matrix into a new Dense.
// Errors: ErrNilMatrix, ErrBadShape.
func DenseFromGonum(m mat.Matrix) (*Dense, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	r, c := m.Dims()
	d, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		row := d.RawRow(i)
		for j := range row {
			row[j] = m.At(i, j)
		}
	}

	return d, nil
}

// String implements fmt.Stringer with one bracketed row per line.
func (d *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < d.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j, v := range d.RawRow(i) {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%g", v)
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
