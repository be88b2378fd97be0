// SPDX-License-Identifier: MIT

// ILU(0) - incomplete LU factorization with zero fill-in.
//
// Implementation:
//   - Stage 1: clone the assembled sparse operator; the clone holds L and U
//     in place (unit lower L strictly below the diagonal, U on and above).
//   - Stage 2: IKJ elimination row by row. A work array iw maps a column to
//     its position in the current row, so updates a_ij -= a_ik*a_kj touch
//     only positions already in the pattern.
//
// Complexity:
//   - Factor: O(Σ_i Σ_{k<i in row i} nnz(row k)); Apply: O(nnz).

package preconditioner

import (
	"fmt"

	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/vector"
)

// ILU0 holds the incomplete factors of a sparse matrix.
type ILU0 struct {
	lu *matrix.Sparse
}

// NewILU0 factors an assembled square Sparse matrix without fill-in.
// Errors: ErrNilOperator, matrix.ErrNotStructured, matrix.ErrNotAssembled,
// ErrZeroPivot (wrapped with the row).
func NewILU0(a matrix.Operator) (*ILU0, error) {
	if a == nil {
		return nil, pcErrorf("NewILU0", ErrNilOperator)
	}
	if _, err := matrix.AsStructured(a); err != nil {
		return nil, pcErrorf("NewILU0", err)
	}
	lu := a.(*matrix.Sparse).Clone()
	if err := factorILU0(lu); err != nil {
		return nil, err
	}

	return &ILU0{lu: lu}, nil
}

// factorILU0 overwrites the values of lu with its ILU(0) factors.
func factorILU0(lu *matrix.Sparse) error {
	n := lu.Rows()
	val := lu.Values()
	iw := make([]int, n)
	for j := range iw {
		iw[j] = -1
	}

	if val[lu.DiagonalIndex(0)] == 0 {
		return fmt.Errorf("ILU0: row 0: %w", ErrZeroPivot)
	}
	for i := 1; i < n; i++ {
		for p := lu.Start(i); p < lu.End(i); p++ {
			iw[lu.Column(p)] = p
		}
		for p := lu.Start(i); p < lu.DiagonalIndex(i); p++ {
			k := lu.Column(p)
			pivot := val[lu.DiagonalIndex(k)]
			val[p] /= pivot // l_ik
			for q := lu.DiagonalIndex(k) + 1; q < lu.End(k); q++ {
				if w := iw[lu.Column(q)]; w >= 0 {
					val[w] -= val[p] * val[q]
				}
			}
		}
		for p := lu.Start(i); p < lu.End(i); p++ {
			iw[lu.Column(p)] = -1
		}
		if val[lu.DiagonalIndex(i)] == 0 {
			return fmt.Errorf("ILU0: row %d: %w", i, ErrZeroPivot)
		}
	}

	return nil
}

// Size returns the order.
func (p *ILU0) Size() int { return p.lu.Rows() }

// Factor returns the factored matrix: L strictly below the diagonal (unit
// diagonal implied) and U on and above it, on the original pattern.
func (p *ILU0) Factor() *matrix.Sparse { return p.lu }

// Apply solves L U x = b by forward then backward substitution.
func (p *ILU0) Apply(b, x vector.Vector) error {
	lu := p.lu
	n := lu.Rows()
	if err := checkApply("ILU0.Apply", n, b, x); err != nil {
		return err
	}

	// L y = b, y stored in x.
	for i := 0; i < n; i++ {
		sum := b[i]
		for q := lu.Start(i); q < lu.DiagonalIndex(i); q++ {
			sum -= lu.Value(q) * x[lu.Column(q)]
		}
		x[i] = sum
	}
	// U x = y.
	for i := n - 1; i >= 0; i-- {
		d := lu.DiagonalIndex(i)
		sum := x[i]
		for q := d + 1; q < lu.End(i); q++ {
			sum -= lu.Value(q) * x[lu.Column(q)]
		}
		x[i] = sum / lu.Value(d)
	}

	return nil
}
