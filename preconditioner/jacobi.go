// SPDX-License-Identifier: MIT

package preconditioner

import (
	"fmt"

	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/vector"
)

// Jacobi is the diagonal preconditioner x_i = b_i / a_ii.
type Jacobi struct {
	inv vector.Vector // reciprocal diagonal
}

// NewJacobi extracts the diagonal of a (directly or by probing) and stores
// its reciprocal.
// Errors: ErrNilOperator, ErrZeroDiagonal (wrapped with the row), matrix
// validation errors.
func NewJacobi(a matrix.Operator) (*Jacobi, error) {
	if a == nil {
		return nil, pcErrorf("NewJacobi", ErrNilOperator)
	}
	if err := matrix.ValidateSquare(a); err != nil {
		return nil, pcErrorf("NewJacobi", err)
	}
	d := vector.New(a.Rows(), 0)
	if err := matrix.ExtractDiagonal(a, d); err != nil {
		return nil, pcErrorf("NewJacobi", err)
	}
	for i, v := range d {
		if v == 0 {
			return nil, fmt.Errorf("NewJacobi: row %d: %w", i, ErrZeroDiagonal)
		}
		d[i] = 1 / v
	}

	return &Jacobi{inv: d}, nil
}

// Size returns the order.
func (p *Jacobi) Size() int { return len(p.inv) }

// Apply computes x_i = b_i / a_ii.
func (p *Jacobi) Apply(b, x vector.Vector) error {
	if err := checkApply("Jacobi.Apply", len(p.inv), b, x); err != nil {
		return err
	}
	for i, v := range p.inv {
		x[i] = b[i] * v
	}

	return nil
}
