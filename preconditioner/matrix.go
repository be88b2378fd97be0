// SPDX-License-Identifier: MIT

package preconditioner

import (
	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/vector"
)

// Matrix uses a caller-supplied operator as P⁻¹: Apply is Multiply.
type Matrix struct {
	p matrix.Operator
}

// NewMatrix wraps a square operator.
func NewMatrix(p matrix.Operator) (*Matrix, error) {
	if p == nil {
		return nil, pcErrorf("NewMatrix", ErrNilOperator)
	}
	if err := matrix.ValidateSquare(p); err != nil {
		return nil, pcErrorf("NewMatrix", err)
	}

	return &Matrix{p: p}, nil
}

// Size returns the order of the wrapped operator.
func (m *Matrix) Size() int { return m.p.Rows() }

// Apply computes x = P⁻¹ b.
func (m *Matrix) Apply(b, x vector.Vector) error {
	return m.p.Multiply(b, x)
}
