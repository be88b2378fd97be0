// SPDX-License-Identifier: MIT

package matrix

import "github.com/katalvlaran/callow/vector"

// Identity is the n×n identity operator. Eigensolvers substitute it for a
// missing B so standard and generalized problems share one code path.
type Identity struct {
	n int
}

var (
	_ Operator   = (*Identity)(nil)
	_ Diagonaler = (*Identity)(nil)
)

// NewIdentity returns the n×n identity.
// Errors: ErrBadShape when n<=0.
func NewIdentity(n int) (*Identity, error) {
	if n <= 0 {
		return nil, ErrBadShape
	}

	return &Identity{n: n}, nil
}

// Rows returns n.
func (m *Identity) Rows() int { return m.n }

// Cols returns n.
func (m *Identity) Cols() int { return m.n }

// Multiply copies x into y.
func (m *Identity) Multiply(x, y vector.Vector) error {
	if err := ValidateMultiply(m.n, m.n, x, y, false); err != nil {
		return matrixErrorf(opMultiply, err)
	}
	y.Copy(x)

	return nil
}

// MultiplyTranspose copies x into y.
func (m *Identity) MultiplyTranspose(x, y vector.Vector) error {
	if err := ValidateMultiply(m.n, m.n, x, y, true); err != nil {
		return matrixErrorf(opMultiplyTranspose, err)
	}
	y.Copy(x)

	return nil
}

// Diagonal fills dst with ones.
func (m *Identity) Diagonal(dst vector.Vector) error {
	if err := ValidateVecLen(dst, m.n); err != nil {
		return matrixErrorf(opDiagonal, err)
	}
	dst.Set(1)

	return nil
}
