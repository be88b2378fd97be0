// SPDX-License-Identifier: MIT

package matrix

import "github.com/katalvlaran/callow/vector"

// ExtractDiagonal writes the main diagonal of a square operator into dst.
// Operators implementing Diagonaler answer directly; any other operator is
// probed with unit vectors, one Multiply per row.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch, or whatever the
// operator's Multiply returns.
//
// Complexity: O(n) for Diagonaler, n multiplies otherwise.
func ExtractDiagonal(op Operator, dst vector.Vector) error {
	if err := ValidateSquare(op); err != nil {
		return matrixErrorf(opDiagonal, err)
	}
	if err := ValidateVecLen(dst, op.Rows()); err != nil {
		return matrixErrorf(opDiagonal, err)
	}
	if d, ok := op.(Diagonaler); ok {
		return d.Diagonal(dst)
	}

	n := op.Rows()
	e := vector.New(n, 0)
	col := vector.New(n, 0)
	for i := 0; i < n; i++ {
		e[i] = 1
		if err := op.Multiply(e, col); err != nil {
			return matrixErrorf(opDiagonal, err)
		}
		dst[i] = col[i]
		e[i] = 0
	}

	return nil
}
