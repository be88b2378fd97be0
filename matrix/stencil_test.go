// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/vector"
)

func TestGridLaplacian(t *testing.T) {
	tests := []struct {
		name         string
		conn         matrix.Connectivity
		diag         float64
		nnz          int
		cornerRowSum float64
	}{
		// 3×3 grid: 9 diagonals + 12 horizontal/vertical pairs counted twice.
		{name: "conn4", conn: matrix.Conn4, diag: 4, nnz: 9 + 24, cornerRowSum: 2},
		// plus 8 diagonal pairs counted twice.
		{name: "conn8", conn: matrix.Conn8, diag: 8, nnz: 9 + 24 + 16, cornerRowSum: 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, err := matrix.NewGridLaplacian(3, 3, tc.conn)
			require.NoError(t, err)
			require.Equal(t, 9, a.Rows())
			require.Equal(t, tc.nnz, a.NNZ())

			d := vector.New(9, 0)
			require.NoError(t, a.Diagonal(d))
			for _, v := range d {
				require.Equal(t, tc.diag, v)
			}

			// Row sums vanish in the interior and stay positive on the border.
			y := vector.New(9, 0)
			require.NoError(t, a.Multiply(vector.New(9, 1), y))
			require.Equal(t, 0.0, y[4])
			require.Equal(t, tc.cornerRowSum, y[0])

			// Symmetric.
			for i := 0; i < 9; i++ {
				for j := 0; j < 9; j++ {
					aij, err := a.At(i, j)
					require.NoError(t, err)
					aji, err := a.At(j, i)
					require.NoError(t, err)
					require.Equal(t, aij, aji)
				}
			}
		})
	}

	_, err := matrix.NewGridLaplacian(0, 3, matrix.Conn4)
	require.ErrorIs(t, err, matrix.ErrBadShape)
}
