// SPDX-License-Identifier: MIT

package eigen_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/vector"
)

// smallDense is a 3×3 symmetric matrix with a well separated dominant
// eigenvalue near 10.
func smallDense(t *testing.T, sign float64) *matrix.Dense {
	t.Helper()
	rows := [][]float64{{10, 1, 0}, {1, 3, 1}, {0, 1, 1}}
	for _, row := range rows {
		for j := range row {
			row[j] *= sign
		}
	}
	d, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return d
}

// diagSparse returns the assembled diagonal matrix diag(values).
func diagSparse(t *testing.T, values ...float64) *matrix.Sparse {
	t.Helper()
	s, err := matrix.NewSparse(len(values), len(values), 1)
	require.NoError(t, err)
	for i, v := range values {
		require.NoError(t, s.Insert(i, i, v, matrix.Insert))
	}
	require.NoError(t, s.Assemble())

	return s
}

// nearlyDiagonal returns the n×n symmetric tridiagonal matrix with i+1 on
// the diagonal and 0.1 beside it.
func nearlyDiagonal(t *testing.T, n int) *matrix.Sparse {
	t.Helper()
	s, err := matrix.NewSparse(n, n, 3)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, s.Insert(i, i, float64(i+1), matrix.Insert))
		if i > 0 {
			require.NoError(t, s.Insert(i, i-1, 0.1, matrix.Insert))
		}
		if i+1 < n {
			require.NoError(t, s.Insert(i, i+1, 0.1, matrix.Insert))
		}
	}
	require.NoError(t, s.Assemble())

	return s
}

// massDiagonal returns diag(1 + 0.05 i).
func massDiagonal(t *testing.T, n int) *matrix.Sparse {
	t.Helper()
	values := make([]float64, n)
	for i := range values {
		values[i] = 1 + 0.05*float64(i)
	}

	return diagSparse(t, values...)
}

// canonical scales v to unit L2 norm with a positive largest component.
func canonical(v vector.Vector) vector.Vector {
	out := v.Clone()
	k := 0
	for i := range out {
		if math.Abs(out[i]) > math.Abs(out[k]) {
			k = i
		}
	}
	norm := out.Norm(vector.L2)
	if out[k] < 0 {
		norm = -norm
	}
	out.Scale(1 / norm)

	return out
}

func requireSameDirection(t *testing.T, want, got vector.Vector, tol float64) {
	t.Helper()
	w, g := canonical(want), canonical(got)
	for i := range w {
		require.InDelta(t, w[i], g[i], tol, "component %d", i)
	}
}

// denseStiffness is a symmetric 5×5 dense A.
func denseStiffness(t *testing.T) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFrom([][]float64{
		{4, 1, 0, 0, 0.5},
		{1, 3, 1, 0, 0},
		{0, 1, 2, 1, 0},
		{0, 0, 1, 1, 0.2},
		{0.5, 0, 0, 0.2, 6},
	})
	require.NoError(t, err)

	return d
}

// denseMass is a symmetric positive definite, non-diagonal 5×5 dense B.
func denseMass(t *testing.T) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFrom([][]float64{
		{1.5, 0.2, 0, 0, 0.1},
		{0.2, 1.5, 0.2, 0, 0},
		{0, 0.2, 1.5, 0.2, 0},
		{0, 0, 0.2, 1.5, 0.2},
		{0.1, 0, 0, 0.2, 1.5},
	})
	require.NoError(t, err)

	return d
}

func requireClose(t *testing.T, want, got vector.Vector, tol float64) {
	t.Helper()
	for i := range want {
		require.InDelta(t, want[i], got[i], tol, "component %d", i)
	}
}
