// SPDX-License-Identifier: MIT

package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/callow/config"
	"github.com/katalvlaran/callow/internal/testmat"
	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/vector"
)

// tightSettings mirrors the reference tolerance set used across the suite.
func tightSettings(solverType string) *config.Settings {
	return config.New().
		Put("linear_solver_type", solverType).
		Put("linear_solver_maxit", 1000).
		Put("linear_solver_atol", 1e-13).
		Put("linear_solver_rtol", 1e-13).
		Put("linear_solver_monitor_diverge", false)
}

// referenceSystem returns the size-20 pentadiagonal matrix, b = 1 and the
// direct solution.
func referenceSystem(t *testing.T) (*matrix.Sparse, vector.Vector, vector.Vector) {
	t.Helper()
	a, err := testmat.Pentadiagonal(testmat.N)
	require.NoError(t, err)
	b := vector.New(testmat.N, 1)
	want, err := testmat.Solve(a, b)
	require.NoError(t, err)

	return a, b, want
}

func requireClose(t *testing.T, want, got vector.Vector, tol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDelta(t, want[i], got[i], tol, "component %d", i)
	}
}

// diagonalDense returns the n×n dense matrix d·I.
func diagonalDense(t *testing.T, n int, d float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, m.Set(i, i, d))
	}

	return m
}

// zeroSparse returns an assembled n×n matrix holding explicit zeros only.
func zeroSparse(t *testing.T, n int) *matrix.Sparse {
	t.Helper()
	a, err := matrix.NewSparse(n, n, 1)
	require.NoError(t, err)
	require.NoError(t, a.Assemble())

	return a
}

// zeroRows reports a 0×0 shape for an external operator.
type zeroRows struct{ matrix.Operator }

func (zeroRows) Rows() int { return 0 }
func (zeroRows) Cols() int { return 0 }
