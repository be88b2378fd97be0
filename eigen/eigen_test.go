// SPDX-License-Identifier: MIT

package eigen_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/callow/config"
	"github.com/katalvlaran/callow/eigen"
	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/preconditioner"
	"github.com/katalvlaran/callow/solver"
	"github.com/katalvlaran/callow/vector"
)

// directPair returns the reference dominant eigenpair.
func directPair(t *testing.T, a, b matrix.Operator) (float64, vector.Vector) {
	t.Helper()
	d, err := eigen.NewDirect(config.New().Put("eigen_solver_tol", 1e-8))
	require.NoError(t, err)
	require.NoError(t, d.SetOperators(a, b))
	x := vector.New(a.Rows(), 0)
	status, err := d.Solve(x, nil)
	require.NoError(t, err)
	require.Equal(t, solver.Success, status)
	require.Equal(t, 1, d.Iterations())

	return d.Eigenvalue(), x
}

func TestPowerDominantEigenpair(t *testing.T) {
	for _, sign := range []float64{1, -1} {
		a := smallDense(t, sign)
		want, wantVec := directPair(t, a, nil)

		p, err := eigen.NewPower(config.New().Put("eigen_solver_tol", 1e-10))
		require.NoError(t, err)
		require.NoError(t, p.SetOperators(a, nil))
		x := vector.New(3, 0)
		status, err := p.Solve(x, nil)
		require.NoError(t, err)
		require.Equal(t, solver.Success, status)
		require.InDelta(t, want, p.Eigenvalue(), 1e-8)
		require.Equal(t, sign > 0, p.Eigenvalue() > 0)
		requireSameDirection(t, wantVec, x, 1e-7)
		require.InDelta(t, 1.0, x.Norm(vector.L1), 1e-12)
		require.Len(t, p.Residuals(), p.Iterations())
	}
}

func TestPowerGeneralized(t *testing.T) {
	a := smallDense(t, 1)
	b := diagSparse(t, 1, 2, 4)
	want, wantVec := directPair(t, a, b)

	s := config.New().
		Put("eigen_solver_tol", 1e-10).
		Put("eigen_solver_linear_solver_db", map[string]any{
			"linear_solver_type": "gmres",
			"linear_solver_atol": 1e-13,
			"linear_solver_rtol": 1e-13,
		})
	p, err := eigen.NewPower(s)
	require.NoError(t, err)
	require.NoError(t, p.SetOperators(a, b))
	require.Equal(t, "gmres", p.LinearSolver().Name())
	require.NoError(t, p.SetPreconditioner(nil)) // registry default ilu0 on B

	x := vector.New(3, 0)
	status, err := p.Solve(x, vector.Vector{1, 0, 0})
	require.NoError(t, err)
	require.Equal(t, solver.Success, status)
	require.InDelta(t, want, p.Eigenvalue(), 1e-8)
	requireSameDirection(t, wantVec, x, 1e-7)
}

func TestPowerMaxIterations(t *testing.T) {
	p, err := eigen.NewPower(config.New().Put("eigen_solver_maxit", 2).Put("eigen_solver_tol", 0.0))
	require.NoError(t, err)
	require.NoError(t, p.SetOperators(smallDense(t, 1), nil))

	status, err := p.Solve(vector.New(3, 0), nil)
	require.NoError(t, err)
	require.Equal(t, solver.MaxIt, status)
	require.Equal(t, 2, p.Iterations())
}

func TestDavidsonMatchesDirect(t *testing.T) {
	const n = 10
	cases := []struct {
		name     string
		a        matrix.Operator
		b        matrix.Operator
		subspace int
	}{
		{name: "standard", a: nearlyDiagonal(t, n), subspace: 20},
		{name: "generalized", a: nearlyDiagonal(t, n), b: massDiagonal(t, n), subspace: 20},
		{name: "generalized/restart", a: nearlyDiagonal(t, n), b: massDiagonal(t, n), subspace: 3},
		{name: "dense/generalized", a: denseStiffness(t), b: denseMass(t), subspace: 20},
		{name: "dense/generalized/restart", a: denseStiffness(t), b: denseMass(t), subspace: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want, wantVec := directPair(t, tc.a, tc.b)

			d, err := eigen.NewDavidson(config.New().
				Put("eigen_solver_tol", 1e-10).
				Put("eigen_solver_maxit", 500).
				Put("eigen_solver_subspace_size", tc.subspace))
			require.NoError(t, err)
			require.Equal(t, tc.subspace, d.SubspaceSize())
			require.NoError(t, d.SetOperators(tc.a, tc.b))

			x := vector.New(tc.a.Rows(), 0)
			status, err := d.Solve(x, nil)
			require.NoError(t, err)
			require.Equal(t, solver.Success, status)
			require.InDelta(t, want, d.Eigenvalue(), 1e-8)
			requireSameDirection(t, wantVec, x, 1e-7)
		})
	}
}

// TestDavidsonShellOperator exercises the probed diagonal.
func TestDavidsonShellOperator(t *testing.T) {
	const n = 8
	a := nearlyDiagonal(t, n)
	shell, err := matrix.NewShell(n, n, a, func(ctx any, x, y vector.Vector) error {
		return ctx.(*matrix.Sparse).Multiply(x, y)
	})
	require.NoError(t, err)
	want, wantVec := directPair(t, a, nil)

	d, err := eigen.New("davidson", config.New().Put("eigen_solver_tol", 1e-10))
	require.NoError(t, err)
	require.NoError(t, d.SetOperators(shell, nil))
	x := vector.New(n, 0)
	status, err := d.Solve(x, nil)
	require.NoError(t, err)
	require.Equal(t, solver.Success, status)
	require.InDelta(t, want, d.Eigenvalue(), 1e-8)
	requireSameDirection(t, wantVec, x, 1e-7)
}

// TestDavidsonPreconditioner covers a supplied correction preconditioner
// and one built from "eigen_solver_pc_db" on the shifted operator A − λB.
func TestDavidsonPreconditioner(t *testing.T) {
	const n = 10
	a := nearlyDiagonal(t, n)
	b := massDiagonal(t, n)
	want, _ := directPair(t, a, b)

	var built []matrix.Operator
	preconditioner.Register("shift-recorder", func(op matrix.Operator, _ *config.Settings, _ preconditioner.Options) (preconditioner.Preconditioner, error) {
		built = append(built, op)
		return preconditioner.NewJacobi(op)
	})

	shell, err := matrix.NewShell(n, n, a, func(ctx any, x, y vector.Vector) error {
		return ctx.(*matrix.Sparse).Multiply(x, y)
	})
	require.NoError(t, err)

	for _, tc := range []struct {
		name   string
		a      matrix.Operator
		sparse bool
	}{
		{name: "sparse", a: a, sparse: true},
		{name: "shell", a: shell},
	} {
		t.Run(tc.name, func(t *testing.T) {
			built = built[:0]
			d, err := eigen.NewDavidson(config.New().
				Put("eigen_solver_tol", 1e-10).
				Put("eigen_solver_pc_db", map[string]any{"pc_type": "shift-recorder"}))
			require.NoError(t, err)
			require.NoError(t, d.SetOperators(tc.a, b))
			x := vector.New(n, 0)
			status, err := d.Solve(x, nil)
			require.NoError(t, err)
			require.Equal(t, solver.Success, status)
			require.InDelta(t, want, d.Eigenvalue(), 1e-8)

			// Rebuilt as λ moves, on A − λB for the latest λ.
			require.Greater(t, len(built), 1)
			last := built[len(built)-1]
			_, isSparse := last.(*matrix.Sparse)
			require.Equal(t, tc.sparse, isSparse)

			e := vector.New(n, 0)
			got := vector.New(n, 0)
			ae := vector.New(n, 0)
			be := vector.New(n, 0)
			for k := 0; k < n; k++ {
				e.Set(0)
				e[k] = 1
				require.NoError(t, last.Multiply(e, got))
				require.NoError(t, a.Multiply(e, ae))
				require.NoError(t, b.Multiply(e, be))
				ae.AddScaled(-d.Eigenvalue(), be)
				requireClose(t, ae, got, 1e-6)
			}
		})
	}

	d, err := eigen.NewDavidson(config.New().
		Put("eigen_solver_tol", 1e-10).
		Put("eigen_solver_pc_db", map[string]any{"pc_type": "jacobi"}))
	require.NoError(t, err)
	require.NoError(t, d.SetOperators(a, b))
	x := vector.New(n, 0)
	status, err := d.Solve(x, nil)
	require.NoError(t, err)
	require.Equal(t, solver.Success, status)
	require.InDelta(t, want, d.Eigenvalue(), 1e-8)

	id, err := matrix.NewIdentity(n)
	require.NoError(t, err)
	require.NoError(t, d.SetPreconditionerMatrix(id))
	status, err = d.Solve(x, nil)
	require.NoError(t, err)
	require.Equal(t, solver.Success, status)
	require.InDelta(t, want, d.Eigenvalue(), 1e-8)

	small, err := preconditioner.NewIdentity(2)
	require.NoError(t, err)
	require.ErrorIs(t, d.SetPreconditioner(small), matrix.ErrDimensionMismatch)
}

func TestDominantPair(t *testing.T) {
	lambda, v, err := eigen.DominantPair(mat.NewDense(2, 2, []float64{1, 0, 0, -3}), nil)
	require.NoError(t, err)
	require.InDelta(t, -3.0, lambda, 1e-14)
	require.InDelta(t, 0.0, v[0], 1e-14)
	require.InDelta(t, 1.0, v[1], 1e-14)

	_, _, err = eigen.DominantPair(mat.NewDense(2, 2, []float64{0, -1, 1, 0}), nil)
	require.ErrorIs(t, err, eigen.ErrNoRealEigenvalue)

	_, _, err = eigen.DominantPair(mat.NewDense(2, 2, []float64{1, 0, 0, 1}), mat.NewDense(2, 2, nil))
	require.ErrorIs(t, err, eigen.ErrFactorization)
}

func TestEigenValidation(t *testing.T) {
	p, err := eigen.NewPower(nil)
	require.NoError(t, err)

	_, err = p.Solve(vector.New(3, 0), nil)
	require.ErrorIs(t, err, eigen.ErrNoOperator)
	require.ErrorIs(t, p.SetOperators(nil, nil), eigen.ErrNilOperator)

	a := smallDense(t, 1)
	require.ErrorIs(t, p.SetOperators(a, diagSparse(t, 1, 1)), matrix.ErrDimensionMismatch)
	require.NoError(t, p.SetOperators(a, nil))
	require.ErrorIs(t, p.SetPreconditioner(nil), eigen.ErrNotGeneralized)

	_, err = p.Solve(vector.New(3, 0), vector.New(3, 0))
	require.ErrorIs(t, err, eigen.ErrZeroVector)
	_, err = p.Solve(vector.New(3, 0), vector.New(2, 1))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = eigen.NewDavidson(config.New().Put("eigen_solver_subspace_size", 1))
	require.ErrorIs(t, err, eigen.ErrInvalidParameter)
	_, err = eigen.NewPower(config.New().Put("eigen_solver_maxit", 0))
	require.ErrorIs(t, err, eigen.ErrInvalidParameter)
}

func TestEigenRegistry(t *testing.T) {
	es, err := eigen.FromSettings(nil)
	require.NoError(t, err)
	require.Equal(t, "power", es.Name())

	_, err = eigen.New("slepc", nil)
	require.ErrorIs(t, err, eigen.ErrUnknownType)
	require.Equal(t, []string{"davidson", "direct", "power"}, eigen.Names())

	es, err = eigen.FromSettings(config.New().Put("eigen_solver_type", "direct"))
	require.NoError(t, err)
	require.Equal(t, "direct", es.Name())
}

func TestEigenMonitorLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	p, err := eigen.NewPower(config.New().Put("eigen_solver_monitor_level", 2).Put("eigen_solver_tol", 1e-8),
		eigen.WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, p.SetOperators(smallDense(t, 1), nil))
	_, err = p.Solve(vector.New(3, 0), nil)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "eigenvalue=")
	require.Contains(t, buf.String(), `msg="eigensolver converged"`)
}
