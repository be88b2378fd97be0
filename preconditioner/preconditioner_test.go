// SPDX-License-Identifier: MIT

package preconditioner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/callow/config"
	"github.com/katalvlaran/callow/internal/testmat"
	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/preconditioner"
	"github.com/katalvlaran/callow/vector"
)

// tridiagonal builds the n×n matrix tridiag(-1, 4, -1).
func tridiagonal(t *testing.T, n int) *matrix.Sparse {
	t.Helper()
	a, err := matrix.NewSparse(n, n, 3)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, a.Insert(i, i, 4, matrix.Insert))
		if i > 0 {
			require.NoError(t, a.Insert(i, i-1, -1, matrix.Insert))
		}
		if i+1 < n {
			require.NoError(t, a.Insert(i, i+1, -1, matrix.Insert))
		}
	}
	require.NoError(t, a.Assemble())

	return a
}

func TestIdentityApply(t *testing.T) {
	p, err := preconditioner.NewIdentity(3)
	require.NoError(t, err)
	x := vector.New(3, 0)
	require.NoError(t, p.Apply(vector.Vector{1, 2, 3}, x))
	require.Equal(t, vector.Vector{1, 2, 3}, x)
	require.ErrorIs(t, p.Apply(vector.New(2, 0), x), matrix.ErrDimensionMismatch)
}

func TestJacobi(t *testing.T) {
	a, err := testmat.Nonsymmetric(5)
	require.NoError(t, err)
	p, err := preconditioner.NewJacobi(a)
	require.NoError(t, err)
	require.Equal(t, 5, p.Size())

	x := vector.New(5, 0)
	require.NoError(t, p.Apply(vector.New(5, 8), x))
	require.Equal(t, vector.New(5, 2), x)
}

func TestJacobiZeroDiagonal(t *testing.T) {
	a, err := matrix.NewSparse(2, 2, 1)
	require.NoError(t, err)
	require.NoError(t, a.Insert(0, 0, 1, matrix.Insert))
	require.NoError(t, a.Insert(1, 0, 1, matrix.Insert)) // row 1 diagonal stored as zero
	require.NoError(t, a.Assemble())

	_, err = preconditioner.NewJacobi(a)
	require.ErrorIs(t, err, preconditioner.ErrZeroDiagonal)
}

// TestILU0ExactOnTridiagonal relies on ILU(0) equalling LU when the exact
// factors have no fill (tridiagonal matrices).
func TestILU0ExactOnTridiagonal(t *testing.T) {
	a := tridiagonal(t, 8)
	p, err := preconditioner.NewILU0(a)
	require.NoError(t, err)

	b := vector.Vector{1, 2, 3, 4, 5, 6, 7, 8}
	want, err := testmat.Solve(a, b)
	require.NoError(t, err)

	x := vector.New(8, 0)
	require.NoError(t, p.Apply(b, x))
	for i := range x {
		require.InDelta(t, want[i], x[i], 1e-12)
	}
}

// TestILU0NoFill checks that the factor keeps the sparsity pattern of A
// and leaves A itself untouched.
func TestILU0NoFill(t *testing.T) {
	a, err := testmat.Pentadiagonal(testmat.N)
	require.NoError(t, err)
	before := append([]float64(nil), a.Values()...)

	p, err := preconditioner.NewILU0(a)
	require.NoError(t, err)
	f := p.Factor()

	require.Equal(t, a.NNZ(), f.NNZ())
	for i := 0; i < a.Rows(); i++ {
		require.Equal(t, a.Start(i), f.Start(i))
		require.Equal(t, a.End(i), f.End(i))
		for q := a.Start(i); q < a.End(i); q++ {
			require.Equal(t, a.Column(q), f.Column(q))
		}
	}
	require.Equal(t, before, a.Values())
	require.NotEqual(t, before, f.Values())
}

func TestILU0ZeroPivot(t *testing.T) {
	// [[1, 1], [1, 1]] eliminates to a zero pivot in row 1.
	a, err := matrix.NewSparse(2, 2, 2)
	require.NoError(t, err)
	require.NoError(t, a.InsertMany([]int{0, 0, 1, 1}, []int{0, 1, 0, 1}, []float64{1, 1, 1, 1}, matrix.Insert))
	require.NoError(t, a.Assemble())

	_, err = preconditioner.NewILU0(a)
	require.ErrorIs(t, err, preconditioner.ErrZeroPivot)
	require.ErrorContains(t, err, "row 1")
}

func TestILU0RequiresStructured(t *testing.T) {
	d, err := matrix.NewDenseFrom([][]float64{{2, 0}, {0, 2}})
	require.NoError(t, err)
	_, err = preconditioner.NewILU0(d)
	require.ErrorIs(t, err, matrix.ErrNotStructured)
}

func TestMatrixPreconditioner(t *testing.T) {
	d, err := matrix.NewDenseFrom([][]float64{{0.5, 0}, {0, 0.25}})
	require.NoError(t, err)
	p, err := preconditioner.NewMatrix(d)
	require.NoError(t, err)

	x := vector.New(2, 0)
	require.NoError(t, p.Apply(vector.Vector{2, 4}, x))
	require.Equal(t, vector.Vector{1, 1}, x)
}

func TestRegistry(t *testing.T) {
	a := tridiagonal(t, 4)

	p, err := preconditioner.FromSettings(a, nil)
	require.NoError(t, err)
	require.IsType(t, &preconditioner.ILU0{}, p) // default type

	for _, name := range []string{"identity", "jacobi", "ilu0", "matrix"} {
		p, err = preconditioner.FromSettings(a, config.New().Put(preconditioner.KeyType, name))
		require.NoError(t, err, name)
		require.Equal(t, 4, p.Size())
	}

	_, err = preconditioner.New("amg", a, nil)
	require.ErrorIs(t, err, preconditioner.ErrUnknownType)

	id, err := matrix.NewIdentity(4)
	require.NoError(t, err)
	p, err = preconditioner.New("matrix", a, nil, preconditioner.WithOperator(id))
	require.NoError(t, err)
	x := vector.New(4, 0)
	require.NoError(t, p.Apply(vector.New(4, 3), x))
	require.Equal(t, vector.New(4, 3), x)

	preconditioner.Register("test-identity", func(a matrix.Operator, _ *config.Settings, _ preconditioner.Options) (preconditioner.Preconditioner, error) {
		return preconditioner.NewIdentity(a.Rows())
	})
	require.Contains(t, preconditioner.Names(), "test-identity")
}
