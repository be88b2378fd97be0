// SPDX-License-Identifier: MIT

// Package testmat builds deterministic matrices and reference solutions
// shared by the test suites of the solver packages.
package testmat

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/vector"
)

// N is the order of the standard test system.
const N = 20

// Pentadiagonal returns the assembled n×n symmetric positive definite matrix
// with 1 on the diagonal, -0.2 on the first and -0.1 on the second
// off-diagonals. Its spectrum lies in [0.4, 1.6].
func Pentadiagonal(n int) (*matrix.Sparse, error) {
	a, err := matrix.NewSparse(n, n, 5)
	if err != nil {
		return nil, err
	}
	bands := []struct {
		offset int
		value  float64
	}{{-2, -0.1}, {-1, -0.2}, {0, 1}, {1, -0.2}, {2, -0.1}}
	for i := 0; i < n; i++ {
		for _, b := range bands {
			j := i + b.offset
			if j < 0 || j >= n {
				continue
			}
			if err = a.Insert(i, j, b.value, matrix.Insert); err != nil {
				return nil, err
			}
		}
	}
	if err = a.Assemble(); err != nil {
		return nil, err
	}

	return a, nil
}

// Nonsymmetric returns an assembled n×n diagonally dominant nonsymmetric
// matrix: 4 on the diagonal, -1 below, -2 above and 0.5 two columns right.
func Nonsymmetric(n int) (*matrix.Sparse, error) {
	a, err := matrix.NewSparse(n, n, 4)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		_ = a.Insert(i, i, 4, matrix.Insert)
		if i > 0 {
			_ = a.Insert(i, i-1, -1, matrix.Insert)
		}
		if i+1 < n {
			_ = a.Insert(i, i+1, -2, matrix.Insert)
		}
		if i+2 < n {
			_ = a.Insert(i, i+2, 0.5, matrix.Insert)
		}
	}
	if err = a.Assemble(); err != nil {
		return nil, err
	}

	return a, nil
}

// ToGonum copies any square operator into a gonum dense matrix by probing
// it with unit vectors.
func ToGonum(op matrix.Operator) (*mat.Dense, error) {
	n := op.Rows()
	out := mat.NewDense(n, op.Cols(), nil)
	e := vector.New(op.Cols(), 0)
	col := vector.New(n, 0)
	for j := 0; j < op.Cols(); j++ {
		e[j] = 1
		if err := op.Multiply(e, col); err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			out.Set(i, j, col[i])
		}
		e[j] = 0
	}

	return out, nil
}

// Solve returns the direct solution of A x = b computed by gonum.
func Solve(op matrix.Operator, b vector.Vector) (vector.Vector, error) {
	a, err := ToGonum(op)
	if err != nil {
		return nil, err
	}
	var x mat.VecDense
	if err = x.SolveVec(a, mat.NewVecDense(len(b), append([]float64(nil), b...))); err != nil {
		return nil, err
	}

	return vector.Vector(x.RawVector().Data), nil
}
