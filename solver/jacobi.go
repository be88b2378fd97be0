// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"

	"github.com/katalvlaran/callow/config"
	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/vector"
)

// Jacobi is the point Jacobi splitting x_i ← (b_i − Σ_{j≠i} a_ij x_j)/a_ii.
// It requires an assembled matrix.Sparse operator; any preconditioner is
// ignored. The monitored residual is the norm of successive iterates;
// the first sweep provides r0.
type Jacobi struct {
	base
}

var _ LinearSolver = (*Jacobi)(nil)

// NewJacobi builds a Jacobi solver from settings.
func NewJacobi(s *config.Settings, opts ...Option) (*Jacobi, error) {
	j := &Jacobi{}
	if err := j.init("jacobi", s, opts, j.solve, nil); err != nil {
		return nil, err
	}

	return j, nil
}

func (j *Jacobi) solve(b, x vector.Vector) error {
	a, err := structuredDiagonal(j.a)
	if err != nil {
		return err
	}
	cur, next := x, vector.New(len(x), 0)
	sweep := func() float64 {
		jacobiSweep(a, b, cur, next)
		res := next.NormResidual(cur, j.norm)
		cur, next = next, cur

		return res
	}

	// The first sweep seeds the monitor so every recorded entry is a step
	// length ‖x_{k+1} − x_k‖.
	stop := j.mon.Init(sweep())
	for it := 1; !stop; it++ {
		stop = j.mon.Check(it, sweep())
	}
	if &cur[0] != &x[0] {
		x.Copy(cur)
	}

	return nil
}

// jacobiSweep writes next_i = (b_i − Σ_{j≠i} a_ij cur_j)/a_ii.
func jacobiSweep(a matrix.Structured, b, cur, next vector.Vector) {
	for i := range next {
		d := a.DiagonalIndex(i)
		sum := b[i]
		for p := a.Start(i); p < a.End(i); p++ {
			if p != d {
				sum -= a.Value(p) * cur[a.Column(p)]
			}
		}
		next[i] = sum / a.Value(d)
	}
}

// structuredDiagonal returns the compressed-row view of op after checking
// that no diagonal entry is zero.
func structuredDiagonal(op matrix.Operator) (matrix.Structured, error) {
	a, err := matrix.AsStructured(op)
	if err != nil {
		return nil, err
	}
	for i := 0; i < a.Rows(); i++ {
		if a.Value(a.DiagonalIndex(i)) == 0 {
			return nil, fmt.Errorf("row %d: %w", i, ErrZeroDiagonal)
		}
	}

	return a, nil
}
