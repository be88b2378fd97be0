// SPDX-License-Identifier: MIT

package solver

import (
	"github.com/katalvlaran/callow/config"
	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/vector"
)

// GaussSeidel is the forward Gauss-Seidel sweep, updating x in place.
// A relaxation factor ω ≠ 1 turns it into SOR:
//
//	x_i ← (1−ω)x_i + ω(b_i − Σ_{j≠i} a_ij x_j)/a_ii
//
// It requires an assembled matrix.Sparse operator; any preconditioner is
// ignored.
type GaussSeidel struct {
	base
}

var _ LinearSolver = (*GaussSeidel)(nil)

// NewGaussSeidel builds a Gauss-Seidel/SOR solver from settings.
func NewGaussSeidel(s *config.Settings, opts ...Option) (*GaussSeidel, error) {
	g := &GaussSeidel{}
	if err := g.init("gauss-seidel", s, opts, g.solve, nil); err != nil {
		return nil, err
	}

	return g, nil
}

func (g *GaussSeidel) solve(b, x vector.Vector) error {
	a, err := structuredDiagonal(g.a)
	if err != nil {
		return err
	}
	prev := vector.New(len(x), 0)
	sweep := func() float64 {
		prev.Copy(x)
		sorSweep(a, b, x, g.omega)

		return x.NormResidual(prev, g.norm)
	}

	// As for Jacobi, r0 is the first step length.
	stop := g.mon.Init(sweep())
	for it := 1; !stop; it++ {
		stop = g.mon.Check(it, sweep())
	}

	return nil
}

// sorSweep runs one in-place forward sweep
// x_i ← (1−ω)x_i + ω(b_i − Σ_{j≠i} a_ij x_j)/a_ii.
func sorSweep(a matrix.Structured, b, x vector.Vector, omega float64) {
	for i := range x {
		d := a.DiagonalIndex(i)
		sum := b[i]
		for p := a.Start(i); p < a.End(i); p++ {
			if p != d {
				sum -= a.Value(p) * x[a.Column(p)]
			}
		}
		x[i] = (1-omega)*x[i] + omega*sum/a.Value(d)
	}
}
