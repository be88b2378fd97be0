// SPDX-License-Identifier: MIT

// GMRES(m) - restarted generalized minimal residual method.
//
// Implementation:
//   - Stage 1 (outer): r = b − A x (left: r = P⁻¹(b − A x)), v₀ = r/‖r‖, g = ‖r‖e₀.
//   - Stage 2 (inner, k = 0..m−1): w = P⁻¹A v_k or A P⁻¹ v_k; modified
//     Gram-Schmidt against v₀..v_k fills column k of the Hessenberg matrix H;
//     optional reorthogonalization; previous Givens rotations are applied to
//     column k and a new one zeroes H[k+1][k]; |g[k+1]| is the residual.
//   - Stage 3 (update): back substitution R y = g, x += V y (right: x += P⁻¹ V y).
//
// Reorthogonalization modes:
//   - 0: never; 1: Kelley's test ‖Av‖ + 0.001‖w‖ == ‖Av‖ (default); 2: always.
//
// Complexity:
//   - Per inner step: one operator application plus O(k·n) for Gram-Schmidt.
//   - Memory: (m+1) basis vectors of length n and an (m+1)×m Hessenberg matrix.

package solver

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/callow/config"
	"github.com/katalvlaran/callow/vector"
)

// GMRES settings keys and defaults.
const (
	KeyGMRESRestart  = "linear_solver_gmres_restart"
	KeyGMRESReorthog = "linear_solver_gmres_reorthog"

	DefaultGMRESRestart  = 20
	DefaultGMRESReorthog = 1

	// kelleyDelta is the reorthogonalization test constant.
	kelleyDelta = 0.001
)

// GMRES is restarted GMRES with left or right preconditioning.
type GMRES struct {
	base
	restart  int
	reorthog int
}

var _ LinearSolver = (*GMRES)(nil)

// NewGMRES builds a GMRES(m) solver from settings.
// Errors: ErrInvalidParameter when the restart is ≤ 2 or the
// reorthogonalization mode is not 0, 1 or 2.
func NewGMRES(s *config.Settings, opts ...Option) (*GMRES, error) {
	g := &GMRES{}
	if err := g.init("gmres", s, opts, g.solve, g.configure); err != nil {
		return nil, err
	}

	return g, nil
}

func (g *GMRES) configure(s *config.Settings) error {
	restart, err := s.Int(KeyGMRESRestart, DefaultGMRESRestart)
	if err != nil {
		return solverErrorf(g.name, err)
	}
	if restart <= 2 {
		return fmt.Errorf("%s: restart %d must be > 2: %w", g.name, restart, ErrInvalidParameter)
	}
	reorthog, err := s.Int(KeyGMRESReorthog, DefaultGMRESReorthog)
	if err != nil {
		return solverErrorf(g.name, err)
	}
	if reorthog < 0 || reorthog > 2 {
		return fmt.Errorf("%s: reorthog %d: %w", g.name, reorthog, ErrInvalidParameter)
	}
	g.restart, g.reorthog = restart, reorthog

	return nil
}

// Restart returns the configured restart length.
func (g *GMRES) Restart() int { return g.restart }

// gmresWork holds the buffers of one solve.
type gmresWork struct {
	h    [][]float64     // (m+1)×m Hessenberg, triangularized in place
	c, s []float64       // Givens cosines and sines
	g    []float64       // rotated right-hand side, |g[k+1]| is the residual
	y    []float64       // least-squares solution
	v    []vector.Vector // Krylov basis
	r, t vector.Vector
}

func newGMRESWork(n, m int) *gmresWork {
	w := &gmresWork{
		h: make([][]float64, m+1),
		c: make([]float64, m+1),
		s: make([]float64, m+1),
		g: make([]float64, m+1),
		y: make([]float64, m),
		v: make([]vector.Vector, m+1),
		r: vector.New(n, 0),
		t: vector.New(n, 0),
	}
	for i := range w.h {
		w.h[i] = make([]float64, m)
		w.v[i] = vector.New(n, 0)
	}

	return w
}

func (g *GMRES) solve(b, x vector.Vector) error {
	n := len(x)
	m := g.restart
	if m > n {
		m = n
	}
	w := newGMRESWork(n, m)

	iteration := 0
	for first := true; ; first = false {
		// Outer residual.
		if err := g.a.Multiply(x, w.r); err != nil {
			return err
		}
		w.r.Subtract(b)
		w.r.Scale(-1)
		if g.left() {
			w.t.Copy(w.r)
			if err := g.p.Apply(w.t, w.r); err != nil {
				return err
			}
		}
		rho := w.r.Norm(vector.L2)
		if first && g.mon.Init(rho) {
			return nil
		}
		if rho == 0 {
			g.mon.Converged(iteration, 0)
			return nil
		}

		w.v[0].Copy(w.r)
		w.v[0].Scale(1 / rho)
		for i := range w.g {
			w.g[i] = 0
		}
		w.g[0] = rho

		k, done, err := g.cycle(w, m, &iteration)
		if err != nil {
			return err
		}
		if err = g.update(w, k, x); err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// cycle runs up to m inner steps and returns the number of basis vectors
// used and whether the monitor stopped the solve.
func (g *GMRES) cycle(w *gmresWork, m int, iteration *int) (int, bool, error) {
	h := w.h
	for k := 0; k < m; k++ {
		*iteration++
		next := w.v[k+1]

		// next = P⁻¹ A v_k, A P⁻¹ v_k or A v_k
		if g.right() {
			if err := g.p.Apply(w.v[k], w.t); err != nil {
				return k, false, err
			}
			if err := g.a.Multiply(w.t, next); err != nil {
				return k, false, err
			}
		} else if err := g.a.Multiply(w.v[k], next); err != nil {
			return k, false, err
		}
		if g.left() {
			w.t.Copy(next)
			if err := g.p.Apply(w.t, next); err != nil {
				return k, false, err
			}
		}

		// Modified Gram-Schmidt.
		normAv := next.Norm(vector.L2)
		for j := 0; j <= k; j++ {
			h[j][k] = next.Dot(w.v[j])
			next.AddScaled(-h[j][k], w.v[j])
		}
		h[k+1][k] = next.Norm(vector.L2)

		if (g.reorthog == 1 && normAv+kelleyDelta*h[k+1][k] == normAv) || g.reorthog == 2 {
			if g.mon.level > 1 {
				g.mon.logger.Info("reorthogonalizing", slog.String("solver", g.name), slog.Int("k", k))
			}
			for j := 0; j <= k; j++ {
				hr := w.v[j].Dot(next)
				h[j][k] += hr
				next.AddScaled(-hr, w.v[j])
			}
			h[k+1][k] = next.Norm(vector.L2)
		}

		happy := h[k+1][k] == 0
		if happy {
			if g.mon.level > 0 {
				g.mon.logger.Info("happy breakdown",
					slog.String("solver", g.name), slog.Int("k", k), slog.Int("iteration", *iteration))
			}
		} else {
			next.Scale(1 / h[k+1][k])
		}

		// Givens rotations.
		for i := 0; i < k; i++ {
			h0 := w.c[i]*h[i][k] - w.s[i]*h[i+1][k]
			h1 := w.s[i]*h[i][k] + w.c[i]*h[i+1][k]
			h[i][k], h[i+1][k] = h0, h1
		}
		nu := math.Hypot(h[k][k], h[k+1][k])
		if nu == 0 {
			return k, false, fmt.Errorf("column %d: %w", k, ErrSingular)
		}
		w.c[k] = h[k][k] / nu
		w.s[k] = -h[k+1][k] / nu
		h[k][k] = w.c[k]*h[k][k] - w.s[k]*h[k+1][k]
		h[k+1][k] = 0
		g0 := w.c[k]*w.g[k] - w.s[k]*w.g[k+1]
		g1 := w.s[k]*w.g[k] + w.c[k]*w.g[k+1]
		w.g[k], w.g[k+1] = g0, g1

		if g.mon.Check(*iteration, math.Abs(g1)) {
			return k + 1, true, nil
		}
		if happy {
			return k + 1, false, nil
		}
	}

	return m, false, nil
}

// update solves the k×k triangular system R y = g and adds the correction
// V y (mapped through P⁻¹ for right preconditioning) to x.
func (g *GMRES) update(w *gmresWork, k int, x vector.Vector) error {
	h, y := w.h, w.y
	for i := k - 1; i >= 0; i-- {
		y[i] = w.g[i]
		for j := i + 1; j < k; j++ {
			y[i] -= h[i][j] * y[j]
		}
		if h[i][i] == 0 {
			return fmt.Errorf("row %d: %w", i, ErrSingular)
		}
		y[i] /= h[i][i]
	}

	w.r.Set(0)
	for i := 0; i < k; i++ {
		w.r.AddScaled(y[i], w.v[i])
	}
	if g.right() {
		if err := g.p.Apply(w.r, w.t); err != nil {
			return err
		}
		x.Add(w.t)
	} else {
		x.Add(w.r)
	}

	return nil
}
