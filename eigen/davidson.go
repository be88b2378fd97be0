// SPDX-License-Identifier: MIT

// Davidson - generalized Davidson for the dominant eigenpair of A x = λ B x.
//
// Implementation:
//   - Stage 1: orthonormalize the correction t against the basis V (classical
//     Gram-Schmidt, two passes) and append it; cache A t and B t.
//   - Stage 2: solve the projected pencil (VᵗAV, VᵗBV) with DominantPair for
//     the Ritz pair (λ, y); u = V y, r = AV y − λ BV y.
//   - Stage 3: correction t = P r. The default P is the diagonal of
//     (A − λB)⁻¹. With "eigen_solver_pc_db" the preconditioner named there
//     is built on A − λB and rebuilt whenever λ changes; a supplied
//     preconditioner replaces both.
//   - Restart: when V is full, or t collapses into span(V), V shrinks to [u].
//
// Notes:
//   - Diagonals come from matrix.Diagonaler when available and are probed
//     once through the operator otherwise.

package eigen

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/callow/config"
	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/preconditioner"
	"github.com/katalvlaran/callow/vector"
)

// Davidson settings keys and defaults.
const (
	KeySubspaceSize     = "eigen_solver_subspace_size"
	DefaultSubspaceSize = 20

	// collapseTol is the relative norm below which an orthogonalized
	// correction is treated as lying in the current subspace.
	collapseTol = 1e-12

	// denomTol guards the diagonal correction against a ≈ λb.
	denomTol = 1e-12
)

// Davidson is the generalized Davidson eigensolver.
type Davidson struct {
	base
	subspace int
	pc       preconditioner.Preconditioner // supplied by the caller

	// Preconditioner built from "eigen_solver_pc_db" on A − λ B.
	pcDB      *config.Settings
	shiftedPC preconditioner.Preconditioner
	pcLambda  float64

	diagA, diagB vector.Vector
}

var _ EigenSolver = (*Davidson)(nil)

// NewDavidson builds a Davidson solver from settings.
func NewDavidson(s *config.Settings, opts ...Option) (*Davidson, error) {
	d := &Davidson{}
	if err := d.init("davidson", s, opts, d.solve, d.configure); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Davidson) configure(s *config.Settings) error {
	size, err := s.Int(KeySubspaceSize, DefaultSubspaceSize)
	if err != nil {
		return eigenErrorf(d.name, err)
	}
	if size < 2 {
		return fmt.Errorf("%s: subspace size %d: %w", d.name, size, ErrInvalidParameter)
	}
	d.subspace = size

	return nil
}

// SubspaceSize returns the maximum basis dimension.
func (d *Davidson) SubspaceSize() int { return d.subspace }

// SetOperators sets A and B and clears cached diagonals. When the
// "eigen_solver_pc_db" database is present, the correction preconditioner
// it names is built on A − λB during Solve.
func (d *Davidson) SetOperators(a, b matrix.Operator) error {
	if err := d.base.SetOperators(a, b); err != nil {
		return err
	}
	d.diagA, d.diagB = nil, nil
	d.pc, d.pcDB, d.shiftedPC = nil, nil, nil
	if !d.settings.Check(KeyPCDB) {
		return nil
	}
	db, err := d.settings.Sub(KeyPCDB)
	if err != nil {
		return eigenErrorf(d.name, err)
	}
	d.pcDB = db

	return nil
}

// SetPreconditioner replaces the correction preconditioner; nil restores
// the settings-driven correction.
func (d *Davidson) SetPreconditioner(p preconditioner.Preconditioner) error {
	if p != nil && d.a != nil && p.Size() != d.a.Rows() {
		return eigenErrorf(d.name, matrix.ErrDimensionMismatch)
	}
	d.pc = p

	return nil
}

// SetPreconditionerMatrix uses m as the correction preconditioner.
func (d *Davidson) SetPreconditionerMatrix(m matrix.Operator) error {
	p, err := preconditioner.NewMatrix(m)
	if err != nil {
		return eigenErrorf(d.name, err)
	}

	return d.SetPreconditioner(p)
}

// davidsonBasis holds V, AV and BV.
type davidsonBasis struct {
	v, av, bv []vector.Vector
}

func (s *davidsonBasis) size() int { return len(s.v) }

// reset shrinks the basis to the single vector u with cached A u and B u.
func (s *davidsonBasis) reset(u, au, bu vector.Vector) {
	s.v = append(s.v[:0], u.Clone())
	s.av = append(s.av[:0], au.Clone())
	s.bv = append(s.bv[:0], bu.Clone())
}

func (d *Davidson) solve(x, x0 vector.Vector) error {
	n := len(x)
	m := d.subspace
	if m > n {
		m = n
	}
	if err := d.ensureDiagonals(n); err != nil {
		return err
	}

	t, err := initialVector(n, x0)
	if err != nil {
		return err
	}
	basis := &davidsonBasis{}
	u := vector.New(n, 0)
	au := vector.New(n, 0)
	bu := vector.New(n, 0)
	r := vector.New(n, 0)

	for it := 1; ; it++ {
		if basis.size() == m {
			basis.reset(u, au, bu)
		}
		if !orthonormalize(t, basis.v) {
			if basis.size() > 1 {
				basis.reset(u, au, bu)
			}
			if !orthonormalize(t, basis.v) {
				// Fall back to the raw residual before giving up.
				t.Copy(r)
				if !orthonormalize(t, basis.v) {
					return ErrBreakdown
				}
			}
		}

		at := vector.New(n, 0)
		bt := vector.New(n, 0)
		if err = d.a.Multiply(t, at); err != nil {
			return err
		}
		if err = d.b.Multiply(t, bt); err != nil {
			return err
		}
		basis.v = append(basis.v, t.Clone())
		basis.av = append(basis.av, at)
		basis.bv = append(basis.bv, bt)

		lambda, y, err := d.ritzPair(basis)
		if err != nil {
			return err
		}
		combine(u, basis.v, y)
		combine(au, basis.av, y)
		combine(bu, basis.bv, y)
		r.Copy(au)
		r.AddScaled(-lambda, bu)

		d.lambda = lambda
		if d.monitor(it, lambda, r.Norm(vector.L2)) {
			break
		}
		if err = d.correction(r, lambda, t); err != nil {
			return err
		}
	}

	x.Copy(u)
	if x[maxAbsIndex(x)] < 0 {
		x.Scale(-1)
	}

	return nil
}

// ritzPair solves the projected pencil for the dominant Ritz pair. y is
// scaled to unit L2 norm, so u = V y has unit norm.
func (d *Davidson) ritzPair(basis *davidsonBasis) (float64, vector.Vector, error) {
	k := basis.size()
	g := mat.NewDense(k, k, nil)
	var h *mat.Dense
	if d.generalized {
		h = mat.NewDense(k, k, nil)
	}
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			g.Set(i, j, basis.v[i].Dot(basis.av[j]))
			if h != nil {
				h.Set(i, j, basis.v[i].Dot(basis.bv[j]))
			}
		}
	}

	return DominantPair(g, h)
}

// correction writes t = P r. Without a supplied preconditioner it uses the
// preconditioner of A − λB from "eigen_solver_pc_db", or else the diagonal
// correction t_i = r_i / (a_ii − λ b_ii).
func (d *Davidson) correction(r vector.Vector, lambda float64, t vector.Vector) error {
	if d.pc != nil {
		return d.pc.Apply(r, t)
	}
	if d.pcDB != nil {
		if d.shiftedPC == nil || d.pcLambda != lambda {
			op, err := shift(d.a, d.b, lambda, d.diagA, d.diagB)
			if err != nil {
				return err
			}
			pc, err := preconditioner.FromSettings(op, d.pcDB)
			if err != nil {
				return err
			}
			d.shiftedPC, d.pcLambda = pc, lambda
		}
		return d.shiftedPC.Apply(r, t)
	}
	for i := range t {
		denom := d.diagA[i] - lambda*d.diagB[i]
		if math.Abs(denom) <= denomTol*math.Max(1, math.Abs(d.diagA[i])) {
			t[i] = r[i]
			continue
		}
		t[i] = r[i] / denom
	}

	return nil
}

// ensureDiagonals caches diag(A) and diag(B).
func (d *Davidson) ensureDiagonals(n int) error {
	if d.diagA != nil && len(d.diagA) == n {
		return nil
	}
	diagA := vector.New(n, 0)
	diagB := vector.New(n, 0)
	if err := matrix.ExtractDiagonal(d.a, diagA); err != nil {
		return err
	}
	if err := matrix.ExtractDiagonal(d.b, diagB); err != nil {
		return err
	}
	d.diagA, d.diagB = diagA, diagB

	return nil
}

// orthonormalize removes the components of t along the orthonormal basis
// with two passes of classical Gram-Schmidt and normalizes the remainder.
// It reports false when t collapses into span(basis).
func orthonormalize(t vector.Vector, basis []vector.Vector) bool {
	before := t.Norm(vector.L2)
	if before == 0 {
		return false
	}
	coeff := make([]float64, len(basis))
	for pass := 0; pass < 2; pass++ {
		for j, v := range basis {
			coeff[j] = v.Dot(t)
		}
		for j, v := range basis {
			t.AddScaled(-coeff[j], v)
		}
	}
	after := t.Norm(vector.L2)
	if after <= collapseTol*before {
		return false
	}
	t.Scale(1 / after)

	return true
}

// combine writes dst = Σ_j y_j cols_j.
func combine(dst vector.Vector, cols []vector.Vector, y vector.Vector) {
	dst.Set(0)
	for j, c := range cols {
		dst.AddScaled(y[j], c)
	}
}
