// SPDX-License-Identifier: MIT

package solver

import (
	"github.com/katalvlaran/callow/config"
	"github.com/katalvlaran/callow/vector"
)

// Richardson is the relaxed fixed-point iteration x ← (I − ωA)x + ωb.
// With a left preconditioner the update is x ← x + P⁻¹(b − Ax); other
// sides fall back to relaxation. The monitored residual is the norm of the
// difference of successive iterates.
type Richardson struct {
	base
}

var _ LinearSolver = (*Richardson)(nil)

// NewRichardson builds a Richardson solver from settings.
func NewRichardson(s *config.Settings, opts ...Option) (*Richardson, error) {
	r := &Richardson{}
	if err := r.init("richardson", s, opts, r.solve, nil); err != nil {
		return nil, err
	}

	return r, nil
}

// scaledOperator computes dst = P⁻¹A src, or ωA src without a left
// preconditioner. tmp is scratch.
func (r *Richardson) scaledOperator(src, dst, tmp vector.Vector) error {
	if err := r.a.Multiply(src, dst); err != nil {
		return err
	}
	if r.left() {
		tmp.Copy(dst)
		return r.p.Apply(tmp, dst)
	}
	dst.Scale(r.omega)

	return nil
}

func (r *Richardson) solve(b, x vector.Vector) error {
	n := len(x)

	// Preconditioned or relaxed right-hand side.
	rhs := b.Clone()
	if r.left() {
		if err := r.p.Apply(b, rhs); err != nil {
			return err
		}
	} else {
		rhs.Scale(r.omega)
	}

	cur, next := x, vector.New(n, 0)
	tmp := vector.New(n, 0)

	if err := r.scaledOperator(cur, next, tmp); err != nil {
		return err
	}
	if r.mon.Init(next.NormResidual(rhs, r.norm)) {
		return nil
	}

	for it := 1; ; it++ {
		// next = cur − P⁻¹A cur + P⁻¹b
		if err := r.scaledOperator(cur, next, tmp); err != nil {
			return err
		}
		next.Subtract(cur)
		next.Subtract(rhs)
		next.Scale(-1)

		res := next.NormResidual(cur, r.norm)
		cur, next = next, cur
		if r.mon.Check(it, res) {
			break
		}
	}
	if &cur[0] != &x[0] {
		x.Copy(cur)
	}

	return nil
}
