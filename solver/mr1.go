// SPDX-License-Identifier: MIT

package solver

import (
	"github.com/katalvlaran/callow/config"
	"github.com/katalvlaran/callow/vector"
)

// MR1 is the one-dimensional minimal residual method. Each step minimizes
// ‖r + a p‖ along p = Op r with Op = P⁻¹A (left), A P⁻¹ (right) or A:
//
//	a = −(pᵗr)/(pᵗp),  x += a r,  r += a p
//
// With right preconditioning the iteration runs on a correction y
// (x = x₀ + P⁻¹y) which is mapped back once at the end.
type MR1 struct {
	base
}

var _ LinearSolver = (*MR1)(nil)

// NewMR1 builds an MR1 solver from settings.
func NewMR1(s *config.Settings, opts ...Option) (*MR1, error) {
	m := &MR1{}
	if err := m.init("mr1", s, opts, m.solve, nil); err != nil {
		return nil, err
	}

	return m, nil
}

// applyOp computes out = Op in; z is scratch.
func (m *MR1) applyOp(in, out, z vector.Vector) error {
	switch {
	case m.right():
		if err := m.p.Apply(in, z); err != nil {
			return err
		}
		return m.a.Multiply(z, out)
	case m.left():
		if err := m.a.Multiply(in, z); err != nil {
			return err
		}
		return m.p.Apply(z, out)
	default:
		return m.a.Multiply(in, out)
	}
}

func (m *MR1) solve(b, x vector.Vector) error {
	n := len(x)
	r := vector.New(n, 0)
	p := vector.New(n, 0)
	z := vector.New(n, 0)

	// r = A x − b, preconditioned on the left.
	if err := m.a.Multiply(x, r); err != nil {
		return err
	}
	r.Subtract(b)
	if m.left() {
		z.Copy(r)
		if err := m.p.Apply(z, r); err != nil {
			return err
		}
	}
	if m.mon.Init(r.Norm(vector.L2)) {
		return nil
	}

	target := x
	if m.right() {
		target = vector.New(n, 0)
	}
	for it := 1; ; it++ {
		if err := m.applyOp(r, p, z); err != nil {
			return err
		}
		pp := p.Dot(p)
		if pp == 0 {
			return ErrBreakdown
		}
		a := -p.Dot(r) / pp
		target.AddScaled(a, r)
		r.AddScaled(a, p)
		if m.mon.Check(it, r.Norm(vector.L2)) {
			break
		}
	}

	if m.right() {
		if err := m.p.Apply(target, z); err != nil {
			return err
		}
		x.Add(z)
	}

	return nil
}
