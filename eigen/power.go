// SPDX-License-Identifier: MIT

package eigen

import (
	"log/slog"

	"github.com/katalvlaran/callow/config"
	"github.com/katalvlaran/callow/solver"
	"github.com/katalvlaran/callow/vector"
)

// Power is power iteration for the dominant eigenpair.
//
// Each step computes y = A v (then solves B y' = y when generalized, using
// v as the initial guess), λ = sign(vᵗy)·‖y‖₁, the residual ‖y − λv‖₁ and
// v = y/λ. The eigenvector keeps unit L1 norm.
type Power struct {
	base
}

var _ EigenSolver = (*Power)(nil)

// NewPower builds a power iteration from settings.
func NewPower(s *config.Settings, opts ...Option) (*Power, error) {
	p := &Power{}
	if err := p.init("power", s, opts, p.solve, nil); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Power) solve(x, x0 vector.Vector) error {
	n := len(x)
	v, err := initialVector(n, x0)
	if err != nil {
		return err
	}
	y := vector.New(n, 0)
	tmp := vector.New(n, 0)

	for it := 1; ; it++ {
		if err = p.a.Multiply(v, y); err != nil {
			return err
		}
		if p.generalized {
			tmp.Copy(v)
			status, err := p.linear.Solve(y, tmp)
			if err != nil {
				return err
			}
			if status != solver.Success && p.level > 0 {
				p.logger.Warn("inner linear solve did not converge",
					slog.String("solver", p.name), slog.Int("iteration", it), slog.String("status", status.String()))
			}
			y.Copy(tmp)
		}

		lambda := y.Norm(vector.L1)
		if lambda == 0 {
			return ErrBreakdown
		}
		if v.Dot(y) < 0 {
			lambda = -lambda
		}

		// tmp = λ v, residual ‖y − λ v‖₁
		tmp.Copy(v)
		tmp.Scale(lambda)
		res := y.NormResidual(tmp, vector.L1)

		v.Copy(y)
		v.Scale(1 / lambda)
		p.lambda = lambda
		if p.monitor(it, lambda, res) {
			break
		}
	}
	x.Copy(v)

	return nil
}
