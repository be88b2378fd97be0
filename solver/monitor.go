// SPDX-License-Identifier: MIT

package solver

import (
	"log/slog"
	"math"
)

// Monitor records residual norms and decides when a solve stops.
//
// Stopping rules, in order, for iteration it with residual r:
//   - Success when r < max(rtol·r0, atol);
//   - Diverge when divergence checking is on, it ≥ 1 and r > r_{it−1};
//   - MaxIt when it ≥ maxit.
//
// The history holds maxit+1 slots during a solve and is truncated to
// iterations+1 by Finish.
type Monitor struct {
	name    string
	atol    float64
	rtol    float64
	maxit   int
	level   int
	diverge bool
	logger  *slog.Logger

	hist   []float64
	iters  int
	status Status
}

// NewMonitor returns a monitor with the given tolerances.
// Errors: ErrInvalidParameter for negative tolerances or maxit < 1.
func NewMonitor(name string, atol, rtol float64, maxit int, logger *slog.Logger) (*Monitor, error) {
	m := &Monitor{name: name, logger: logger, status: Running}
	if err := m.configure(atol, rtol, maxit); err != nil {
		return nil, err
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}

	return m, nil
}

func (m *Monitor) configure(atol, rtol float64, maxit int) error {
	if atol < 0 || rtol < 0 || math.IsNaN(atol) || math.IsNaN(rtol) {
		return solverErrorf(m.name, ErrInvalidParameter)
	}
	if maxit < 1 {
		return solverErrorf(m.name, ErrInvalidParameter)
	}
	m.atol, m.rtol, m.maxit = atol, rtol, maxit

	return nil
}

// SetLevel sets the verbosity: ≥1 logs terminal events, ≥2 every iteration.
func (m *Monitor) SetLevel(level int) { m.level = level }

// SetDiverge enables or disables the divergence check.
func (m *Monitor) SetDiverge(on bool) { m.diverge = on }

// MaxIterations returns the iteration ceiling.
func (m *Monitor) MaxIterations() int { return m.maxit }

// Reset prepares the monitor for a new solve.
func (m *Monitor) Reset() {
	if cap(m.hist) >= m.maxit+1 {
		m.hist = m.hist[:m.maxit+1]
	} else {
		m.hist = make([]float64, m.maxit+1)
	}
	for i := range m.hist {
		m.hist[i] = 0
	}
	m.iters = 0
	m.status = Running
}

// Init records the initial residual and reports Success when r0 < atol.
func (m *Monitor) Init(r0 float64) bool {
	m.hist[0] = r0
	m.iters = 0
	m.trace(0, r0)
	if r0 < m.atol {
		m.status = Success
		m.logTerminal(0, r0)
		return true
	}

	return false
}

// Check records residual r of iteration it and reports whether the solve
// must stop; Status tells why.
func (m *Monitor) Check(it int, r float64) bool {
	m.iters = it
	m.hist[it] = r
	m.trace(it, r)

	switch {
	case r < math.Max(m.rtol*m.hist[0], m.atol):
		m.status = Success
	case m.diverge && it >= 1 && r > m.hist[it-1]:
		m.status = Diverge
	case it >= m.maxit:
		m.status = MaxIt
	default:
		m.status = Running
		return false
	}
	m.logTerminal(it, r)

	return true
}

// Converged marks the solve successful at iteration it with residual r,
// for exact solutions the relative test cannot see (r0 = 0, atol = 0).
func (m *Monitor) Converged(it int, r float64) {
	m.iters = it
	m.hist[it] = r
	m.status = Success
	m.logTerminal(it, r)
}

// Finish truncates the history to the iterations performed and logs a
// non-converged result.
func (m *Monitor) Finish() {
	if m.status == MaxIt && m.level > 0 {
		m.logger.Warn("linear solver did not converge within the maximum number of iterations",
			slog.String("solver", m.name), slog.Int("maxit", m.maxit))
	}
	m.hist = m.hist[:m.iters+1]
}

// Fail marks a solve aborted by an error.
func (m *Monitor) Fail() {
	m.status = Diverge
	if len(m.hist) > m.iters+1 {
		m.hist = m.hist[:m.iters+1]
	}
}

// Status returns the outcome of the last solve.
func (m *Monitor) Status() Status { return m.status }

// Iterations returns the number of iterations of the last solve.
func (m *Monitor) Iterations() int { return m.iters }

// Residuals returns the residual history of the last solve.
func (m *Monitor) Residuals() []float64 { return m.hist }

func (m *Monitor) trace(it int, r float64) {
	if m.level > 1 {
		m.logger.Info("iteration",
			slog.String("solver", m.name), slog.Int("iteration", it), slog.Float64("residual", r))
	}
}

func (m *Monitor) logTerminal(it int, r float64) {
	if m.level < 1 {
		return
	}
	attrs := []any{slog.String("solver", m.name), slog.Int("iteration", it), slog.Float64("residual", r)}
	switch m.status {
	case Success:
		m.logger.Info("linear solver converged", attrs...)
	case Diverge:
		m.logger.Warn("linear solver diverged", attrs...)
	case MaxIt:
		m.logger.Warn("linear solver reached the maximum iterations", attrs...)
	}
}
