// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/callow/config"
	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/preconditioner"
	"github.com/katalvlaran/callow/vector"
)

// Settings keys read by every linear solver.
const (
	KeyType           = "linear_solver_type"
	KeyATol           = "linear_solver_atol"
	KeyRTol           = "linear_solver_rtol"
	KeyMaxIt          = "linear_solver_maxit"
	KeyMonitorLevel   = "linear_solver_monitor_level"
	KeyMonitorDiverge = "linear_solver_monitor_diverge"
	KeyRelaxation     = "linear_solver_relaxation"
	KeyNormType       = "linear_solver_norm_type"
	KeyPCSide         = "pc_side"
)

// Defaults.
const (
	DefaultType       = "gmres"
	DefaultATol       = 1e-8
	DefaultRTol       = 1e-8
	DefaultMaxIt      = 100
	DefaultRelaxation = 1.0
	DefaultSide       = Left
)

// LinearSolver solves A x = b iteratively.
type LinearSolver interface {
	// Name returns the registry name of the solver.
	Name() string

	// SetOperator sets A and an optional preconditioner.
	SetOperator(a matrix.Operator, p preconditioner.Preconditioner) error

	// SetPreconditioner replaces the preconditioner. With p == nil one is
	// built from the registry using "pc_type" of the current settings.
	SetPreconditioner(p preconditioner.Preconditioner, opts ...preconditioner.Option) error

	// SetParameters re-reads all options from s and resets the counters.
	SetParameters(s *config.Settings) error

	// Solve solves A x = b using x as the initial guess.
	Solve(b, x vector.Vector) (Status, error)

	Operator() matrix.Operator
	Preconditioner() preconditioner.Preconditioner
	Side() Side
	Status() Status
	Iterations() int
	Residuals() []float64
}

// base carries the state shared by all solvers; algorithms embed it and
// supply solveFn (and optionally configureFn for their own keys).
type base struct {
	mon Monitor

	name     string
	settings *config.Settings
	opts     options

	a     matrix.Operator
	p     preconditioner.Preconditioner
	side  Side
	omega float64
	norm  vector.NormType

	solveFn     func(b, x vector.Vector) error
	configureFn func(s *config.Settings) error
}

func (s *base) init(name string, settings *config.Settings, opts []Option,
	solveFn func(b, x vector.Vector) error, configureFn func(*config.Settings) error) error {
	s.name = name
	s.opts = gatherOptions(opts)
	s.mon = Monitor{name: name, logger: s.opts.logger, status: Running}
	s.solveFn = solveFn
	s.configureFn = configureFn

	return s.SetParameters(settings)
}

// Name returns the registry name.
func (s *base) Name() string { return s.name }

// Operator returns A.
func (s *base) Operator() matrix.Operator { return s.a }

// Preconditioner returns the current preconditioner, possibly nil.
func (s *base) Preconditioner() preconditioner.Preconditioner { return s.p }

// Side returns the preconditioning side.
func (s *base) Side() Side { return s.side }

// Status returns the outcome of the last solve.
func (s *base) Status() Status { return s.mon.Status() }

// Iterations returns the iteration count of the last solve.
func (s *base) Iterations() int { return s.mon.Iterations() }

// Residuals returns the residual history of the last solve.
func (s *base) Residuals() []float64 { return s.mon.Residuals() }

// Settings returns the database the solver was configured from.
func (s *base) Settings() *config.Settings { return s.settings }

// SetParameters re-reads every option from settings. A nil database
// restores the defaults.
func (s *base) SetParameters(settings *config.Settings) error {
	atol, err := settings.Float(KeyATol, DefaultATol)
	if err != nil {
		return solverErrorf(s.name, err)
	}
	rtol, err := settings.Float(KeyRTol, DefaultRTol)
	if err != nil {
		return solverErrorf(s.name, err)
	}
	maxit, err := settings.Int(KeyMaxIt, DefaultMaxIt)
	if err != nil {
		return solverErrorf(s.name, err)
	}
	level, err := settings.Int(KeyMonitorLevel, 0)
	if err != nil {
		return solverErrorf(s.name, err)
	}
	diverge, err := settings.Bool(KeyMonitorDiverge, false)
	if err != nil {
		return solverErrorf(s.name, err)
	}
	omega, err := settings.Float(KeyRelaxation, DefaultRelaxation)
	if err != nil {
		return solverErrorf(s.name, err)
	}
	if omega <= 0 {
		return fmt.Errorf("%s: relaxation %g: %w", s.name, omega, ErrInvalidParameter)
	}
	side := DefaultSide
	if raw, ok := settings.Raw(KeyPCSide); ok {
		if side, err = ParseSide(raw); err != nil {
			return solverErrorf(s.name, err)
		}
	}
	norm := vector.L2
	if raw, ok := settings.Raw(KeyNormType); ok {
		if norm, err = parseNorm(raw); err != nil {
			return solverErrorf(s.name, err)
		}
	}
	if err = s.mon.configure(atol, rtol, maxit); err != nil {
		return err
	}
	if s.configureFn != nil {
		if err = s.configureFn(settings); err != nil {
			return err
		}
	}

	s.settings = settings
	s.mon.SetLevel(level)
	s.mon.SetDiverge(diverge)
	s.omega = omega
	s.side = side
	s.norm = norm
	s.mon.iters = 0
	s.mon.hist = s.mon.hist[:0]

	return nil
}

// SetOperator sets A (square) and an optional preconditioner of matching size.
func (s *base) SetOperator(a matrix.Operator, p preconditioner.Preconditioner) error {
	if a == nil {
		return solverErrorf(s.name, ErrNilOperator)
	}
	if err := matrix.ValidateSquare(a); err != nil {
		return solverErrorf(s.name, err)
	}
	if p != nil && p.Size() != a.Rows() {
		return solverErrorf(s.name, matrix.ErrDimensionMismatch)
	}
	s.a, s.p = a, p

	return nil
}

// SetPreconditioner replaces P; nil builds one from "pc_type".
func (s *base) SetPreconditioner(p preconditioner.Preconditioner, opts ...preconditioner.Option) error {
	if s.a == nil {
		return solverErrorf(s.name, ErrNoOperator)
	}
	if p == nil {
		built, err := preconditioner.FromSettings(s.a, s.settings, opts...)
		if err != nil {
			return solverErrorf(s.name, err)
		}
		p = built
	}
	if p.Size() != s.a.Rows() {
		return solverErrorf(s.name, matrix.ErrDimensionMismatch)
	}
	s.p = p

	return nil
}

// Solve validates the operands, runs the algorithm and returns its status.
// On error the status is Diverge.
func (s *base) Solve(b, x vector.Vector) (Status, error) {
	if s.a == nil {
		s.mon.Fail()
		return s.mon.status, solverErrorf(s.name, ErrNoOperator)
	}
	n := s.a.Rows()
	if len(b) != n || len(x) != n {
		s.mon.Fail()
		return s.mon.status, solverErrorf(s.name, matrix.ErrDimensionMismatch)
	}

	s.mon.Reset()
	if n == 0 {
		s.mon.Converged(0, 0)
		s.mon.Finish()
		return s.mon.status, nil
	}
	if err := s.solveFn(b, x); err != nil {
		s.mon.Fail()
		return s.mon.status, solverErrorf(s.name, err)
	}
	s.mon.Finish()

	return s.mon.status, nil
}

// left and right report whether a preconditioner is active on that side.
func (s *base) left() bool  { return s.p != nil && s.side == Left }
func (s *base) right() bool { return s.p != nil && s.side == Right }

func parseNorm(v any) (vector.NormType, error) {
	switch t := v.(type) {
	case int:
		if t >= int(vector.L1) && t <= int(vector.LInf) {
			return vector.NormType(t), nil
		}
	case string:
		switch strings.ToLower(t) {
		case "l1":
			return vector.L1, nil
		case "l2":
			return vector.L2, nil
		case "linf":
			return vector.LInf, nil
		}
	}

	return vector.L2, fmt.Errorf("%s %v: %w", KeyNormType, v, ErrInvalidParameter)
}
