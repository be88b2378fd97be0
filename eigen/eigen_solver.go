// SPDX-License-Identifier: MIT

package eigen

import (
	"log/slog"

	"github.com/katalvlaran/callow/config"
	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/preconditioner"
	"github.com/katalvlaran/callow/solver"
	"github.com/katalvlaran/callow/vector"
)

// Settings keys read by every eigensolver.
const (
	KeyType           = "eigen_solver_type"
	KeyTol            = "eigen_solver_tol"
	KeyMaxIt          = "eigen_solver_maxit"
	KeyMonitorLevel   = "eigen_solver_monitor_level"
	KeyLinearSolverDB = "eigen_solver_linear_solver_db"
	KeyPCDB           = "eigen_solver_pc_db"
)

// Defaults.
const (
	DefaultType  = "power"
	DefaultTol   = 1e-5
	DefaultMaxIt = 1000
)

// EigenSolver computes the dominant eigenpair of A x = λ B x.
type EigenSolver interface {
	// Name returns the registry name.
	Name() string

	// SetOperators sets A and an optional B (nil for the standard problem).
	SetOperators(a, b matrix.Operator) error

	// SetPreconditioner sets the preconditioner of the inner linear solver
	// (Power) or the correction preconditioner (Davidson).
	SetPreconditioner(p preconditioner.Preconditioner) error

	// SetPreconditionerMatrix wraps m as a preconditioner.Matrix and calls
	// SetPreconditioner.
	SetPreconditionerMatrix(m matrix.Operator) error

	// SetParameters re-reads all options and resets the counters.
	SetParameters(s *config.Settings) error

	// Solve computes the eigenvector into x starting from x0 (all ones when
	// x0 is empty).
	Solve(x, x0 vector.Vector) (solver.Status, error)

	Eigenvalue() float64
	Iterations() int
	Residuals() []float64
	Status() solver.Status
}

// Option configures an eigensolver at construction.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger routes monitor output to logger instead of slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// base holds the state shared by all eigensolvers.
type base struct {
	name     string
	settings *config.Settings
	logger   *slog.Logger

	tol   float64
	maxit int
	level int

	a, b        matrix.Operator // b is the identity for standard problems
	generalized bool
	linear      solver.LinearSolver // applies B⁻¹ when generalized

	lambda float64
	hist   []float64
	iters  int
	status solver.Status

	solveFn     func(x, x0 vector.Vector) error
	configureFn func(s *config.Settings) error
}

func (s *base) init(name string, settings *config.Settings, opts []Option,
	solveFn func(x, x0 vector.Vector) error, configureFn func(*config.Settings) error) error {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	s.name = name
	s.logger = o.logger
	s.status = solver.Running
	s.solveFn = solveFn
	s.configureFn = configureFn

	return s.SetParameters(settings)
}

// Name returns the registry name.
func (s *base) Name() string { return s.name }

// Eigenvalue returns λ of the last solve.
func (s *base) Eigenvalue() float64 { return s.lambda }

// Iterations returns the iteration count of the last solve.
func (s *base) Iterations() int { return s.iters }

// Residuals returns the residual norm of every iteration of the last solve.
func (s *base) Residuals() []float64 { return s.hist }

// Status returns the outcome of the last solve.
func (s *base) Status() solver.Status { return s.status }

// LinearSolver returns the inner solver of a generalized problem, or nil.
func (s *base) LinearSolver() solver.LinearSolver { return s.linear }

// SetParameters re-reads tolerance, iteration limit and verbosity.
func (s *base) SetParameters(settings *config.Settings) error {
	tol, err := settings.Float(KeyTol, DefaultTol)
	if err != nil {
		return eigenErrorf(s.name, err)
	}
	maxit, err := settings.Int(KeyMaxIt, DefaultMaxIt)
	if err != nil {
		return eigenErrorf(s.name, err)
	}
	level, err := settings.Int(KeyMonitorLevel, 0)
	if err != nil {
		return eigenErrorf(s.name, err)
	}
	if tol < 0 || maxit < 1 {
		return eigenErrorf(s.name, ErrInvalidParameter)
	}
	if s.configureFn != nil {
		if err = s.configureFn(settings); err != nil {
			return err
		}
	}
	s.settings = settings
	s.tol, s.maxit, s.level = tol, maxit, level
	s.iters = 0
	s.hist = s.hist[:0]

	return nil
}

// SetOperators sets A and B. With a non-nil B an inner linear solver is
// built from the nested "eigen_solver_linear_solver_db" database, or from
// the top-level settings when absent.
func (s *base) SetOperators(a, b matrix.Operator) error {
	if a == nil {
		return eigenErrorf(s.name, ErrNilOperator)
	}
	if b == nil {
		if err := matrix.ValidateSquare(a); err != nil {
			return eigenErrorf(s.name, err)
		}
		id, err := matrix.NewIdentity(a.Rows())
		if err != nil {
			return eigenErrorf(s.name, err)
		}
		s.a, s.b, s.generalized, s.linear = a, id, false, nil

		return nil
	}
	if err := matrix.ValidateCompatible(a, b); err != nil {
		return eigenErrorf(s.name, err)
	}

	db := s.settings
	if s.settings.Check(KeyLinearSolverDB) {
		sub, err := s.settings.Sub(KeyLinearSolverDB)
		if err != nil {
			return eigenErrorf(s.name, err)
		}
		db = sub
	}
	linear, err := solver.FromSettings(db, solver.WithLogger(s.logger))
	if err != nil {
		return eigenErrorf(s.name, err)
	}
	if err = linear.SetOperator(b, nil); err != nil {
		return eigenErrorf(s.name, err)
	}
	s.a, s.b, s.generalized, s.linear = a, b, true, linear

	return nil
}

// SetPreconditioner forwards p to the inner linear solver.
// Errors: ErrNotGeneralized for standard problems.
func (s *base) SetPreconditioner(p preconditioner.Preconditioner) error {
	if s.linear == nil {
		return eigenErrorf(s.name, ErrNotGeneralized)
	}
	if err := s.linear.SetPreconditioner(p); err != nil {
		return eigenErrorf(s.name, err)
	}

	return nil
}

// SetPreconditionerMatrix forwards preconditioner.Matrix(m) to the inner
// linear solver.
func (s *base) SetPreconditionerMatrix(m matrix.Operator) error {
	p, err := preconditioner.NewMatrix(m)
	if err != nil {
		return eigenErrorf(s.name, err)
	}

	return s.SetPreconditioner(p)
}

// Solve validates the vectors, runs the algorithm and returns its status.
// The status starts as MaxIt so an exhausted loop needs no extra bookkeeping;
// on error it is Diverge.
func (s *base) Solve(x, x0 vector.Vector) (solver.Status, error) {
	if s.a == nil {
		s.status = solver.Diverge
		return s.status, eigenErrorf(s.name, ErrNoOperator)
	}
	n := s.a.Rows()
	if len(x) != n || (len(x0) != 0 && len(x0) != n) {
		s.status = solver.Diverge
		return s.status, eigenErrorf(s.name, matrix.ErrDimensionMismatch)
	}

	s.status = solver.MaxIt
	s.iters = 0
	s.hist = s.hist[:0]
	if err := s.solveFn(x, x0); err != nil {
		s.status = solver.Diverge
		return s.status, eigenErrorf(s.name, err)
	}
	if s.status == solver.MaxIt && s.level > 0 {
		s.logger.Warn("eigensolver did not converge within the maximum number of iterations",
			slog.String("solver", s.name), slog.Int("maxit", s.maxit))
	}

	return s.status, nil
}

// monitor records residual r of iteration it and reports whether to stop:
// Success when r < tol, MaxIt when it ≥ maxit.
func (s *base) monitor(it int, lambda, r float64) bool {
	s.iters = it
	s.hist = append(s.hist, r)
	if s.level > 1 {
		s.logger.Info("iteration", slog.String("solver", s.name), slog.Int("iteration", it),
			slog.Float64("eigenvalue", lambda), slog.Float64("residual", r))
	}
	if r < s.tol {
		s.status = solver.Success
		if s.level > 0 {
			s.logger.Info("eigensolver converged", slog.String("solver", s.name),
				slog.Int("iteration", it), slog.Float64("eigenvalue", lambda), slog.Float64("residual", r))
		}
		return true
	}
	if it >= s.maxit {
		s.status = solver.MaxIt
		return true
	}

	return false
}

// initialVector returns a copy of x0 (all ones when empty) scaled to unit
// L1 norm.
func initialVector(n int, x0 vector.Vector) (vector.Vector, error) {
	v := vector.New(n, 1)
	if len(x0) != 0 {
		v.Copy(x0)
	}
	norm := v.Norm(vector.L1)
	if norm == 0 {
		return nil, ErrZeroVector
	}
	v.Scale(1 / norm)

	return v, nil
}
