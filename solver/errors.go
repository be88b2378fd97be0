// SPDX-License-Identifier: MIT

package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrNilOperator is returned when a nil operator is supplied.
	ErrNilOperator = errors.New("solver: nil operator")

	// ErrNoOperator is returned when Solve or SetPreconditioner is called
	// before SetOperator.
	ErrNoOperator = errors.New("solver: operator not set")

	// ErrInvalidParameter is returned for out-of-range settings.
	ErrInvalidParameter = errors.New("solver: invalid parameter")

	// ErrUnknownType is returned by the registry for unregistered names.
	ErrUnknownType = errors.New("solver: unknown type")

	// ErrZeroDiagonal is returned by splitting solvers for a zero a_ii.
	ErrZeroDiagonal = errors.New("solver: zero diagonal entry")

	// ErrSingular is returned when GMRES meets a zero diagonal in its
	// triangularized Hessenberg matrix.
	ErrSingular = errors.New("solver: singular least-squares system")

	// ErrBreakdown is returned when a search direction vanishes before
	// convergence (MR1).
	ErrBreakdown = errors.New("solver: breakdown")
)

// solverErrorf wraps err with the solver name.
func solverErrorf(name string, err error) error {
	return fmt.Errorf("%s: %w", name, err)
}
