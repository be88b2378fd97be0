// SPDX-License-Identifier: MIT

package eigen

import (
	"errors"
	"fmt"
)

var (
	// ErrNilOperator is returned when A is nil.
	ErrNilOperator = errors.New("eigen: nil operator")

	// ErrNoOperator is returned by Solve before SetOperators.
	ErrNoOperator = errors.New("eigen: operators not set")

	// ErrNotGeneralized is returned when a preconditioner is offered to a
	// standard problem that has no inner linear solver.
	ErrNotGeneralized = errors.New("eigen: preconditioner requires a generalized problem")

	// ErrInvalidParameter is returned for out-of-range settings.
	ErrInvalidParameter = errors.New("eigen: invalid parameter")

	// ErrZeroVector is returned for an all-zero initial guess.
	ErrZeroVector = errors.New("eigen: zero initial vector")

	// ErrBreakdown is returned when the iteration produces a zero vector or
	// an exhausted search space.
	ErrBreakdown = errors.New("eigen: breakdown")

	// ErrNoRealEigenvalue is returned when no real dominant eigenvalue exists.
	ErrNoRealEigenvalue = errors.New("eigen: no real dominant eigenvalue")

	// ErrFactorization is returned when the dense factorization fails.
	ErrFactorization = errors.New("eigen: dense factorization failed")

	// ErrUnknownType is returned by the registry for unregistered names.
	ErrUnknownType = errors.New("eigen: unknown type")
)

func eigenErrorf(name string, err error) error {
	return fmt.Errorf("%s: %w", name, err)
}
