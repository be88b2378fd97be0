// SPDX-License-Identifier: MIT

// Package preconditioner provides approximate inverses applied by the
// iterative solvers: Identity, Jacobi (diagonal), ILU(0) and Matrix (a
// user-supplied operator standing for P⁻¹).
//
// A preconditioner captures the operator it was built from; it is stale
// once that operator changes and must be rebuilt.
package preconditioner

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/vector"
)

var (
	// ErrZeroDiagonal is returned by Jacobi for a zero diagonal entry.
	ErrZeroDiagonal = errors.New("preconditioner: zero diagonal entry")

	// ErrZeroPivot is returned by ILU0 when elimination meets a zero pivot.
	ErrZeroPivot = errors.New("preconditioner: zero pivot")

	// ErrUnknownType is returned by the registry for unregistered names.
	ErrUnknownType = errors.New("preconditioner: unknown type")

	// ErrNilOperator is returned when no operator is available.
	ErrNilOperator = errors.New("preconditioner: nil operator")
)

// Preconditioner applies x = P⁻¹ b.
type Preconditioner interface {
	// Size returns the order of the preconditioner.
	Size() int

	// Apply computes x = P⁻¹ b. len(b) == len(x) == Size().
	Apply(b, x vector.Vector) error
}

func pcErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// checkApply validates the operands of Apply.
func checkApply(tag string, n int, b, x vector.Vector) error {
	if len(b) != n || len(x) != n {
		return fmt.Errorf("%s: len(b)=%d len(x)=%d size=%d: %w",
			tag, len(b), len(x), n, matrix.ErrDimensionMismatch)
	}

	return nil
}
