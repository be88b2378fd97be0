// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide a single, canonical source of truth for operator validation.
//   - Return sentinel errors tagged with the validator name so call sites can
//     wrap uniformly and callers can match with errors.Is.
//
// Determinism & Performance:
//   - All checks are pure, deterministic and allocate nothing.

package matrix

import (
	"fmt"

	"github.com/katalvlaran/callow/vector"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the operator reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(a Operator) error {
	if a == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that a is non-nil and square (Rows == Cols).
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(1).
func ValidateSquare(a Operator) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if a.Rows() != a.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateVecLen ensures len(x) == n.
// Complexity: O(1).
func ValidateVecLen(x vector.Vector, n int) error {
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateMultiply checks the operand lengths of y = A x (transpose=false)
// or y = Aᵗ x (transpose=true).
// Complexity: O(1).
func ValidateMultiply(rows, cols int, x, y vector.Vector, transpose bool) error {
	in, out := cols, rows
	if transpose {
		in, out = rows, cols
	}
	if len(x) != in || len(y) != out {
		return validatorErrorf("ValidateMultiply", ErrDimensionMismatch)
	}

	return nil
}

// ValidateCompatible checks that two square operators share one dimension,
// as required by the pencil (A, B) of a generalized eigenproblem.
// Errors: ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch.
func ValidateCompatible(a, b Operator) error {
	if err := ValidateSquare(a); err != nil {
		return validatorErrorf("ValidateCompatible", err)
	}
	if err := ValidateSquare(b); err != nil {
		return validatorErrorf("ValidateCompatible", err)
	}
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateCompatible", ErrDimensionMismatch)
	}

	return nil
}
