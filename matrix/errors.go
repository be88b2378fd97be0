// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All operators return these sentinels (optionally wrapped with an operation
// tag via matrixErrorf) and tests check them with errors.Is.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when requested shape is invalid (e.g., r<=0 or c<=0).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between an operator
	// and its vector operands.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square operator was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNilMatrix indicates that a nil operator (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil operator")

	// ErrNaNInf signals a NaN or ±Inf value offered for storage.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrUnsupported marks an operation the operator does not provide,
	// e.g. the transpose action of a Shell built without one.
	ErrUnsupported = errors.New("matrix: operation not supported")

	// ErrNotAssembled is returned when a Sparse matrix is used before Assemble.
	ErrNotAssembled = errors.New("matrix: sparse matrix not assembled")

	// ErrAssembled is returned when entries are inserted after Assemble.
	ErrAssembled = errors.New("matrix: sparse matrix already assembled")

	// ErrNotStructured is returned when structured (CSR row/diagonal) access
	// is required but the operator does not provide it.
	ErrNotStructured = errors.New("matrix: operator has no structured access")

	// ErrMarketFormat is returned by ReadMarket for malformed input.
	ErrMarketFormat = errors.New("matrix: malformed matrix market data")
)

// Operation tags for uniform error wrapping.
const (
	opMultiply          = "Multiply"
	opMultiplyTranspose = "MultiplyTranspose"
	opInsert            = "Insert"
	opAssemble          = "Assemble"
	opDiagonal          = "Diagonal"
	opNewShell          = "NewShell"
	opReadMarket        = "ReadMarket"
	opGridLaplacian     = "NewGridLaplacian"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
