// SPDX-License-Identifier: MIT

// Package matrix: capability interfaces.
// Operator is the only contract generic solvers (Richardson, GMRES, MR1,
// eigensolvers) rely on. Structured and Diagonaler are narrower
// capabilities offered by explicit storage formats and required by
// splitting-based solvers and factorizations.
package matrix

import "github.com/katalvlaran/callow/vector"

// Operator is a linear map y = A x.
//
// Implementations must not allocate on the hot path beyond what the caller
// supplies and must return ErrDimensionMismatch when len(x) != Cols() or
// len(y) != Rows() (swapped for the transpose action).
type Operator interface {
	// Rows returns the number of rows.
	Rows() int

	// Cols returns the number of columns.
	Cols() int

	// Multiply computes y = A x.
	Multiply(x, y vector.Vector) error

	// MultiplyTranspose computes y = Aᵗ x. Operators without a transpose
	// action return ErrUnsupported.
	MultiplyTranspose(x, y vector.Vector) error
}

// Structured exposes compressed-row access to an assembled square matrix.
// Entries of row i live at positions [Start(i), End(i)) with ascending
// columns; DiagonalIndex(i) is the position whose column equals i.
type Structured interface {
	Operator

	Start(i int) int
	End(i int) int
	Column(p int) int
	Value(p int) float64
	DiagonalIndex(i int) int
}

// Diagonaler is implemented by operators that can report their main
// diagonal without probing.
type Diagonaler interface {
	// Diagonal writes the main diagonal into dst (len(dst) == Rows()).
	Diagonal(dst vector.Vector) error
}

// InsertMode selects how Sparse.Insert treats an existing (row, col) entry.
type InsertMode int

const (
	// Insert overwrites any existing value.
	Insert InsertMode = iota
	// Add accumulates into any existing value.
	Add
)

// String implements fmt.Stringer.
func (m InsertMode) String() string {
	if m == Add {
		return "add"
	}

	return "insert"
}
