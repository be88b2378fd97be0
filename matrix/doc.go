// Package matrix defines the operator abstraction consumed by every solver.
//
// The package provides:
//
//   - Operator: the uniform capability set {Multiply, MultiplyTranspose,
//     Rows, Cols} that preconditioners and Krylov methods rely on.
//   - Sparse: compressed-row storage assembled from (row, col, value)
//     insertions, with a cached diagonal index per row for O(1) access.
//   - Dense: row-major full storage for small projected systems.
//   - Shell: a matrix-free operator whose action is a caller-supplied
//     function over an opaque context.
//   - Identity: the unit operator used to unify standard and generalized
//     eigenproblems.
//
// Operators are built once (insert, then Assemble for Sparse) and treated
// as immutable by all solvers afterwards.
package matrix
