// SPDX-License-Identifier: MIT

// Package eigen finds the dominant eigenpair of A x = λ B x (B = I for the
// standard problem).
//
//   - Power: power iteration; a generalized problem solves B y = A v with an
//     inner solver.LinearSolver every step.
//   - Davidson: generalized Davidson with a restarted subspace, Ritz pairs
//     from the Direct solver and a diagonal (A − λB) correction by default.
//   - Direct: dense factorization backed by gonum/mat. It serves small
//     problems, the Davidson projections and tests.
//
// Solvers are built by name ("eigen_solver_type", default "power") through
// the registry. Non-convergence is reported through solver.Status.
package eigen
