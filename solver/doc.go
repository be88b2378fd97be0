// SPDX-License-Identifier: MIT

// Package solver implements iterative solvers for A x = b behind one
// LinearSolver interface:
//
//   - Richardson: x ← (I − ωA)x + ωb, or x ← x + P⁻¹(b − Ax) with a left
//     preconditioner.
//   - Jacobi and Gauss-Seidel (SOR for ω ≠ 1): splitting methods that need
//     the compressed-row access of an assembled matrix.Sparse.
//   - GMRES(m): restarted GMRES with modified Gram-Schmidt and optional
//     reorthogonalization; left or right preconditioning.
//   - MR1: one-dimensional minimal residual; left or right preconditioning.
//
// Every solver shares the same Monitor: the residual history, the
// convergence test r < max(rtol·r0, atol), the optional divergence test and
// the iteration ceiling. Not converging is reported through Status and is
// never an error; errors are reserved for invalid input and numerical
// faults (zero diagonal, singular Hessenberg, breakdown).
//
// Solvers are built by name through the registry:
//
//	s, err := solver.FromSettings(settings) // "linear_solver_type", default "gmres"
//	err = s.SetOperator(a, nil)
//	err = s.SetPreconditioner(nil)         // "pc_type", default "ilu0"
//	status, err := s.Solve(b, x)
package solver
