// SPDX-License-Identifier: MIT

// Package callow is a small iterative linear-algebra toolkit: linear solvers,
// preconditioners and dominant-eigenpair solvers over a common operator
// abstraction, configured from a key/value settings database.
//
// Layout:
//
//	vector/         dense float64 vectors and norms
//	matrix/         Operator, Sparse (CSR), Dense, Shell (matrix-free), Identity
//	preconditioner/ identity, jacobi, ilu0, matrix; registry keyed by "pc_type"
//	solver/         richardson, jacobi, gauss-seidel, gmres, mr1; convergence Monitor
//	eigen/          power, davidson, direct; generalized problems A x = λ B x
//	config/         Settings database with nested databases and YAML I/O
//	cmd/callow      command-line driver for Matrix Market systems
//
// Quick example:
//
//	s := config.New().Put("linear_solver_type", "gmres").Put("pc_type", "ilu0")
//	ls, _ := solver.FromSettings(s)
//	_ = ls.SetOperator(a, nil)
//	status, _ := ls.Solve(b, x)
//
// The core never initializes external numerical runtimes on its own. Hosts
// that register external backends hook their setup into Initialize and
// teardown into Finalize.
package callow
