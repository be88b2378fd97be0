// SPDX-License-Identifier: MIT

package solver_test

import (
	"fmt"

	"github.com/katalvlaran/callow/config"
	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/solver"
	"github.com/katalvlaran/callow/vector"
)

// ExampleGMRES solves a small tridiagonal system with ILU(0) on the right.
func ExampleGMRES() {
	a, _ := matrix.NewSparse(4, 4, 3)
	for i := 0; i < 4; i++ {
		_ = a.Insert(i, i, 4, matrix.Insert)
		if i > 0 {
			_ = a.Insert(i, i-1, -1, matrix.Insert)
			_ = a.Insert(i-1, i, -1, matrix.Insert)
		}
	}
	_ = a.Assemble()

	s := config.New().
		Put("linear_solver_type", "gmres").
		Put("linear_solver_rtol", 1e-12).
		Put("pc_type", "ilu0").
		Put("pc_side", "right")
	ls, err := solver.FromSettings(s)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	_ = ls.SetOperator(a, nil)
	_ = ls.SetPreconditioner(nil)

	b := vector.Vector{2, 3, 6, 13}
	x := vector.New(4, 0)
	status, err := ls.Solve(b, x)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("status:", status)
	fmt.Printf("x: %.6f\n", []float64(x))

	// Output:
	// status: success
	// x: [1.000000 2.000000 3.000000 4.000000]
}
