// SPDX-License-Identifier: MIT

package eigen_test

import (
	"fmt"

	"github.com/katalvlaran/callow/config"
	"github.com/katalvlaran/callow/eigen"
	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/vector"
)

// ExamplePower finds the dominant eigenpair of a symmetric 2×2 matrix.
// The eigenvector is L1-normalized.
func ExamplePower() {
	a, _ := matrix.NewDenseFrom([][]float64{{2, 1}, {1, 2}})

	p, _ := eigen.NewPower(config.New().Put("eigen_solver_tol", 1e-12))
	_ = p.SetOperators(a, nil)

	x := vector.New(2, 0)
	status, err := p.Solve(x, vector.Vector{1, 0})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("status:", status)
	fmt.Printf("lambda: %.6f\n", p.Eigenvalue())
	fmt.Printf("x: %.6f\n", []float64(x))

	// Output:
	// status: success
	// lambda: 3.000000
	// x: [0.500000 0.500000]
}
