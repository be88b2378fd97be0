// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/callow/solver"
	"github.com/katalvlaran/callow/vector"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		rhsPath  string
		printSol bool
	)
	cmd := &cobra.Command{
		Use:   "solve <A.mtx>",
		Short: "Solve A x = b with the configured linear solver",
		Long: `Solve A x = b. The right-hand side is read from --rhs (an n×1 Matrix Market
file) or defaults to all ones. The initial guess is zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := readOperator(args[0])
			if err != nil {
				return err
			}
			s, err := a.settings(solver.KeyMonitorLevel)
			if err != nil {
				return err
			}

			n := op.Rows()
			b := vector.New(n, 1)
			if rhsPath != "" {
				rhs, err := readOperator(rhsPath)
				if err != nil {
					return err
				}
				if rhs.Rows() != n || rhs.Cols() != 1 {
					return fmt.Errorf("rhs is %d×%d, want %d×1", rhs.Rows(), rhs.Cols(), n)
				}
				for i := range b {
					if b[i], err = rhs.At(i, 0); err != nil {
						return err
					}
				}
			}

			ls, err := solver.FromSettings(s, solver.WithLogger(a.logger))
			if err != nil {
				return err
			}
			if err = ls.SetOperator(op, nil); err != nil {
				return err
			}
			if err = ls.SetPreconditioner(nil); err != nil {
				return err
			}

			x := vector.New(n, 0)
			status, err := ls.Solve(b, x)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "solver: %s\n", ls.Name())
			fmt.Fprintf(out, "status: %s\n", status)
			fmt.Fprintf(out, "iterations: %d\n", ls.Iterations())
			if hist := ls.Residuals(); len(hist) > 0 {
				fmt.Fprintf(out, "residual: %g\n", hist[len(hist)-1])
			}
			if printSol {
				fmt.Fprintf(out, "x: %s\n", x)
			}
			if a.plotPath != "" {
				title := fmt.Sprintf("%s residual history", ls.Name())
				return plotResiduals(a.plotPath, title, ls.Residuals())
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&rhsPath, "rhs", "", "right-hand side as an n×1 Matrix Market file")
	cmd.Flags().BoolVar(&printSol, "print-solution", false, "print the solution vector")

	return cmd
}
