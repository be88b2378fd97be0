// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/callow/eigen"
	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/vector"
)

func newEigenCmd(a *app) *cobra.Command {
	var (
		massPath string
		printVec bool
	)
	cmd := &cobra.Command{
		Use:   "eigen <A.mtx>",
		Short: "Compute the dominant eigenpair of A x = λ B x",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := readOperator(args[0])
			if err != nil {
				return err
			}
			var mass matrix.Operator
			if massPath != "" {
				if mass, err = readOperator(massPath); err != nil {
					return err
				}
			}
			s, err := a.settings(eigen.KeyMonitorLevel)
			if err != nil {
				return err
			}

			es, err := eigen.FromSettings(s, eigen.WithLogger(a.logger))
			if err != nil {
				return err
			}
			if err = es.SetOperators(op, mass); err != nil {
				return err
			}

			x := vector.New(op.Rows(), 0)
			status, err := es.Solve(x, nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "solver: %s\n", es.Name())
			fmt.Fprintf(out, "status: %s\n", status)
			fmt.Fprintf(out, "iterations: %d\n", es.Iterations())
			fmt.Fprintf(out, "eigenvalue: %.12g\n", es.Eigenvalue())
			if printVec {
				fmt.Fprintf(out, "x: %s\n", x)
			}
			if a.plotPath != "" {
				title := fmt.Sprintf("%s residual history", es.Name())
				return plotResiduals(a.plotPath, title, es.Residuals())
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&massPath, "mass", "", "B operator as a Matrix Market file (generalized problem)")
	cmd.Flags().BoolVar(&printVec, "print-vector", false, "print the eigenvector")

	return cmd
}
