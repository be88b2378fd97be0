// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// tridiagonal writes the symmetric 5×5 matrix tridiag(-1, 4, -1).
func tridiagonal(t *testing.T, dir string) string {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("%%MatrixMarket matrix coordinate real symmetric\n5 5 9\n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&sb, "%d %d 4\n", i, i)
		if i > 1 {
			fmt.Fprintf(&sb, "%d %d -1\n", i, i-1)
		}
	}
	path := filepath.Join(dir, "a.mtx")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o600))

	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestSolveCommand(t *testing.T) {
	dir := t.TempDir()
	a := tridiagonal(t, dir)
	cfg := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
linear_solver_type: gmres
linear_solver_rtol: 1.0e-12
pc_type: jacobi
pc_side: right
`), 0o600))
	plotPath := filepath.Join(dir, "residuals.png")

	out, logs, err := run(t, "solve", a, "--config", cfg, "--plot", plotPath, "-v")
	require.NoError(t, err)
	require.Contains(t, out, "solver: gmres\n")
	require.Contains(t, out, "status: success\n")
	require.Contains(t, logs, "converged")

	info, err := os.Stat(plotPath)
	require.NoError(t, err)
	require.Positive(t, info.Size())
}

func TestEigenCommand(t *testing.T) {
	dir := t.TempDir()
	a := tridiagonal(t, dir)
	cfg := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("eigen_solver_type: direct\n"), 0o600))

	out, _, err := run(t, "eigen", a, "--config", cfg)
	require.NoError(t, err)
	require.Contains(t, out, "status: success\n")
	require.Contains(t, out, "eigenvalue: 5.7320508")
}

func TestCommandErrors(t *testing.T) {
	_, _, err := run(t, "solve", filepath.Join(t.TempDir(), "missing.mtx"))
	require.Error(t, err)

	dir := t.TempDir()
	a := tridiagonal(t, dir)
	cfg := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("linear_solver_type: cg\n"), 0o600))
	_, _, err = run(t, "solve", a, "--config", cfg)
	require.ErrorContains(t, err, "unknown")
}
