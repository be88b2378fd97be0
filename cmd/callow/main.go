// SPDX-License-Identifier: MIT

// Command callow runs a linear or eigen solve on a Matrix Market system.
//
//	callow solve A.mtx --config settings.yaml --plot residuals.png
//	callow eigen A.mtx --mass B.mtx -v
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/callow"
	"github.com/katalvlaran/callow/config"
	"github.com/katalvlaran/callow/matrix"
)

// app carries the flags shared by every subcommand.
type app struct {
	configPath string
	plotPath   string
	verbose    int

	out    io.Writer
	logger *slog.Logger
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:           "callow",
		Short:         "Iterative linear and eigen solvers for sparse systems",
		Long:          `Load a Matrix Market operator and YAML settings, run a solver and report its status.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = newLogger(errOut, a.verbose)
			return callow.Initialize()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return callow.Finalize()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML settings file")
	root.PersistentFlags().StringVar(&a.plotPath, "plot", "", "write the residual history to this PNG/SVG/PDF file")
	root.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "monitor verbosity (-v terminal events, -vv every iteration)")

	root.AddCommand(newSolveCmd(a), newEigenCmd(a))

	return root
}

// newLogger builds a text handler on w; the level follows the -v count.
func newLogger(w io.Writer, verbose int) *slog.Logger {
	level := slog.LevelWarn
	if verbose > 0 {
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// settings loads --config (empty settings when unset) and raises the
// monitor level under key to the -v count unless the file sets it.
func (a *app) settings(keys ...string) (*config.Settings, error) {
	s := config.New()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return nil, err
		}
		s = loaded
	}
	for _, key := range keys {
		if a.verbose > 0 && !s.Check(key) {
			s.Put(key, a.verbose)
		}
	}

	return s, nil
}

// readOperator reads an assembled Sparse matrix from a Matrix Market file.
func readOperator(path string) (*matrix.Sparse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := matrix.ReadMarket(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}
