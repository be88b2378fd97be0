// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small deterministic wrappers shared by the operator tests.

package matrix_test

import (
	"math"

	"github.com/katalvlaran/callow/matrix"
)

// operatorOnly hides the concrete type of an operator so code under test
// cannot reach optional capabilities (Structured, Diagonaler).
type operatorOnly struct{ matrix.Operator }

func nan() float64 { return math.NaN() }
