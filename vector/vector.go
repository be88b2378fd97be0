// SPDX-License-Identifier: MIT

// Package vector - dense numeric container shared by every solver.
//
// Purpose:
//   - Provide one fixed-length, mutable float64 sequence used for right-hand
//     sides, iterates, Krylov bases and work buffers.
//   - Delegate the arithmetic kernels to gonum/floats so the hot loops match
//     the rest of the numerical ecosystem.
//
// Contract:
//   - Vector is a named []float64; indexing and slicing work as usual.
//   - Binary operations require equal lengths. A mismatch is a programmer
//     error and panics (gonum/floats convention). Public solver entry points
//     validate lengths up front and return errors instead.
//   - No method allocates except New and Clone.
//
// Complexity quicksheet:
//   - New/Clone: O(n) alloc; Copy/Set/Scale/Add/AddScaled/Dot/Norm: O(n), no alloc.
package vector

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// NormType selects the vector norm.
type NormType int

const (
	// L1 is the sum of absolute values.
	L1 NormType = iota
	// L2 is the Euclidean norm.
	L2
	// LInf is the maximum absolute value.
	LInf
)

// String implements fmt.Stringer.
func (t NormType) String() string {
	switch t {
	case L1:
		return "L1"
	case L2:
		return "L2"
	case LInf:
		return "LInf"
	default:
		return fmt.Sprintf("NormType(%d)", int(t))
	}
}

// order maps a NormType onto the L-parameter understood by gonum/floats.
func (t NormType) order() float64 {
	switch t {
	case L1:
		return 1
	case LInf:
		return math.Inf(1)
	default:
		return 2
	}
}

// Vector is a dense, fixed-length sequence of float64 values.
type Vector []float64

// New allocates a vector of length n with every element set to value.
// Negative n is treated as zero.
func New(n int, value float64) Vector {
	if n < 0 {
		n = 0
	}
	v := make(Vector, n)
	if value != 0 {
		for i := range v {
			v[i] = value
		}
	}

	return v
}

// Len returns the number of elements.
func (v Vector) Len() int { return len(v) }

// Clone returns an independent copy.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)

	return out
}

// Copy overwrites v with src. Lengths must match.
func (v Vector) Copy(src Vector) {
	mustSameLen("Copy", v, src)
	copy(v, src)
}

// Set fills every element with value.
func (v Vector) Set(value float64) {
	for i := range v {
		v[i] = value
	}
}

// Scale multiplies every element by a.
func (v Vector) Scale(a float64) { floats.Scale(a, v) }

// Add computes v += x.
func (v Vector) Add(x Vector) { floats.Add(v, x) }

// Subtract computes v -= x.
func (v Vector) Subtract(x Vector) { floats.Sub(v, x) }

// AddScaled computes v += a*x (axpy).
func (v Vector) AddScaled(a float64, x Vector) { floats.AddScaled(v, a, x) }

// Dot returns the inner product vᵗx.
func (v Vector) Dot(x Vector) float64 { return floats.Dot(v, x) }

// Norm returns the requested norm of v.
func (v Vector) Norm(t NormType) float64 {
	if len(v) == 0 {
		return 0
	}

	return floats.Norm(v, t.order())
}

// NormResidual returns ‖v − x‖ in the requested norm without forming v − x.
func (v Vector) NormResidual(x Vector, t NormType) float64 {
	if len(v) == 0 {
		mustSameLen("NormResidual", v, x)
		return 0
	}

	return floats.Distance(v, x, t.order())
}

// String formats the vector as "[a, b, c]".
func (v Vector) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%g", x)
	}
	sb.WriteByte(']')

	return sb.String()
}

// mustSameLen panics with a stable message when lengths differ.
func mustSameLen(op string, a, b Vector) {
	if len(a) != len(b) {
		panic(fmt.Sprintf("vector: %s: length mismatch %d != %d", op, len(a), len(b)))
	}
}
