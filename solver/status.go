// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"strings"
)

// Status is the outcome of a solve.
type Status int

const (
	// Success means the residual met the tolerance.
	Success Status = iota
	// Diverge means the divergence check fired.
	Diverge
	// MaxIt means the iteration ceiling was reached.
	MaxIt
	// Running is the status while a solve is in progress.
	Running Status = -1
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Diverge:
		return "diverge"
	case MaxIt:
		return "maxit"
	case Running:
		return "running"
	}

	return fmt.Sprintf("Status(%d)", int(s))
}

// Side selects where the preconditioner is applied.
type Side int

const (
	// None ignores any preconditioner.
	None Side = iota
	// Left solves P⁻¹A x = P⁻¹b.
	Left
	// Right solves A P⁻¹ y = b with x = P⁻¹ y.
	Right
)

// String implements fmt.Stringer.
func (s Side) String() string {
	switch s {
	case None:
		return "none"
	case Left:
		return "left"
	case Right:
		return "right"
	}

	return fmt.Sprintf("Side(%d)", int(s))
}

// ParseSide accepts "none", "left", "right" (any case) or 0, 1, 2.
func ParseSide(v any) (Side, error) {
	switch t := v.(type) {
	case Side:
		if t >= None && t <= Right {
			return t, nil
		}
	case int:
		if t >= int(None) && t <= int(Right) {
			return Side(t), nil
		}
	case string:
		switch strings.ToLower(t) {
		case "none":
			return None, nil
		case "left":
			return Left, nil
		case "right":
			return Right, nil
		}
	}

	return Left, fmt.Errorf("pc_side %v: %w", v, ErrInvalidParameter)
}
