// SPDX-License-Identifier: MIT

package matrix

import "github.com/katalvlaran/callow/vector"

// ShellFunc computes y = A x (or y = Aᵗ x for the transpose action) for a
// matrix-free operator. ctx is the opaque value passed to NewShell.
type ShellFunc func(ctx any, x, y vector.Vector) error

// ShellOption configures a Shell.
type ShellOption func(*Shell)

// WithTranspose installs the transpose action of a Shell.
func WithTranspose(fn ShellFunc) ShellOption {
	return func(s *Shell) { s.transpose = fn }
}

// Shell is a matrix-free operator whose action is a user callback.
// The context is forwarded unchanged on every call.
type Shell struct {
	rows, cols int
	ctx        any
	multiply   ShellFunc
	transpose  ShellFunc
}

var _ Operator = (*Shell)(nil)

// NewShell wraps fn as a rows×cols operator.
// Errors: ErrBadShape, ErrNilMatrix (nil fn).
func NewShell(rows, cols int, ctx any, fn ShellFunc, opts ...ShellOption) (*Shell, error) {
	if rows <= 0 || cols <= 0 {
		return nil, matrixErrorf(opNewShell, ErrBadShape)
	}
	if fn == nil {
		return nil, matrixErrorf(opNewShell, ErrNilMatrix)
	}
	s := &Shell{rows: rows, cols: cols, ctx: ctx, multiply: fn}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Rows returns the number of rows.
func (s *Shell) Rows() int { return s.rows }

// Cols returns the number of columns.
func (s *Shell) Cols() int { return s.cols }

// Context returns the opaque context given to NewShell.
func (s *Shell) Context() any { return s.ctx }

// Multiply computes y = A x through the callback.
func (s *Shell) Multiply(x, y vector.Vector) error {
	if err := ValidateMultiply(s.rows, s.cols, x, y, false); err != nil {
		return matrixErrorf(opMultiply, err)
	}

	return s.multiply(s.ctx, x, y)
}

// MultiplyTranspose computes y = Aᵗ x through the transpose callback.
// Errors: ErrUnsupported when no transpose action was installed.
func (s *Shell) MultiplyTranspose(x, y vector.Vector) error {
	if s.transpose == nil {
		return matrixErrorf(opMultiplyTranspose, ErrUnsupported)
	}
	if err := ValidateMultiply(s.rows, s.cols, x, y, true); err != nil {
		return matrixErrorf(opMultiplyTranspose, err)
	}

	return s.transpose(s.ctx, x, y)
}
