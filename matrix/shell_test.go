// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/vector"
)

// scaleCtx is the opaque context of the shell under test.
type scaleCtx struct {
	factor float64
	calls  int
}

func scaleAction(ctx any, x, y vector.Vector) error {
	c := ctx.(*scaleCtx)
	c.calls++
	y.Copy(x)
	y.Scale(c.factor)

	return nil
}

// TestShellForwardsContext checks that the callback receives the context unchanged.
func TestShellForwardsContext(t *testing.T) {
	ctx := &scaleCtx{factor: 3}
	s, err := matrix.NewShell(3, 3, ctx, scaleAction)
	require.NoError(t, err)
	require.Same(t, ctx, s.Context())

	y := vector.New(3, 0)
	require.NoError(t, s.Multiply(vector.Vector{1, 2, 3}, y))
	require.Equal(t, vector.Vector{3, 6, 9}, y)
	require.Equal(t, 1, ctx.calls)

	require.ErrorIs(t, s.Multiply(vector.New(2, 0), y), matrix.ErrDimensionMismatch)
	require.Equal(t, 1, ctx.calls) // validation happens before the callback
}

// TestShellTranspose covers both the missing and the installed transpose action.
func TestShellTranspose(t *testing.T) {
	ctx := &scaleCtx{factor: 2}
	s, err := matrix.NewShell(2, 2, ctx, scaleAction)
	require.NoError(t, err)
	require.ErrorIs(t, s.MultiplyTranspose(vector.New(2, 1), vector.New(2, 0)), matrix.ErrUnsupported)

	s, err = matrix.NewShell(2, 2, ctx, scaleAction, matrix.WithTranspose(scaleAction))
	require.NoError(t, err)
	y := vector.New(2, 0)
	require.NoError(t, s.MultiplyTranspose(vector.Vector{1, 1}, y))
	require.Equal(t, vector.Vector{2, 2}, y)
}

// TestNewShellInvalid rejects bad shapes and nil callbacks.
func TestNewShellInvalid(t *testing.T) {
	_, err := matrix.NewShell(0, 2, nil, scaleAction)
	require.ErrorIs(t, err, matrix.ErrBadShape)

	_, err = matrix.NewShell(2, 2, nil, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestIdentity checks the identity operator and its diagonal.
func TestIdentity(t *testing.T) {
	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)

	y := vector.New(3, 0)
	require.NoError(t, id.Multiply(vector.Vector{1, 2, 3}, y))
	require.Equal(t, vector.Vector{1, 2, 3}, y)

	d := vector.New(3, 0)
	require.NoError(t, matrix.ExtractDiagonal(id, d))
	require.Equal(t, vector.Vector{1, 1, 1}, d)

	_, err = matrix.NewIdentity(0)
	require.ErrorIs(t, err, matrix.ErrBadShape)
}
