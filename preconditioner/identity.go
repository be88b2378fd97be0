// SPDX-License-Identifier: MIT

package preconditioner

import (
	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/vector"
)

// Identity is the no-op preconditioner: x = b.
type Identity struct {
	n int
}

// NewIdentity returns the identity preconditioner of order n.
func NewIdentity(n int) (*Identity, error) {
	if n <= 0 {
		return nil, pcErrorf("NewIdentity", matrix.ErrBadShape)
	}

	return &Identity{n: n}, nil
}

// Size returns n.
func (p *Identity) Size() int { return p.n }

// Apply copies b into x.
func (p *Identity) Apply(b, x vector.Vector) error {
	if err := checkApply("Identity.Apply", p.n, b, x); err != nil {
		return err
	}
	x.Copy(b)

	return nil
}
