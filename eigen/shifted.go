// SPDX-License-Identifier: MIT

package eigen

import (
	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/vector"
)

// shiftedOperator is the matrix-free A − λB with a cached diagonal.
type shiftedOperator struct {
	a, b   matrix.Operator
	lambda float64
	diag   vector.Vector
	tmp    vector.Vector
}

var (
	_ matrix.Operator   = (*shiftedOperator)(nil)
	_ matrix.Diagonaler = (*shiftedOperator)(nil)
)

func (s *shiftedOperator) Rows() int { return s.a.Rows() }
func (s *shiftedOperator) Cols() int { return s.a.Cols() }

// Multiply computes y = A x − λ B x.
func (s *shiftedOperator) Multiply(x, y vector.Vector) error {
	if err := s.a.Multiply(x, y); err != nil {
		return err
	}
	if err := s.b.Multiply(x, s.tmp); err != nil {
		return err
	}
	y.AddScaled(-s.lambda, s.tmp)

	return nil
}

// MultiplyTranspose computes y = Aᵗ x − λ Bᵗ x.
func (s *shiftedOperator) MultiplyTranspose(x, y vector.Vector) error {
	if err := s.a.MultiplyTranspose(x, y); err != nil {
		return err
	}
	if err := s.b.MultiplyTranspose(x, s.tmp); err != nil {
		return err
	}
	y.AddScaled(-s.lambda, s.tmp)

	return nil
}

// Diagonal writes diag(A) − λ diag(B).
func (s *shiftedOperator) Diagonal(dst vector.Vector) error {
	if err := matrix.ValidateVecLen(dst, len(s.diag)); err != nil {
		return err
	}
	dst.Copy(s.diag)

	return nil
}

// shift returns A − λB given the cached diagonals. Sparse A with a Sparse
// or identity B is assembled into a new Sparse matrix so that structured
// preconditioners such as ILU(0) apply; any other pair stays matrix-free.
func shift(a, b matrix.Operator, lambda float64, diagA, diagB vector.Vector) (matrix.Operator, error) {
	sa, okA := a.(*matrix.Sparse)
	_, identity := b.(*matrix.Identity)
	sb, okB := b.(*matrix.Sparse)
	if okA && sa.Assembled() && (identity || (okB && sb.Assembled())) {
		return shiftSparse(sa, sb, lambda)
	}

	n := a.Rows()
	diag := diagA.Clone()
	diag.AddScaled(-lambda, diagB)

	return &shiftedOperator{a: a, b: b, lambda: lambda, diag: diag, tmp: vector.New(n, 0)}, nil
}

// shiftSparse assembles a − λb on the union pattern; b == nil means the
// identity.
func shiftSparse(a, b *matrix.Sparse, lambda float64) (*matrix.Sparse, error) {
	n := a.Rows()
	out, err := matrix.NewSparse(n, n, a.NNZ()/n+1)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for p := a.Start(i); p < a.End(i); p++ {
			if err = out.Insert(i, a.Column(p), a.Value(p), matrix.Add); err != nil {
				return nil, err
			}
		}
		if b == nil {
			if err = out.Insert(i, i, -lambda, matrix.Add); err != nil {
				return nil, err
			}
			continue
		}
		for p := b.Start(i); p < b.End(i); p++ {
			if err = out.Insert(i, b.Column(p), -lambda*b.Value(p), matrix.Add); err != nil {
				return nil, err
			}
		}
	}
	if err = out.Assemble(); err != nil {
		return nil, err
	}

	return out, nil
}
