// SPDX-License-Identifier: MIT

// Direct - dense generalized eigensolver on gonum/mat.
//
// Implementation:
//   - Stage 1: materialize A and B as gonum dense matrices (unit-vector probing
//     for operators without dense storage).
//   - Stage 2: LU-factorize B and form C = B⁻¹A.
//   - Stage 3: mat.Eigen of C; pick the real eigenvalue of largest magnitude
//     and its right eigenvector.
//
// Complexity:
//   - O(n³) time, O(n²) memory. Meant for small problems and projections.

package eigen

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/callow/config"
	"github.com/katalvlaran/callow/matrix"
	"github.com/katalvlaran/callow/vector"
)

// imagTol is the relative size below which an imaginary part is ignored.
const imagTol = 1e-10

// Direct solves the dense eigenproblem in one shot. Status is Success when
// the residual ‖Ax − λBx‖₂ of the returned pair is below the tolerance and
// MaxIt otherwise; Iterations is always 1.
type Direct struct {
	base
}

var _ EigenSolver = (*Direct)(nil)

// NewDirect builds a dense eigensolver from settings.
func NewDirect(s *config.Settings, opts ...Option) (*Direct, error) {
	d := &Direct{}
	if err := d.init("direct", s, opts, d.solve, nil); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Direct) solve(x, _ vector.Vector) error {
	a, err := toGonum(d.a)
	if err != nil {
		return err
	}
	var b *mat.Dense
	if d.generalized {
		if b, err = toGonum(d.b); err != nil {
			return err
		}
	}
	lambda, vec, err := DominantPair(a, b)
	if err != nil {
		return err
	}
	x.Copy(vec)
	d.lambda = lambda

	// Residual of the computed pair.
	ax := vector.New(len(x), 0)
	bx := vector.New(len(x), 0)
	if err = d.a.Multiply(x, ax); err != nil {
		return err
	}
	if err = d.b.Multiply(x, bx); err != nil {
		return err
	}
	bx.Scale(lambda)
	d.monitor(1, lambda, ax.NormResidual(bx, vector.L2))

	return nil
}

// DominantPair returns the real eigenvalue of largest magnitude of the
// pencil (a, b) and its right eigenvector scaled to unit L2 norm with a
// positive largest component. b == nil means the identity.
// Errors: ErrFactorization, ErrNoRealEigenvalue.
func DominantPair(a, b *mat.Dense) (float64, vector.Vector, error) {
	n, _ := a.Dims()
	c := a
	if b != nil {
		var lu mat.LU
		lu.Factorize(b)
		var sol mat.Dense
		if err := lu.SolveTo(&sol, false, a); err != nil {
			var cond mat.Condition
			if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
				return 0, nil, fmt.Errorf("%w: %v", ErrFactorization, err)
			}
		}
		c = &sol
	}

	var eig mat.Eigen
	if ok := eig.Factorize(c, mat.EigenRight); !ok {
		return 0, nil, ErrFactorization
	}
	values := eig.Values(nil)

	best := -1
	for i, v := range values {
		if math.Abs(imag(v)) > imagTol*math.Max(1, cmplx.Abs(v)) {
			continue
		}
		if best < 0 || math.Abs(real(v)) > math.Abs(real(values[best])) {
			best = i
		}
	}
	if best < 0 {
		return 0, nil, ErrNoRealEigenvalue
	}

	var vecs mat.CDense
	eig.VectorsTo(&vecs)
	out := vector.New(n, 0)
	for i := 0; i < n; i++ {
		out[i] = real(vecs.At(i, best))
	}
	norm := out.Norm(vector.L2)
	if norm == 0 {
		return 0, nil, ErrFactorization
	}
	if out[maxAbsIndex(out)] < 0 {
		norm = -norm
	}
	out.Scale(1 / norm)

	return real(values[best]), out, nil
}

func maxAbsIndex(v vector.Vector) int {
	k := 0
	for i := range v {
		if math.Abs(v[i]) > math.Abs(v[k]) {
			k = i
		}
	}

	return k
}

// toGonum materializes a square operator as a gonum dense matrix.
func toGonum(op matrix.Operator) (*mat.Dense, error) {
	if d, ok := op.(*matrix.Dense); ok {
		return d.ToGonum(), nil
	}
	n := op.Rows()
	out := mat.NewDense(n, n, nil)
	e := vector.New(n, 0)
	col := vector.New(n, 0)
	for j := 0; j < n; j++ {
		e[j] = 1
		if err := op.Multiply(e, col); err != nil {
			return nil, err
		}
		out.SetCol(j, col)
		e[j] = 0
	}

	return out, nil
}
