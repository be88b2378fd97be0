// SPDX-License-Identifier: MIT

// Package matrix - Sparse storage (compressed row) & assembly.
//
// Purpose:
//   - Collect (row, col, value) entries with an Insert (overwrite) or Add
//     (accumulate) policy, then freeze them into CSR storage with Assemble.
//   - Cache the position of each row's diagonal entry so splitting solvers and
//     ILU(0) get O(1) diagonal access.
//
// Invariants after Assemble:
//   - Columns are strictly ascending within each row.
//   - For square matrices every row stores its diagonal; a missing diagonal is
//     stored as an explicit zero so DiagonalIndex(i) always resolves.
//   - Explicitly inserted zeros are kept: they are part of the sparsity pattern.
//
// Complexity quicksheet:
//   - Insert: O(nnz(row)); Assemble: O(nnz log nnz(row)); At: O(log nnz(row));
//     Multiply/MultiplyTranspose: O(nnz).

package matrix

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/katalvlaran/callow/vector"
)

// sparseEntry is one pending (col, value) pair of a row during assembly.
type sparseEntry struct {
	col int
	val float64
}

// Sparse is a compressed-row matrix.
//   - Before Assemble, entries live in per-row pending lists.
//   - After Assemble, values/columns/rowStart hold CSR data and diagonal holds
//     the diagonal position per row (square matrices only).
type Sparse struct {
	rows, cols int

	pending   [][]sparseEntry // per-row entries awaiting Assemble
	assembled bool

	values   []float64 // nonzero values, row by row
	columns  []int     // column index per value
	rowStart []int     // len rows+1; row i spans [rowStart[i], rowStart[i+1])
	diagonal []int     // len rows for square matrices, else nil
}

var (
	_ Structured   = (*Sparse)(nil)
	_ Diagonaler   = (*Sparse)(nil)
	_ fmt.Stringer = (*Sparse)(nil)
)

// NewSparse creates an empty rows×cols sparse matrix.
// nnzPerRow is a capacity hint for each row's pending list (0 is allowed).
// Errors: ErrBadShape when rows<=0, cols<=0 or nnzPerRow<0.
func NewSparse(rows, cols, nnzPerRow int) (*Sparse, error) {
	if rows <= 0 || cols <= 0 || nnzPerRow < 0 {
		return nil, ErrBadShape
	}
	pending := make([][]sparseEntry, rows)
	if nnzPerRow > 0 {
		for i := range pending {
			pending[i] = make([]sparseEntry, 0, nnzPerRow)
		}
	}

	return &Sparse{rows: rows, cols: cols, pending: pending}, nil
}

// Rows returns the number of rows.
func (s *Sparse) Rows() int { return s.rows }

// Cols returns the number of columns.
func (s *Sparse) Cols() int { return s.cols }

// Assembled reports whether Assemble has been called.
func (s *Sparse) Assembled() bool { return s.assembled }

// Insert stores v at (i, j) under the given mode.
// Errors: ErrAssembled, ErrOutOfRange, ErrNaNInf.
func (s *Sparse) Insert(i, j int, v float64, mode InsertMode) error {
	if s.assembled {
		return matrixErrorf(opInsert, ErrAssembled)
	}
	if i < 0 || i >= s.rows || j < 0 || j >= s.cols {
		return fmt.Errorf("%s(%d,%d): %w", opInsert, i, j, ErrOutOfRange)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s(%d,%d): %w", opInsert, i, j, ErrNaNInf)
	}

	row := s.pending[i]
	for k := range row {
		if row[k].col != j {
			continue
		}
		if mode == Add {
			row[k].val += v
		} else {
			row[k].val = v
		}

		return nil
	}
	s.pending[i] = append(row, sparseEntry{col: j, val: v})

	return nil
}

// InsertMany stores vs[k] at (is[k], js[k]) for every k under one mode.
// The three slices must have the same length.
func (s *Sparse) InsertMany(is, js []int, vs []float64, mode InsertMode) error {
	if len(is) != len(js) || len(is) != len(vs) {
		return matrixErrorf(opInsert, ErrDimensionMismatch)
	}
	for k := range is {
		if err := s.Insert(is[k], js[k], vs[k], mode); err != nil {
			return err
		}
	}

	return nil
}

// Assemble freezes the pending entries into CSR storage.
// Calling Assemble again is a no-op.
func (s *Sparse) Assemble() error {
	if s.assembled {
		return nil
	}
	square := s.rows == s.cols

	nnz := 0
	for i, row := range s.pending {
		sort.Slice(row, func(a, b int) bool { return row[a].col < row[b].col })
		if square && !hasColumn(row, i) {
			nnz++
		}
		nnz += len(row)
	}

	s.values = make([]float64, 0, nnz)
	s.columns = make([]int, 0, nnz)
	s.rowStart = make([]int, s.rows+1)
	if square {
		s.diagonal = make([]int, s.rows)
	}

	for i, row := range s.pending {
		s.rowStart[i] = len(s.values)
		needDiag := square && !hasColumn(row, i)
		for _, e := range row {
			if needDiag && e.col > i {
				s.appendEntry(i, i, 0)
				needDiag = false
			}
			s.appendEntry(i, e.col, e.val)
		}
		if needDiag {
			s.appendEntry(i, i, 0)
		}
	}
	s.rowStart[s.rows] = len(s.values)

	s.pending = nil
	s.assembled = true

	return nil
}

// appendEntry adds one CSR entry and records the diagonal position.
func (s *Sparse) appendEntry(i, j int, v float64) {
	if s.diagonal != nil && i == j {
		s.diagonal[i] = len(s.values)
	}
	s.values = append(s.values, v)
	s.columns = append(s.columns, j)
}

// hasColumn reports whether a sorted pending row contains column j.
func hasColumn(row []sparseEntry, j int) bool {
	k := sort.Search(len(row), func(k int) bool { return row[k].col >= j })
	return k < len(row) && row[k].col == j
}

// At returns the value at (i, j); positions outside the pattern read as zero.
// Errors: ErrOutOfRange.
func (s *Sparse) At(i, j int) (float64, error) {
	if i < 0 || i >= s.rows || j < 0 || j >= s.cols {
		return 0, fmt.Errorf("Sparse.At(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if !s.assembled {
		for _, e := range s.pending[i] {
			if e.col == j {
				return e.val, nil
			}
		}

		return 0, nil
	}
	if p := s.find(i, j); p >= 0 {
		return s.values[p], nil
	}

	return 0, nil
}

// find returns the CSR position of (i, j) or -1 when it is not stored.
func (s *Sparse) find(i, j int) int {
	lo, hi := s.rowStart[i], s.rowStart[i+1]
	p := lo + sort.SearchInts(s.columns[lo:hi], j)
	if p < hi && s.columns[p] == j {
		return p
	}

	return -1
}

// Has reports whether (i, j) belongs to the assembled sparsity pattern.
func (s *Sparse) Has(i, j int) bool {
	if !s.assembled || i < 0 || i >= s.rows || j < 0 || j >= s.cols {
		return false
	}

	return s.find(i, j) >= 0
}

// NNZ returns the number of stored entries (after Assemble, including
// explicit zeros); before Assemble it counts pending entries.
func (s *Sparse) NNZ() int {
	if s.assembled {
		return len(s.values)
	}
	n := 0
	for _, row := range s.pending {
		n += len(row)
	}

	return n
}

// Start returns the first CSR position of row i.
func (s *Sparse) Start(i int) int { return s.rowStart[i] }

// End returns one past the last CSR position of row i.
func (s *Sparse) End(i int) int { return s.rowStart[i+1] }

// Column returns the column index stored at CSR position p.
func (s *Sparse) Column(p int) int { return s.columns[p] }

// Value returns the value stored at CSR position p.
func (s *Sparse) Value(p int) float64 { return s.values[p] }

// DiagonalIndex returns the CSR position of row i's diagonal entry.
// It is only meaningful for assembled square matrices.
func (s *Sparse) DiagonalIndex(i int) int { return s.diagonal[i] }

// Values exposes the CSR value array. Factorizations operating on a Clone
// may modify it in place; the pattern arrays are never exposed.
func (s *Sparse) Values() []float64 { return s.values }

// Clone returns a deep copy. Pending entries are copied as well, so a clone
// of an unassembled matrix can still be assembled independently.
func (s *Sparse) Clone() *Sparse {
	out := &Sparse{rows: s.rows, cols: s.cols, assembled: s.assembled}
	if !s.assembled {
		out.pending = make([][]sparseEntry, s.rows)
		for i, row := range s.pending {
			out.pending[i] = append([]sparseEntry(nil), row...)
		}

		return out
	}
	out.values = append([]float64(nil), s.values...)
	out.columns = append([]int(nil), s.columns...)
	out.rowStart = append([]int(nil), s.rowStart...)
	if s.diagonal != nil {
		out.diagonal = append([]int(nil), s.diagonal...)
	}

	return out
}

// Multiply computes y = A x.
// Errors: ErrNotAssembled, ErrDimensionMismatch.
func (s *Sparse) Multiply(x, y vector.Vector) error {
	if !s.assembled {
		return matrixErrorf(opMultiply, ErrNotAssembled)
	}
	if err := ValidateMultiply(s.rows, s.cols, x, y, false); err != nil {
		return matrixErrorf(opMultiply, err)
	}
	var sum float64
	for i := 0; i < s.rows; i++ {
		sum = 0
		for p := s.rowStart[i]; p < s.rowStart[i+1]; p++ {
			sum += s.values[p] * x[s.columns[p]]
		}
		y[i] = sum
	}

	return nil
}

// MultiplyTranspose computes y = Aᵗ x.
// Errors: ErrNotAssembled, ErrDimensionMismatch.
func (s *Sparse) MultiplyTranspose(x, y vector.Vector) error {
	if !s.assembled {
		return matrixErrorf(opMultiplyTranspose, ErrNotAssembled)
	}
	if err := ValidateMultiply(s.rows, s.cols, x, y, true); err != nil {
		return matrixErrorf(opMultiplyTranspose, err)
	}
	y.Set(0)
	for i := 0; i < s.rows; i++ {
		xi := x[i]
		if xi == 0 {
			continue
		}
		for p := s.rowStart[i]; p < s.rowStart[i+1]; p++ {
			y[s.columns[p]] += s.values[p] * xi
		}
	}

	return nil
}

// Diagonal writes the main diagonal into dst.
// Errors: ErrNotAssembled, ErrNonSquare, ErrDimensionMismatch.
func (s *Sparse) Diagonal(dst vector.Vector) error {
	if !s.assembled {
		return matrixErrorf(opDiagonal, ErrNotAssembled)
	}
	if s.diagonal == nil {
		return matrixErrorf(opDiagonal, ErrNonSquare)
	}
	if err := ValidateVecLen(dst, s.rows); err != nil {
		return matrixErrorf(opDiagonal, err)
	}
	for i, p := range s.diagonal {
		dst[i] = s.values[p]
	}

	return nil
}

// String renders the stored entries row by row, e.g. "0: (0, 2) (1, -1)".
func (s *Sparse) String() string {
	if !s.assembled {
		return fmt.Sprintf("Sparse(%dx%d, %d pending)", s.rows, s.cols, s.NNZ())
	}
	var sb strings.Builder
	for i := 0; i < s.rows; i++ {
		fmt.Fprintf(&sb, "%d:", i)
		for p := s.rowStart[i]; p < s.rowStart[i+1]; p++ {
			fmt.Fprintf(&sb, " (%d, %g)", s.columns[p], s.values[p])
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// AsStructured returns op's structured view when op is an assembled square
// Sparse matrix.
// Errors: ErrNotStructured, ErrNotAssembled.
func AsStructured(op Operator) (Structured, error) {
	s, ok := op.(*Sparse)
	if !ok || s == nil {
		return nil, ErrNotStructured
	}
	if !s.assembled {
		return nil, ErrNotAssembled
	}
	if s.diagonal == nil {
		return nil, ErrNonSquare
	}

	return s, nil
}
