// SPDX-License-Identifier: MIT

package matrix

// Connectivity selects the neighborhood of a grid stencil.
type Connectivity int

const (
	// Conn4 couples each cell to its N, E, S and W neighbors (5-point stencil).
	Conn4 Connectivity = iota
	// Conn8 adds the diagonal neighbors (9-point stencil).
	Conn8
)

// stencilOffsets returns the (dx, dy) neighbor offsets of conn.
func stencilOffsets(conn Connectivity) [][2]int {
	if conn == Conn8 {
		return [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	}

	return [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
}

// NewGridLaplacian assembles the Dirichlet Laplacian of a width×height grid.
// Cell (x, y) maps to row y*width + x; its diagonal is the full neighbor
// count of the stencil and each in-bounds neighbor contributes -1. Cells on
// the border lose their outside neighbors, which makes the matrix
// symmetric positive definite.
//
// Errors: ErrBadShape when width or height is not positive.
//
// Complexity: O(width*height) time and memory.
func NewGridLaplacian(width, height int, conn Connectivity) (*Sparse, error) {
	if width <= 0 || height <= 0 {
		return nil, matrixErrorf(opGridLaplacian, ErrBadShape)
	}
	offsets := stencilOffsets(conn)
	n := width * height
	s, err := NewSparse(n, n, len(offsets)+1)
	if err != nil {
		return nil, matrixErrorf(opGridLaplacian, err)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			row := y*width + x
			if err = s.Insert(row, row, float64(len(offsets)), Insert); err != nil {
				return nil, err
			}
			for _, d := range offsets {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				if err = s.Insert(row, ny*width+nx, -1, Insert); err != nil {
					return nil, err
				}
			}
		}
	}
	if err = s.Assemble(); err != nil {
		return nil, matrixErrorf(opGridLaplacian, err)
	}

	return s, nil
}
