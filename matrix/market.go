// SPDX-License-Identifier: MIT

package matrix

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const marketBanner = "%%matrixmarket"

// ReadMarket parses a Matrix Market coordinate file ("matrix coordinate
// real|integer general|symmetric") into an assembled Sparse matrix.
// Indices in the file are 1-based. Symmetric files store the lower triangle;
// off-diagonal entries are mirrored. Duplicate entries are summed.
//
// Errors: ErrMarketFormat (wrapped with the offending line), ErrOutOfRange,
// ErrBadShape, or the reader's error.
func ReadMarket(r io.Reader) (*Sparse, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%s: line %d: %s: %w", opReadMarket, line, fmt.Sprintf(format, args...), ErrMarketFormat)
	}

	// Banner.
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, matrixErrorf(opReadMarket, err)
		}
		line = 1
		return nil, fail("empty input")
	}
	line++
	header := strings.Fields(strings.ToLower(sc.Text()))
	if len(header) != 5 || header[0] != marketBanner || header[1] != "matrix" {
		return nil, fail("bad banner %q", sc.Text())
	}
	if header[2] != "coordinate" {
		return nil, fail("unsupported format %q", header[2])
	}
	if header[3] != "real" && header[3] != "integer" {
		return nil, fail("unsupported field %q", header[3])
	}
	symmetric := false
	switch header[4] {
	case "general":
	case "symmetric":
		symmetric = true
	default:
		return nil, fail("unsupported symmetry %q", header[4])
	}

	var (
		s         *Sparse
		remaining int
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "%") {
			continue
		}
		fields := strings.Fields(text)

		if s == nil {
			if len(fields) != 3 {
				return nil, fail("bad size line %q", text)
			}
			dims, err := atoiAll(fields)
			if err != nil {
				return nil, fail("bad size line %q", text)
			}
			if symmetric && dims[0] != dims[1] {
				return nil, fail("symmetric matrix must be square")
			}
			if dims[2] < 0 {
				return nil, fail("negative entry count %d", dims[2])
			}
			// The header only hints capacity; never reserve more than a
			// full row.
			perRow := 0
			if dims[0] > 0 {
				perRow = min(dims[2]/dims[0], dims[1])
			}
			if perRow < 0 {
				perRow = 0
			}
			if s, err = NewSparse(dims[0], dims[1], perRow); err != nil {
				return nil, matrixErrorf(opReadMarket, err)
			}
			remaining = dims[2]
			continue
		}

		if len(fields) != 3 {
			return nil, fail("bad entry %q", text)
		}
		ij, err := atoiAll(fields[:2])
		if err != nil {
			return nil, fail("bad index in %q", text)
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fail("bad value in %q", text)
		}
		i, j := ij[0]-1, ij[1]-1
		if err = s.Insert(i, j, v, Add); err != nil {
			return nil, matrixErrorf(opReadMarket, err)
		}
		if symmetric && i != j {
			if err = s.Insert(j, i, v, Add); err != nil {
				return nil, matrixErrorf(opReadMarket, err)
			}
		}
		remaining--
	}
	if err := sc.Err(); err != nil {
		return nil, matrixErrorf(opReadMarket, err)
	}
	if s == nil {
		return nil, fail("missing size line")
	}
	if remaining != 0 {
		return nil, fail("entry count mismatch (%d missing)", remaining)
	}
	if err := s.Assemble(); err != nil {
		return nil, matrixErrorf(opReadMarket, err)
	}

	return s, nil
}

func atoiAll(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for k, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}

	return out, nil
}
