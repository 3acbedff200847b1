package datasets

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

// ErrBadGrid is returned when a text grid cannot be parsed
var ErrBadGrid = errors.New("bad grid")

// ReadImage parses a text grid, one row per line. Cells are '0' or '.' for
// background and '1' or '#' for a set pixel; blanks between cells are ignored,
// and so are empty lines.
func ReadImage(r io.Reader) (*mat.Dense, error) {
	var rows [][]float64
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.Map(func(c rune) rune {
			if c == ' ' || c == '\t' || c == '\r' {
				return -1
			}
			return c
		}, scanner.Text())
		if text == "" {
			continue
		}
		row := make([]float64, 0, len(text))
		for _, c := range text {
			switch c {
			case '0', '.':
				row = append(row, 0)
			case '1', '#':
				row = append(row, 1)
			default:
				return nil, xerrors.Errorf("line %d: unexpected %q: %w", line, c, ErrBadGrid)
			}
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, xerrors.Errorf("line %d: %d cells, want %d: %w", line, len(row), len(rows[0]), ErrBadGrid)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, xerrors.Errorf("read grid: %w", err)
	}
	if len(rows) == 0 {
		return nil, xerrors.Errorf("empty grid: %w", ErrBadGrid)
	}
	img := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		img.SetRow(i, row)
	}
	return img, nil
}

// WriteImage writes m as a text grid of '0' and '1'. Any non-zero cell is written as '1'.
func WriteImage(w io.Writer, m mat.Matrix) error {
	r, c := m.Dims()
	bw := bufio.NewWriter(w)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if m.At(i, j) != 0 {
				bw.WriteByte('1')
			} else {
				bw.WriteByte('0')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
