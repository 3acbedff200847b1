// Package view renders weight matrices and specimens as gray-scale cell grids
package view

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Ramp is the character ramp of ASCII, darkest first
const Ramp = " .:-=+*#%@"

// clamp limits v to the displayable range [0, 1]
func clamp(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Gray paints m as cell x cell squares, row i at y and column j at x
func Gray(m mat.Matrix, cell int) *image.Gray {
	if cell <= 0 {
		cell = 1
	}
	r, c := m.Dims()
	img := image.NewGray(image.Rect(0, 0, c*cell, r*cell))
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			g := color.Gray{Y: uint8(clamp(m.At(i, j))*255 + 0.5)}
			for y := i * cell; y < (i+1)*cell; y++ {
				for x := j * cell; x < (j+1)*cell; x++ {
					img.SetGray(x, y, g)
				}
			}
		}
	}
	return img
}

// WritePNG writes Gray(m, cell) to a png file
func WritePNG(name string, m mat.Matrix, cell int) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = png.Encode(file, Gray(m, cell))
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

// ASCII renders m one line per row, one Ramp character per cell
func ASCII(m mat.Matrix) string {
	r, c := m.Dims()
	var b strings.Builder
	b.Grow(r * (c + 1))
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			b.WriteByte(Ramp[int(clamp(m.At(i, j))*float64(len(Ramp)-1)+0.5)])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// SideBySide joins two ASCII renderings line by line with a gap
func SideBySide(left, right string) string {
	l := strings.Split(strings.TrimSuffix(left, "\n"), "\n")
	r := strings.Split(strings.TrimSuffix(right, "\n"), "\n")
	width := 0
	for _, v := range l {
		width = max(width, len(v))
	}
	var b strings.Builder
	for i := 0; i < len(l) || i < len(r); i++ {
		var a, z string
		if i < len(l) {
			a = l[i]
		}
		if i < len(r) {
			z = r[i]
		}
		b.WriteString(a)
		b.WriteString(strings.Repeat(" ", width-len(a)+2))
		b.WriteString(z)
		b.WriteByte('\n')
	}
	return b.String()
}
