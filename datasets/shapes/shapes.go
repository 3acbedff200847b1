package shapes

import (
	"math"
	"math/rand/v2"

	"github.com/neurlang/perceptron/datasets"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

// Labels of the two classes
const (
	Rectangle datasets.Label = 0
	Circle    datasets.Label = 1
)

// CircleSteps is the number of angles sampled along a circle, 0.02*pi apart
const CircleSteps = 100

// Generator produces rectangle and circle outlines on a width x height grid
type Generator struct {
	width, height int
	rng           *rand.Rand
}

// MustNew creates a new generator, panics on bad dimensions
func MustNew(width, height int, src rand.Source) *Generator {
	g, err := New(width, height, src)
	if err != nil {
		panic(err.Error())
	}
	return g
}

// New creates a new generator. A nil src is seeded from the global source.
func New(width, height int, src rand.Source) (*Generator, error) {
	if err := datasets.CheckDims(width, height); err != nil {
		return nil, xerrors.Errorf("shapes generator: %w", err)
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Generator{width: width, height: height, rng: rand.New(src)}, nil
}

// Dims returns the grid size
func (g *Generator) Dims() (width, height int) {
	return g.width, g.height
}

// Rectangle draws the border of a random rectangle lying fully inside the grid.
// A zero side collapses it to a line or a point.
func (g *Generator) Rectangle() *mat.Dense {
	rw := g.rng.IntN(g.width)
	rh := g.rng.IntN(g.height)

	x := g.rng.IntN(g.width - rw)
	y := g.rng.IntN(g.height - rh)

	img := mat.NewDense(g.width, g.height, nil)

	// upper and lower bound
	for i := x; i <= x+rw; i++ {
		img.Set(i, y, 1)
		img.Set(i, y+rh, 1)
	}
	// sides
	for j := y; j <= y+rh; j++ {
		img.Set(x, j, 1)
		img.Set(x+rw, j, 1)
	}
	return img
}

// Circle draws a random circle lying fully inside the grid by sampling
// CircleSteps points of its border. Small radii leave gaps.
func (g *Generator) Circle() *mat.Dense {
	var radius int
	if bound := min(g.width, g.height) / 2; bound > 0 {
		radius = g.rng.IntN(bound)
	}

	x := radius + g.rng.IntN(g.width-2*radius)
	y := radius + g.rng.IntN(g.height-2*radius)

	img := mat.NewDense(g.width, g.height, nil)

	r := float64(radius)
	for i := 0; i < CircleSteps; i++ {
		angle := 0.02 * math.Pi * float64(i)
		xpos := int(math.RoundToEven(float64(x) + r*math.Cos(angle)))
		ypos := int(math.RoundToEven(float64(y) + r*math.Sin(angle)))
		img.Set(xpos, ypos, 1)
	}
	return img
}

// Sample generates a labeled image of the given class
func (g *Generator) Sample(label datasets.Label) (datasets.Sample, error) {
	switch label {
	case Rectangle:
		return datasets.Sample{Image: g.Rectangle(), Label: Rectangle}, nil
	case Circle:
		return datasets.Sample{Image: g.Circle(), Label: Circle}, nil
	}
	return datasets.Sample{}, xerrors.Errorf("shape %d: %w", label, datasets.ErrInvalidLabel)
}

// Pairs generates n rectangles and n circles, interleaved starting with a rectangle
func (g *Generator) Pairs(n int) datasets.Set {
	var set = make(datasets.Set, 0, 2*n)
	for i := 0; i < n; i++ {
		set = append(set, datasets.Sample{Image: g.Rectangle(), Label: Rectangle})
		set = append(set, datasets.Sample{Image: g.Circle(), Label: Circle})
	}
	return set
}
