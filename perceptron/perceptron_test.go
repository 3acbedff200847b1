package perceptron

import (
	"bytes"
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/neurlang/perceptron/datasets"
	"github.com/neurlang/perceptron/datasets/shapes"
	"gonum.org/v1/gonum/mat"
	"gotest.tools/assert"
)

const tolerance = 1e-12

func cells(width, height int, set ...[2]int) *mat.Dense {
	img := mat.NewDense(width, height, nil)
	for _, v := range set {
		img.Set(v[0], v[1], 1)
	}
	return img
}

func allZero(t *testing.T, m mat.Matrix) {
	t.Helper()
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			assert.Equal(t, m.At(i, j), 0.0, "weight %d,%d", i, j)
		}
	}
}

func TestNewErrors(t *testing.T) {
	_, err := New(0, 4, nil, DefaultHyperParameters())
	assert.Assert(t, errors.Is(err, ErrInvalidDimension))

	set := datasets.Set{{Image: cells(3, 4), Label: 0}}
	_, err = New(4, 4, set, DefaultHyperParameters())
	assert.Assert(t, errors.Is(err, ErrInvalidDimension))
}

func TestEvaluateZeroImage(t *testing.T) {
	zero := cells(4, 4)
	p := MustNew(4, 4, datasets.Set{{Image: zero, Label: 0}}, DefaultHyperParameters())
	circle, err := p.Evaluate(zero)
	assert.NilError(t, err)
	assert.Assert(t, !circle, "score 0 is not > 0")
	assert.Equal(t, p.State(), Idle)
}

func TestEvaluateIsPure(t *testing.T) {
	p := MustNew(5, 5, nil, HyperParameters{Bias: -0.05})
	p.Weights().Set(1, 1, 0.1)
	img := cells(5, 5, [2]int{1, 1}, [2]int{2, 2})

	first, err := p.Score(img)
	assert.NilError(t, err)
	second, err := p.Score(img)
	assert.NilError(t, err)
	assert.Equal(t, first, second)
	assert.Assert(t, math.Abs(first-0.05) < tolerance)

	circle, err := p.Evaluate(img)
	assert.NilError(t, err)
	assert.Assert(t, circle)
	allZero(t, img.Slice(3, 5, 0, 5))
}

func TestEvaluateShapeMismatch(t *testing.T) {
	p := MustNew(4, 4, nil, DefaultHyperParameters())
	_, err := p.Evaluate(cells(4, 5))
	assert.Assert(t, errors.Is(err, ErrInvalidDimension))
	_, err = p.Evaluate(nil)
	assert.Assert(t, errors.Is(err, ErrInvalidDimension))
}

func TestTwoSamples(t *testing.T) {
	imgA := cells(4, 4)
	imgB := cells(4, 4, [2]int{2, 1})
	p := MustNew(4, 4, datasets.Set{{Image: imgA, Label: 0}, {Image: imgB, Label: 1}}, DefaultHyperParameters())

	// all zero image scores 0, predicted 0, label 0: no update
	cont, err := p.Advance()
	assert.NilError(t, err)
	assert.Assert(t, !cont, "stops one sample before the end")
	allZero(t, p.Weights())
	assert.Equal(t, p.AccumError(), 0)
	assert.Equal(t, p.CurrentSpecimen(), 1)
	assert.Equal(t, p.State(), Stopped)

	// going on trains the last sample, predicted 0, label 1
	cont, err = p.Advance()
	assert.NilError(t, err)
	assert.Assert(t, !cont)
	assert.Equal(t, p.AccumError(), 1)
	assert.Assert(t, math.Abs(p.Weights().At(2, 1)-0.1) < tolerance)

	_, err = p.Advance()
	assert.Assert(t, errors.Is(err, ErrTrainingExhausted))
}

func TestMismatchMovesActiveCells(t *testing.T) {
	img := cells(4, 5, [2]int{0, 1}, [2]int{2, 3}, [2]int{3, 4})
	set := datasets.Set{{Image: img, Label: 1}, {Image: img, Label: 0}, {Image: cells(4, 5), Label: 0}}
	h := HyperParameters{LearningRate: 0.25, TrainingThreshold: 10, Stop: StopAfterLast}
	p := MustNew(4, 5, set, h)

	cont, err := p.Advance()
	assert.NilError(t, err)
	assert.Assert(t, cont)
	for i := 0; i < 4; i++ {
		for j := 0; j < 5; j++ {
			want := 0.25 * img.At(i, j)
			assert.Assert(t, math.Abs(p.Weights().At(i, j)-want) < tolerance, "cell %d,%d", i, j)
		}
	}

	// score 0.75 predicts 1 against label 0, diff -1 moves the weights back
	cont, err = p.Advance()
	assert.NilError(t, err)
	assert.Assert(t, cont)
	assert.Equal(t, p.AccumError(), 2)
	allZero(t, p.Weights())
}

func TestMatchLeavesWeights(t *testing.T) {
	img := cells(3, 3, [2]int{1, 1})
	p := MustNew(3, 3, datasets.Set{{Image: img, Label: 1}, {Image: img, Label: 1}, {Image: img, Label: 1}},
		HyperParameters{LearningRate: 0.1, TrainingThreshold: 1})
	p.Weights().Set(1, 1, 0.5)
	before := mat.DenseCopyOf(p.Weights())

	_, err := p.Advance()
	assert.NilError(t, err)
	assert.Assert(t, mat.Equal(before, p.Weights()))
	assert.Equal(t, p.AccumError(), 0)
}

func TestReset(t *testing.T) {
	set := shapes.MustNew(12, 12, rand.NewPCG(1, 2)).Pairs(20)
	h := HyperParameters{Bias: 0.5, LearningRate: 0.3, TrainingThreshold: 1}
	p := MustNew(12, 12, set, h)
	live := p.Weights()
	for i := 0; i < 10; i++ {
		if _, err := p.Advance(); err != nil {
			break
		}
	}
	assert.Assert(t, p.CurrentSpecimen() > 0)

	p.Reset()
	allZero(t, p.Weights())
	assert.Equal(t, p.CurrentSpecimen(), 0)
	assert.Equal(t, p.AccumError(), 0)
	assert.Equal(t, p.State(), Idle)
	assert.Equal(t, p.HyperParameters(), h)
	assert.Equal(t, len(p.TrainingSet()), len(set))
	assert.Assert(t, live == p.Weights(), "reset keeps the live matrix")
	cur, ok := p.Current()
	assert.Assert(t, ok)
	assert.Assert(t, cur.Image == set[0].Image)
}

func TestAccumErrorMonotonic(t *testing.T) {
	set := shapes.MustNew(20, 20, rand.NewPCG(3, 4)).Pairs(100)
	p := MustNew(20, 20, set, HyperParameters{LearningRate: 0.1, TrainingThreshold: 1})
	last := 0
	for steps := 0; ; steps++ {
		cont, err := p.Advance()
		assert.NilError(t, err)
		assert.Assert(t, p.AccumError() >= last)
		assert.Assert(t, p.AccumError()-last <= 1)
		last = p.AccumError()
		if !cont {
			break
		}
	}
}

func TestTerminationBound(t *testing.T) {
	for _, n := range []int{1, 2, 3, 10, 57} {
		var set datasets.Set
		for i := 0; i < n; i++ {
			set = append(set, datasets.Sample{Image: cells(3, 3), Label: 0})
		}
		p := MustNew(3, 3, set, HyperParameters{LearningRate: 0.1, TrainingThreshold: 1})
		calls := 0
		for {
			calls++
			cont, err := p.Advance()
			assert.NilError(t, err)
			if !cont {
				break
			}
		}
		assert.Equal(t, calls, max(n-1, 1), "set of %d", n)

		q := MustNew(3, 3, set, HyperParameters{LearningRate: 0.1, TrainingThreshold: 1, Stop: StopAfterLast})
		calls = 0
		for {
			calls++
			cont, err := q.Advance()
			assert.NilError(t, err)
			if !cont {
				break
			}
		}
		assert.Equal(t, calls, n, "full set of %d", n)
		_, ok := q.Current()
		assert.Assert(t, !ok)
	}
}

func TestThresholdStops(t *testing.T) {
	img := cells(2, 2, [2]int{0, 0})
	var set datasets.Set
	for i := 0; i < 20; i++ {
		// alternating labels on the same image keep producing errors
		set = append(set, datasets.Sample{Image: img, Label: datasets.Label(1 - i%2)})
	}
	p := MustNew(2, 2, set, HyperParameters{LearningRate: 0.1, TrainingThreshold: 0.1})
	calls := 0
	for {
		calls++
		cont, err := p.Advance()
		assert.NilError(t, err)
		if !cont {
			break
		}
	}
	// 3 > 0.1 * 20
	assert.Equal(t, p.AccumError(), 3)
	assert.Equal(t, calls, 3)
}

func TestEmptySet(t *testing.T) {
	p := MustNew(3, 3, nil, DefaultHyperParameters())
	cont, err := p.Advance()
	assert.Assert(t, !cont)
	assert.Assert(t, errors.Is(err, ErrTrainingExhausted))
}

func TestWeightsRoundTrip(t *testing.T) {
	p := MustNew(6, 7, nil, DefaultHyperParameters())
	p.Weights().Set(3, 4, 0.625)
	p.Weights().Set(0, 6, -1.5)

	var buf bytes.Buffer
	assert.NilError(t, p.WriteCompressedWeights(&buf))

	q := MustNew(6, 7, nil, DefaultHyperParameters())
	assert.NilError(t, q.ReadCompressedWeights(bytes.NewReader(buf.Bytes())))
	assert.Assert(t, mat.Equal(p.Weights(), q.Weights()))

	wrong := MustNew(7, 6, nil, DefaultHyperParameters())
	err := wrong.ReadCompressedWeights(bytes.NewReader(buf.Bytes()))
	assert.Assert(t, errors.Is(err, ErrShapeMismatch))
	allZero(t, wrong.Weights())
}

func TestWeightsFile(t *testing.T) {
	name := t.TempDir() + "/model" + WeightsExt
	p := MustNew(4, 4, nil, DefaultHyperParameters())
	p.Weights().Set(1, 2, 0.3)
	assert.NilError(t, p.WriteCompressedWeightsToFile(name))

	q := MustNew(4, 4, nil, DefaultHyperParameters())
	assert.NilError(t, q.ReadCompressedWeightsFromFile(name))
	assert.Equal(t, q.Weights().At(1, 2), 0.3)

	assert.Assert(t, q.ReadCompressedWeightsFromFile(name+".missing") != nil)
}

func TestSetWeightsShape(t *testing.T) {
	p := MustNew(2, 3, nil, DefaultHyperParameters())
	assert.Assert(t, errors.Is(p.SetWeights(mat.NewDense(3, 2, nil)), ErrShapeMismatch))
	assert.Assert(t, errors.Is(p.SetWeights(nil), ErrShapeMismatch))
	assert.NilError(t, p.SetWeights(mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})))
	assert.Equal(t, p.Weights().At(1, 2), 6.0)
}
