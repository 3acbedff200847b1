// Package perceptron implements a single neuron linear classifier over binary
// images, trained one sample at a time with the delta rule.
package perceptron

import (
	"github.com/neurlang/perceptron/datasets"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

// State is the training state of a perceptron
type State byte

const (
	Idle     State = iota // constructed or reset, no step taken
	Training              // last Advance asked to continue
	Stopped               // last Advance stopped training or the set is exhausted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Training:
		return "training"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Perceptron is a single neuron with a width x height weight matrix.
// It is not safe for concurrent use, except that Score and Evaluate may run
// concurrently with each other.
type Perceptron struct {
	width, height int
	h             HyperParameters
	set           datasets.Set

	weights  *mat.Dense
	current  int
	accumErr int
	state    State
}

// MustNew creates a new perceptron, panics on error
func MustNew(width, height int, set datasets.Set, h HyperParameters) *Perceptron {
	p, err := New(width, height, set, h)
	if err != nil {
		panic(err.Error())
	}
	return p
}

// New creates a new perceptron over a training set. The set may be nil for
// evaluation only use. Every sample must be width x height.
func New(width, height int, set datasets.Set, h HyperParameters) (*Perceptron, error) {
	if err := datasets.CheckDims(width, height); err != nil {
		return nil, xerrors.Errorf("perceptron: %w", err)
	}
	if err := set.Validate(width, height); err != nil {
		return nil, xerrors.Errorf("perceptron training set: %w", err)
	}
	p := &Perceptron{width: width, height: height, h: h, set: set}
	p.init()
	return p, nil
}

// init builds the construction time state from the stored parameters.
// An existing weight matrix is zeroed in place, so views of it stay live.
func (p *Perceptron) init() {
	if p.weights == nil {
		p.weights = mat.NewDense(p.width, p.height, nil)
	} else {
		p.weights.Zero()
	}
	p.current = 0
	p.accumErr = 0
	p.state = Idle
}

// Reset zeroes the weights and the counters, keeping the training set and hyperparameters
func (p *Perceptron) Reset() {
	p.init()
}

// Score returns the weighted sum of img plus bias
func (p *Perceptron) Score(img mat.Matrix) (float64, error) {
	if err := datasets.CheckShape(img, p.width, p.height); err != nil {
		return 0, xerrors.Errorf("perceptron score: %w", err)
	}
	var prod mat.Dense
	prod.MulElem(p.weights, img)
	return mat.Sum(&prod) + p.h.Bias, nil
}

// Evaluate reports whether img is classified as label 1 (circle)
func (p *Perceptron) Evaluate(img mat.Matrix) (bool, error) {
	score, err := p.Score(img)
	if err != nil {
		return false, err
	}
	return score > 0, nil
}

// output is Evaluate as a number
func (p *Perceptron) output(img mat.Matrix) (int, error) {
	circle, err := p.Evaluate(img)
	if err != nil || !circle {
		return 0, err
	}
	return 1, nil
}

// Advance trains the perceptron on the next sample of the training set. It
// reports false when training should stop, either because the set length
// is reached (see StopPolicy) or because the accumulated error exceeded the
// training threshold.
func (p *Perceptron) Advance() (bool, error) {
	if p.current >= len(p.set) {
		p.state = Stopped
		return false, xerrors.Errorf("advance at %d of %d: %w", p.current, len(p.set), ErrTrainingExhausted)
	}
	sample := p.set[p.current]
	output, err := p.output(sample.Image)
	if err != nil {
		return false, xerrors.Errorf("advance at %d: %w", p.current, err)
	}
	diff := int(sample.Label) - output
	if diff < 0 {
		p.accumErr -= diff
	} else {
		p.accumErr += diff
	}

	if diff != 0 {
		var step mat.Dense
		step.Scale(p.h.LearningRate*float64(diff), sample.Image)
		p.weights.Add(p.weights, &step)
	}

	p.current++

	if p.lengthReached() || float64(p.accumErr) > p.h.TrainingThreshold*float64(len(p.set)) {
		p.state = Stopped
		return false, nil
	}
	p.state = Training
	return true, nil
}

func (p *Perceptron) lengthReached() bool {
	if p.h.Stop == StopAfterLast {
		return p.current >= len(p.set)
	}
	return p.current >= len(p.set)-1
}

// Weights returns the live weight matrix. Writes through it change the perceptron.
func (p *Perceptron) Weights() *mat.Dense {
	return p.weights
}

// SetWeights overwrites the weights with a copy of m
func (p *Perceptron) SetWeights(m mat.Matrix) error {
	if m == nil {
		return xerrors.Errorf("set weights: nil matrix: %w", ErrShapeMismatch)
	}
	if r, c := m.Dims(); r != p.width || c != p.height {
		return xerrors.Errorf("set weights %dx%d, want %dx%d: %w", r, c, p.width, p.height, ErrShapeMismatch)
	}
	p.weights.Copy(m)
	return nil
}

// Dims returns the image and weight matrix shape
func (p *Perceptron) Dims() (width, height int) {
	return p.width, p.height
}

// HyperParameters returns the construction time hyperparameters
func (p *Perceptron) HyperParameters() HyperParameters {
	return p.h
}

// TrainingSet returns the training set, which must not be modified
func (p *Perceptron) TrainingSet() datasets.Set {
	return p.set
}

// CurrentSpecimen returns the index of the next sample to train on
func (p *Perceptron) CurrentSpecimen() int {
	return p.current
}

// Current returns the next sample to train on, false once the set is consumed
func (p *Perceptron) Current() (datasets.Sample, bool) {
	if p.current >= len(p.set) {
		return datasets.Sample{}, false
	}
	return p.set[p.current], true
}

// AccumError returns the sum of absolute errors since construction or reset
func (p *Perceptron) AccumError() int {
	return p.accumErr
}

// State returns the training state
func (p *Perceptron) State() State {
	return p.state
}
