package perceptron

import (
	"errors"

	"github.com/neurlang/perceptron/datasets"
)

// ErrInvalidDimension is returned for a non-positive grid or an image of the wrong shape
var ErrInvalidDimension = datasets.ErrInvalidDimension

// ErrTrainingExhausted is returned by Advance once the whole training set was consumed
var ErrTrainingExhausted = errors.New("training set exhausted")

// ErrShapeMismatch is returned when assigned or loaded weights have the wrong shape
var ErrShapeMismatch = errors.New("weights shape mismatch")
