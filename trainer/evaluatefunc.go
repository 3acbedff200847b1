package trainer

import (
	"fmt"
	"sync/atomic"

	"github.com/neurlang/perceptron/datasets"
	"github.com/neurlang/perceptron/parallel"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

// Evaluator classifies an image, true meaning label 1
type Evaluator interface {
	Evaluate(img mat.Matrix) (bool, error)
}

// EvaluatorWriter is an Evaluator which can save its weights
type EvaluatorWriter interface {
	Evaluator
	WriteCompressedWeightsToFile(name string) error
}

// Accuracy returns the percentage of samples in set e classifies correctly,
// and a fingerprint of all predictions in set order. The samples are
// evaluated by up to limit goroutines, 0 meaning one per core.
func Accuracy(e Evaluator, set datasets.Set, limit int) (success int, state [32]byte, err error) {
	if len(set) == 0 {
		return 0, state, nil
	}
	var correct atomic.Int64
	h := parallel.NewHasher(len(set))
	err = parallel.ForEachErr(len(set), limit, func(j int) error {
		predicted, err := e.Evaluate(set[j].Image)
		if err != nil {
			return xerrors.Errorf("sample %d: %w", j, err)
		}
		h.MustPutBool(j, predicted)
		if predicted == (set[j].Label == 1) {
			correct.Add(1)
		}
		return nil
	})
	if err != nil {
		return 0, state, err
	}
	return int(correct.Load()) * 100 / len(set), h.Sum(), nil
}

// NewEvaluateFunc returns a function measuring the accuracy of p on set.
// Without a dstmodel each evaluation is written to output.<success>.weights.xz.
// With a dstmodel the weights are written there whenever they beat succ, and
// succ is updated.
func NewEvaluateFunc(p EvaluatorWriter, set datasets.Set, limit int, succ *int, dstmodel *string) func() (int, [32]byte, error) {

	return func() (int, [32]byte, error) {
		success, state, err := Accuracy(p, set, limit)
		if err != nil {
			return 0, state, err
		}

		if dstmodel == nil || *dstmodel == "" {
			err := p.WriteCompressedWeightsToFile("output." + fmt.Sprint(success) + ".weights.xz")
			if err != nil {
				return success, state, err
			}
			return success, state, nil
		}

		if succ == nil || *succ < success {
			if err := p.WriteCompressedWeightsToFile(*dstmodel); err != nil {
				return success, state, err
			}
		}
		if succ != nil && *succ < success {
			*succ = success
		}
		return success, state, nil
	}
}
