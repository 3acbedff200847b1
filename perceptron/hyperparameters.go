package perceptron

// StopPolicy selects when the training set length ends training
type StopPolicy byte

const (
	// StopBeforeLast stops once the second to last sample has been consumed.
	// The last sample is only trained if the caller advances again.
	StopBeforeLast StopPolicy = iota

	// StopAfterLast stops once every sample has been consumed
	StopAfterLast
)

// HyperParameters are fixed at construction and kept by Reset
type HyperParameters struct {
	Bias         float64 // added to every weighted sum
	LearningRate float64 // delta rule step size

	// TrainingThreshold is a fraction of the training set length. Training
	// stops once the accumulated error exceeds TrainingThreshold * len(set).
	TrainingThreshold float64

	Stop StopPolicy
}

// DefaultHyperParameters returns bias 0, learning rate 0.1 and training threshold 0.1
func DefaultHyperParameters() HyperParameters {
	return HyperParameters{
		LearningRate:      0.1,
		TrainingThreshold: 0.1,
	}
}
