// Package trainer provides high-level training orchestration for the perceptron.
// It drives training steps on a clock, evaluates accuracy over a dataset in
// parallel and saves or resumes weight files.
package trainer
