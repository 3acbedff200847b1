// Package shapes provides a synthetic dataset of binary images showing either a
// rectangle outline or a circle outline. It is the training data of the
// perceptron, which learns to tell the two shapes apart.
package shapes
