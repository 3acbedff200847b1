// Package main provides a demo program classifying a hand drawn text grid, or a
// batch of generated shapes, with trained perceptron weights.
package main
