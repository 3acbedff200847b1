// Package main provides a demo program for training the perceptron to tell
// rectangle outlines from circle outlines. It shows the weights and the next
// specimen in the terminal while training runs on a clock.
package main
