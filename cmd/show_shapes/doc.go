// Package main provides a demo program printing generated rectangle and circle
// specimens, or a weights file, as ASCII or png.
package main
