package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/neurlang/perceptron/datasets"
	"github.com/neurlang/perceptron/datasets/shapes"
	"github.com/neurlang/perceptron/perceptron"
	"github.com/neurlang/perceptron/view"
	"gonum.org/v1/gonum/mat"
)

func main() {
	shape := flag.String("shape", "circle", "rectangle, circle or weights")
	model := flag.String("model", "", "weights file shown by -shape weights")
	width := flag.Int("width", 50, "specimen width")
	height := flag.Int("height", 50, "specimen height")
	seed := flag.Uint64("seed", 0, "random seed, 0 picks one")
	grid := flag.Bool("grid", false, "print a 0/1 text grid instead of ASCII shading")
	pngfile := flag.String("png", "", "write a png file instead of printing")
	cell := flag.Int("cell", 15, "png cell size in pixels")
	flag.Parse()

	if *seed == 0 {
		*seed = rand.Uint64()
	}

	var m mat.Matrix
	switch *shape {
	case "rectangle", "circle":
		gen, err := shapes.New(*width, *height, rand.NewPCG(*seed, *seed))
		if err != nil {
			panic(err.Error())
		}
		if *shape == "rectangle" {
			m = gen.Rectangle()
		} else {
			m = gen.Circle()
		}
	case "weights":
		file, err := os.Open(*model)
		if err != nil {
			panic(err.Error())
		}
		w, err := perceptron.ReadCompressedMatrix(file)
		file.Close()
		if err != nil {
			panic(err.Error())
		}
		m = w
	default:
		println("unknown shape", *shape)
		os.Exit(2)
	}

	switch {
	case *pngfile != "":
		if err := view.WritePNG(*pngfile, m, *cell); err != nil {
			panic(err.Error())
		}
	case *grid:
		if err := datasets.WriteImage(os.Stdout, m); err != nil {
			panic(err.Error())
		}
	default:
		fmt.Print(view.ASCII(m))
	}
}
