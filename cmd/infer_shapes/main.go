package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/neurlang/perceptron/datasets"
	"github.com/neurlang/perceptron/datasets/shapes"
	"github.com/neurlang/perceptron/perceptron"
	"github.com/neurlang/perceptron/trainer"
)

func main() {
	model := flag.String("model", "", "trained .weights.xz file")
	input := flag.String("input", "", "text grid to classify, - for stdin")
	pairs := flag.Int("pairs", 0, "classify this many generated rectangle/circle pairs instead")
	seed := flag.Uint64("seed", 0, "random seed for generated pairs, 0 picks one")
	flag.Parse()

	if *model == "" {
		println("missing -model")
		os.Exit(2)
	}
	file, err := os.Open(*model)
	if err != nil {
		panic(err.Error())
	}
	weights, err := perceptron.ReadCompressedMatrix(file)
	file.Close()
	if err != nil {
		panic(err.Error())
	}
	width, height := weights.Dims()

	net, err := perceptron.New(width, height, nil, perceptron.DefaultHyperParameters())
	if err != nil {
		panic(err.Error())
	}
	if err := net.SetWeights(weights); err != nil {
		panic(err.Error())
	}

	if *pairs > 0 {
		if *seed == 0 {
			*seed = rand.Uint64()
		}
		set := shapes.MustNew(width, height, rand.NewPCG(*seed, *seed)).Pairs(*pairs)
		success, _, err := trainer.Accuracy(net, set, 0)
		if err != nil {
			panic(err.Error())
		}
		println("[infer success rate]", success, "%", "on", len(set), "specimens")
		return
	}

	var r io.Reader = os.Stdin
	if *input != "" && *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			panic(err.Error())
		}
		defer f.Close()
		r = f
	}
	img, err := datasets.ReadImage(r)
	if err != nil {
		panic(err.Error())
	}
	score, err := net.Score(img)
	if err != nil {
		panic(err.Error())
	}
	if score > 0 {
		fmt.Println("CIRCLE", score)
	} else {
		fmt.Println("RECTANGLE", score)
	}
}
