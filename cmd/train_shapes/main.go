package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/neurlang/perceptron/datasets/shapes"
	"github.com/neurlang/perceptron/perceptron"
	"github.com/neurlang/perceptron/runs"
	"github.com/neurlang/perceptron/trainer"
	"github.com/neurlang/perceptron/view"
)

func main() {
	dstmodel := flag.String("dstmodel", "", "model destination .weights.xz file")
	resume := flag.Bool("resume", false, "resume training")
	width := flag.Int("width", 50, "specimen width")
	height := flag.Int("height", 50, "specimen height")
	pairs := flag.Int("pairs", 1000, "rectangle/circle pairs in the training set")
	testpairs := flag.Int("testpairs", 200, "rectangle/circle pairs in the test set")
	seed := flag.Uint64("seed", 0, "random seed, 0 picks one")
	bias := flag.Float64("bias", 0, "perceptron bias")
	rate := flag.Float64("rate", 0.1, "learning rate")
	threshold := flag.Float64("threshold", 1, "training threshold, a fraction of the training set length")
	exhaust := flag.Bool("exhaust", false, "train on the whole set instead of stopping one sample early")
	interval := flag.Duration("interval", 10*time.Millisecond, "delay between training steps")
	every := flag.Int("every", 100, "show weights every this many steps, 0 disables")
	pngfile := flag.String("png", "", "write the final weights to this png file")
	runsdb := flag.String("runs", "", "sqlite run log")
	logfile := flag.String("log", "", "append progress to this file instead of stderr")
	flag.Parse()

	if *seed == 0 {
		*seed = rand.Uint64()
	}
	gen, err := shapes.New(*width, *height, rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	if err != nil {
		panic(err.Error())
	}
	trainset := gen.Pairs(*pairs)
	testset := gen.Pairs(*testpairs)

	h := perceptron.HyperParameters{
		Bias:              *bias,
		LearningRate:      *rate,
		TrainingThreshold: *threshold,
	}
	if *exhaust {
		h.Stop = perceptron.StopAfterLast
	}
	net, err := perceptron.New(*width, *height, trainset, h)
	if err != nil {
		panic(err.Error())
	}
	if err := trainer.Resume(net, resume, dstmodel); err != nil {
		println(err.Error())
	}

	var o trainer.Options
	o.Interval = *interval
	o.LogEvery = *every
	if *logfile != "" {
		if err := o.SetLogger(*logfile); err != nil {
			panic(err.Error())
		}
	} else {
		o.SetLog(log.New(os.Stderr, "", log.LstdFlags))
	}
	if *every > 0 {
		o.OnStep = func(s trainer.Step) {
			if s.Number%*every != 0 {
				return
			}
			if next, ok := net.Current(); ok {
				fmt.Print(view.SideBySide(view.ASCII(net.Weights()), view.ASCII(next.Image)))
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Seed", *seed, "training on", len(trainset), "specimens")
	start := time.Now()
	report, err := trainer.Run(ctx, net, o)
	end := time.Now()
	if err != nil {
		panic(err.Error())
	}
	fmt.Println("Training", report.Reason, "after", report.Steps, "steps with accumulated error", report.AccumError)

	succ := -1
	evaluate := trainer.NewEvaluateFunc(net, testset, 0, &succ, dstmodel)
	success, state, err := evaluate()
	if err != nil {
		panic(err.Error())
	}
	fmt.Printf("[infer success rate] %d %% state %x\n", success, state[:8])

	if *pngfile != "" {
		if err := view.WritePNG(*pngfile, net.Weights(), 8); err != nil {
			println(err.Error())
		}
	}

	if *runsdb != "" {
		store, err := runs.Open(*runsdb)
		if err != nil {
			panic(err.Error())
		}
		defer store.Close()
		_, err = store.Insert(runs.Record{
			Seed:              *seed,
			Width:             *width,
			Height:            *height,
			Samples:           len(trainset),
			Bias:              h.Bias,
			LearningRate:      h.LearningRate,
			TrainingThreshold: h.TrainingThreshold,
			StopPolicy:        int(h.Stop),
			Steps:             report.Steps,
			AccumError:        report.AccumError,
			Accuracy:          success,
			Reason:            report.Reason.String(),
			WeightsFile:       *dstmodel,
			StartTime:         start,
			EndTime:           end,
		})
		if err != nil {
			println(err.Error())
		}
	}
}
