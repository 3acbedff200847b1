package trainer

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/neurlang/perceptron/perceptron"
	"golang.org/x/xerrors"
)

// Trainee is advanced one sample at a time
type Trainee interface {
	Advance() (bool, error)
	AccumError() int
	CurrentSpecimen() int
}

// Reason tells why Run returned
type Reason byte

const (
	Stopped   Reason = iota // Advance asked to stop
	Exhausted               // the training set was already consumed
	Cancelled               // the context was done
)

func (r Reason) String() string {
	switch r {
	case Stopped:
		return "stopped"
	case Exhausted:
		return "exhausted"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Step is passed to Options.OnStep after every training step
type Step struct {
	Number     int  // 1 based count of steps taken by this Run
	Specimen   int  // index of the next sample
	AccumError int  // accumulated error after the step
	Continue   bool // what Advance returned
}

// Report summarizes a Run
type Report struct {
	Steps      int
	AccumError int
	Reason     Reason
}

// Options configure Run
type Options struct {
	Interval time.Duration // delay between steps, 0 runs unthrottled
	LogEvery int           // log every this many steps, 0 logs only the end
	OnStep   func(Step)    // display hook, may be nil

	l *log.Logger
}

// SetLogger appends the progress log to filename
func (o *Options) SetLogger(filename string) error {
	outfile, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	o.l = log.New(outfile, "", log.LstdFlags)
	return nil
}

// SetLog sets the progress logger, nil disables logging
func (o *Options) SetLog(l *log.Logger) {
	o.l = l
}

func (o *Options) printf(format string, v ...interface{}) {
	if o.l != nil {
		o.l.Printf(format, v...)
	}
}

// Run advances t until it asks to stop, its set is exhausted or ctx is done.
// It is the clock driven loop a display attaches to through OnStep.
func Run(ctx context.Context, t Trainee, o Options) (report Report, err error) {
	var tick <-chan time.Time
	if o.Interval > 0 {
		ticker := time.NewTicker(o.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	defer func() {
		report.AccumError = t.AccumError()
		if err == nil {
			o.printf("[%s] after %d steps, specimen %d, accumulated error %d", report.Reason, report.Steps, t.CurrentSpecimen(), report.AccumError)
		}
	}()
	for {
		if tick != nil {
			select {
			case <-ctx.Done():
			case <-tick:
			}
		}
		if ctx.Err() != nil {
			report.Reason = Cancelled
			return report, nil
		}

		cont, err := t.Advance()
		if errors.Is(err, perceptron.ErrTrainingExhausted) {
			report.Reason = Exhausted
			return report, nil
		}
		if err != nil {
			return report, xerrors.Errorf("training step %d: %w", report.Steps+1, err)
		}
		report.Steps++

		if o.LogEvery > 0 && report.Steps%o.LogEvery == 0 {
			o.printf("[step %d] accumulated error %d", report.Steps, t.AccumError())
		}
		if o.OnStep != nil {
			o.OnStep(Step{
				Number:     report.Steps,
				Specimen:   t.CurrentSpecimen(),
				AccumError: t.AccumError(),
				Continue:   cont,
			})
		}
		if !cont {
			report.Reason = Stopped
			return report, nil
		}
	}
}
