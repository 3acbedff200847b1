// Package parallel contains a bounded parallel ForEach() and a Hasher summing results computed out of order.
package parallel

import (
	"runtime"

	"github.com/klauspost/cpuid/v2"
	"github.com/sourcegraph/conc/pool"
)

// DefaultLimit returns the number of logical cores, falling back to runtime.NumCPU
func DefaultLimit() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// ForEach executes a for loop with a limited number of concurrent goroutines.
// Each goroutine processes one integer, from 0 to length.
func ForEach(length, limit int, body func(i int)) {
	if limit <= 0 {
		limit = DefaultLimit()
	}
	if length <= 0 {
		return // No iterations to perform
	}

	p := pool.New().WithMaxGoroutines(limit)
	for i := 0; i < length; i++ {
		p.Go(func() {
			body(i)
		})
	}
	p.Wait()
}

// ForEachErr is ForEach for a body which can fail. It returns the errors of all failed iterations joined.
func ForEachErr(length, limit int, body func(i int) error) error {
	if limit <= 0 {
		limit = DefaultLimit()
	}
	if length <= 0 {
		return nil
	}

	p := pool.New().WithErrors().WithMaxGoroutines(limit)
	for i := 0; i < length; i++ {
		p.Go(func() error {
			return body(i)
		})
	}
	return p.Wait()
}
