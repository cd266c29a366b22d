package air

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vybium/shake256air/internal/shake256air/constants"
)

// Evaluate runs EvaluateRow over every row of the trace, rows partitioned
// across a worker per CPU (rows are independent and workers read disjoint
// row ranges). It returns the first error any worker hit.
func (t KeccakRoundTrace) Evaluate() error {
	nMessages := t.N / (constants.NSqueezing * constants.NRounds)
	return forEachRow(1<<t.LogSize, func(row int) error {
		_, _, round, _ := roundCoords(row, nMessages)
		return t.EvaluateRow(row, round)
	})
}

// Evaluate runs EvaluateRow over every row of the trace, in parallel.
func (t KeccakTrace) Evaluate() error {
	return forEachRow(1<<t.LogSize, t.EvaluateRow)
}

// Evaluate runs EvaluateRow over every row of the trace, in parallel.
func (t Shake256Trace) Evaluate() error {
	return forEachRow(1<<t.LogSize, t.EvaluateRow)
}

func forEachRow(n int, check func(row int) error) error {
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			break
		}
		g.Go(func() error {
			for row := start; row < end; row++ {
				if err := check(row); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
