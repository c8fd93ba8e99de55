package sim

import (
	"context"
	"sync"
)

// Ensemble runs the same config over consecutive seeds in parallel. Every
// run gets fresh metrics from newMetrics and paints nothing.
type Ensemble struct {
	numRuns    int
	seedStart  int64
	newMetrics func() []Metric
}

func NewEnsemble(numRuns int, seedStart int64, newMetrics func() []Metric) *Ensemble {
	return &Ensemble{numRuns: numRuns, seedStart: seedStart, newMetrics: newMetrics}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			r := New(nil)
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					r.AddMetric(m)
				}
			}

			results[idx], errs[idx] = r.Run(ctx, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
