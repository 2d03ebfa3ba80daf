package sim

import (
	"context"
	"sort"
	"sync"
)

// Ensemble runs the same configuration under consecutive seeds in parallel.
// Metrics are built per run by newMetrics since they carry state.
type Ensemble struct {
	newMetrics func() []Metric
	numRuns    int
	seedStart  int64
}

func NewEnsemble(newMetrics func() []Metric, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{newMetrics: newMetrics, numRuns: numRuns, seedStart: seedStart}
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

			s := New()
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					s.AddMetric(m)
				}
			}
			results[idx], errs[idx] = s.Run(ctx, cfgCopy)
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

// Summary is the mean and range of one metric across an ensemble.
type Summary struct {
	Name string
	Mean float64
	Min  float64
	Max  float64
}

func Summarize(results []*Result) []Summary {
	byName := make(map[string][]float64)
	for _, r := range results {
		for name, v := range r.Metrics {
			byName[name] = append(byName[name], v)
		}
	}

	out := make([]Summary, 0, len(byName))
	for name, vals := range byName {
		s := Summary{Name: name, Min: vals[0], Max: vals[0]}
		for _, v := range vals {
			s.Mean += v
			if v < s.Min {
				s.Min = v
			}
			if v > s.Max {
				s.Max = v
			}
		}
		s.Mean /= float64(len(vals))
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
