package automation

import (
	"context"
	"fmt"

	"github.com/san-kum/matrixdemo/internal/metrics"
	"github.com/san-kum/matrixdemo/internal/sim"
)

// DensitySweep runs an automaton across evenly spaced random fill densities.
type DensitySweep struct {
	Rule        string
	Width       int
	Height      int
	Generations int
	Seed        int64
	Min         float64
	Max         float64
	NumSteps    int
}

type SweepResult struct {
	Density         float64
	FinalPopulation float64
	Activity        float64
	Period          float64
}

func RunSweep(ctx context.Context, sweep *DensitySweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("steps must be at least 1, got %d", sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	for i := 0; i < sweep.NumSteps; i++ {
		d := sweep.Min
		if sweep.NumSteps > 1 {
			d += float64(i) * (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
		}

		s := sim.New()
		s.AddMetric(metrics.NewActivity())
		s.AddMetric(metrics.NewPeriod())
		result, err := s.Run(ctx, sim.Config{
			Rule:        sweep.Rule,
			Width:       sweep.Width,
			Height:      sweep.Height,
			Pattern:     "random",
			Density:     d,
			Generations: sweep.Generations,
			Seed:        sweep.Seed,
		})
		if err != nil {
			return results, fmt.Errorf("density %.3f: %w", d, err)
		}

		results = append(results, SweepResult{
			Density:         d,
			FinalPopulation: result.Population[len(result.Population)-1],
			Activity:        result.Metrics["activity"],
			Period:          result.Metrics["period"],
		})
	}
	return results, nil
}
