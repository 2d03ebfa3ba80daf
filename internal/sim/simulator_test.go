package sim

import (
	"context"
	"testing"

	"github.com/san-kum/matrixdemo/internal/automaton"
)

type countMetric struct{ n int }

func (c *countMetric) Name() string                 { return "count" }
func (c *countMetric) Observe(*automaton.Grid, int) { c.n++ }
func (c *countMetric) Value() float64               { return float64(c.n) }
func (c *countMetric) Reset()                       { c.n = 0 }

type genObserver struct{ gens []int }

func (o *genObserver) OnStep(gen int, _ *automaton.Grid, _ int) { o.gens = append(o.gens, gen) }

func TestSimulatorRun(t *testing.T) {
	s := New()
	s.AddMetric(&countMetric{})
	obs := &genObserver{}
	s.AddObserver(obs)

	cfg := Config{Rule: "life", Width: 10, Height: 10, Pattern: "blinker", Generations: 4}
	result, err := s.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Population) != 5 {
		t.Errorf("expected 5 population samples, got %d", len(result.Population))
	}
	if len(result.Changed) != 4 {
		t.Errorf("expected 4 changed samples, got %d", len(result.Changed))
	}
	for i, p := range result.Population {
		if p != 3 {
			t.Errorf("generation %d: blinker population should be 3, got %f", i, p)
		}
	}
	for i, c := range result.Changed {
		if c != 4 {
			t.Errorf("generation %d: blinker should flip 4 cells, got %f", i+1, c)
		}
	}
	if result.Metrics["count"] != 4 {
		t.Errorf("expected 4 observations, got %f", result.Metrics["count"])
	}
	if len(obs.gens) != 4 || obs.gens[3] != 4 {
		t.Errorf("unexpected observed generations %v", obs.gens)
	}
	if result.Generations != 4 || result.Final.Population() != 3 {
		t.Errorf("unexpected final state: gen %d pop %d", result.Generations, result.Final.Population())
	}
}

func TestSimulatorValidation(t *testing.T) {
	s := New()
	bad := []Config{
		{Rule: "life", Width: 0, Height: 4},
		{Rule: "life", Width: 4, Height: 4, Generations: -1},
		{Rule: "life", Width: 4, Height: 4, Density: 2},
		{Rule: "plasma", Width: 4, Height: 4},
		{Rule: "life", Width: 4, Height: 4, Pattern: "spaceship"},
	}
	for i, cfg := range bad {
		if _, err := s.Run(context.Background(), cfg); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestSimulatorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New().Run(ctx, Config{Rule: "chaser", Width: 8, Height: 8, Density: 1, Generations: 10})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil || len(result.Changed) != 0 {
		t.Error("expected an empty partial result")
	}
}

func TestEnsemble(t *testing.T) {
	e := NewEnsemble(func() []Metric { return []Metric{&countMetric{}} }, 4, 10)
	results, err := e.Run(context.Background(), Config{Rule: "chaser", Width: 16, Height: 8, Density: 1, Generations: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Seed != int64(10+i) {
			t.Errorf("run %d: expected seed %d, got %d", i, 10+i, r.Seed)
		}
	}

	sum := Summarize(results)
	if len(sum) != 1 || sum[0].Name != "count" || sum[0].Mean != 5 || sum[0].Min != 5 {
		t.Errorf("unexpected summary %+v", sum)
	}
}
