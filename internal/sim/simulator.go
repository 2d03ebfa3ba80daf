package sim

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/matrixdemo/internal/automaton"
)

type Simulator struct {
	metrics   []Metric
	observers []Observer
}

func New() *Simulator {
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run seeds a fresh world from cfg and steps it cfg.Generations times. A
// canceled context returns the partial result with the context's error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	rule, err := automaton.RuleByName(cfg.Rule)
	if err != nil {
		return nil, err
	}

	world := automaton.NewWorld(cfg.Width, cfg.Height, rule)
	rng := rand.New(rand.NewSource(cfg.Seed))
	if err := automaton.Seed(world.Current(), rule, cfg.Pattern, cfg.Density, rng); err != nil {
		return nil, err
	}

	result := &Result{
		Rule:       rule.Name(),
		Seed:       cfg.Seed,
		Population: make([]float64, 0, cfg.Generations+1),
		Changed:    make([]float64, 0, cfg.Generations),
		Metrics:    make(map[string]float64),
	}
	for _, m := range s.metrics {
		m.Reset()
	}
	result.Population = append(result.Population, float64(world.Current().Population()))

	for i := 0; i < cfg.Generations; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, world)
			return result, ctx.Err()
		default:
		}

		changed := world.Step()
		g := world.Current()
		for _, m := range s.metrics {
			m.Observe(g, changed)
		}
		for _, obs := range s.observers {
			obs.OnStep(world.Generation(), g, changed)
		}

		result.Population = append(result.Population, float64(g.Population()))
		result.Changed = append(result.Changed, float64(changed))
	}

	s.finish(result, world)
	return result, nil
}

func (s *Simulator) finish(result *Result, world *automaton.World) {
	result.Generations = world.Generation()
	result.Final = world.Current().Clone()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Generations < 0 {
		return fmt.Errorf("generations must not be negative, got %d", cfg.Generations)
	}
	if cfg.Density < 0 || cfg.Density > 1 {
		return fmt.Errorf("density must be within [0, 1], got %f", cfg.Density)
	}
	return nil
}
