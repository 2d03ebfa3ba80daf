package automation

import (
	"context"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/san-kum/matrixdemo/internal/config"
)

func quiet() *log.Logger { return log.New(io.Discard) }

func TestRunScenarioCycles(t *testing.T) {
	sc := &Scenario{
		Name:            "cycle",
		Preset:          "default",
		Seed:            7,
		ConnectFailures: 2,
		Steps: []Step{
			{Expect: "clock"},
			{Press: "forward"},
			{Expect: "life"},
			{Press: "backward"},
			{Press: "backward"},
			{Wait: 3},
			{Expect: "chaser"},
		},
	}

	frames := 0
	report, err := RunScenario(context.Background(), sc, config.DefaultConfig(), quiet(), func(*image.RGBA) { frames++ })
	if err != nil {
		t.Fatalf("scenario failed: %v", err)
	}

	want := []string{"clock", "life", "life", "clock", "chaser", "chaser", "chaser"}
	if len(report.Pages) != len(want) {
		t.Fatalf("expected %d page samples, got %v", len(want), report.Pages)
	}
	for i := range want {
		if report.Pages[i] != want[i] {
			t.Errorf("step %d: expected %s, got %s", i+1, want[i], report.Pages[i])
		}
	}
	if report.Attempts != 3 {
		t.Errorf("expected 3 association attempts, got %d", report.Attempts)
	}
	if report.Frames == 0 || report.Frames != frames {
		t.Errorf("frames reported %d, recorded %d", report.Frames, frames)
	}
}

func TestRunScenarioErrors(t *testing.T) {
	tests := []struct {
		name string
		sc   Scenario
		want error
	}{
		{"bad button", Scenario{Steps: []Step{{Press: "up"}}}, ErrBadStep},
		{"empty step", Scenario{Steps: []Step{{}}}, ErrBadStep},
		{"wrong page", Scenario{Steps: []Step{{Expect: "nope"}}}, ErrExpectation},
		{"never connects", Scenario{ConnectFailures: -1}, ErrBadStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RunScenario(context.Background(), &tt.sc, config.DefaultConfig(), quiet(), nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	data := `name: demo
preset: chaser
start: "2024-03-05T10:00:00Z"
steps:
  - wait: 2
  - press: forward
  - expect: ice
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "demo" || len(sc.Steps) != 3 || sc.Steps[1].Press != "forward" {
		t.Fatalf("unexpected scenario %+v", sc)
	}

	if _, err := RunScenario(context.Background(), sc, config.DefaultConfig(), quiet(), nil); err != nil {
		t.Errorf("scenario failed: %v", err)
	}
}

func TestRunSweep(t *testing.T) {
	results, err := RunSweep(context.Background(), &DensitySweep{
		Rule: "life", Width: 16, Height: 16, Generations: 4, Seed: 1, Min: 0, Max: 1, NumSteps: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[1].Density != 0.5 {
		t.Errorf("expected middle density 0.5, got %f", results[1].Density)
	}
	for _, i := range []int{0, 2} {
		if results[i].FinalPopulation != 0 || results[i].Period != 1 {
			t.Errorf("density %.1f: expected an empty still grid, got %+v", results[i].Density, results[i])
		}
	}

	if _, err := RunSweep(context.Background(), &DensitySweep{Rule: "life", NumSteps: 0}); err == nil {
		t.Error("expected error for zero steps")
	}
}
