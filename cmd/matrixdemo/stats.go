package main

import (
	"fmt"
	"image"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/matrixdemo/internal/automaton"
	"github.com/san-kum/matrixdemo/internal/export"
	"github.com/san-kum/matrixdemo/internal/metrics"
	"github.com/san-kum/matrixdemo/internal/page"
	"github.com/san-kum/matrixdemo/internal/sim"
	"github.com/san-kum/matrixdemo/internal/storage"
	"github.com/spf13/cobra"
)

var plotSVG string

func runStats(cmd *cobra.Command, args []string) error {
	if runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", runs)
	}
	cfg := sim.Config{
		Rule:        args[0],
		Width:       width,
		Height:      height,
		Pattern:     pattern,
		Density:     density,
		Generations: generations,
		Seed:        statsSeed,
	}
	newMetrics := func() []sim.Metric {
		return []sim.Metric{metrics.NewDensity(), metrics.NewActivity(), metrics.NewPeriod()}
	}

	start := time.Now()
	results, err := sim.NewEnsemble(newMetrics, runs, statsSeed).Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	first := results[0]

	fmt.Printf("rule: %s  size: %dx%d  pattern: %s\n", first.Rule, cfg.Width, cfg.Height, cfg.Pattern)
	fmt.Printf("generations: %d  runs: %d  elapsed: %v\n\n", first.Generations, runs, elapsed)

	fmt.Println(asciigraph.Plot(first.Population,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("population (seed %d)", first.Seed)),
	))
	fmt.Println()
	if len(first.Changed) > 0 {
		fmt.Println(asciigraph.Plot(first.Changed,
			asciigraph.Height(6),
			asciigraph.Width(80),
			asciigraph.Caption("changed cells"),
		))
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tMIN\tMAX")
	for _, s := range sim.Summarize(results) {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\n", s.Name, s.Mean, s.Min, s.Max)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	cfg.Seed = first.Seed
	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg, first)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved run %s\n", runID)
	}
	if jsonPath != "" {
		if err := storage.ExportJSON(jsonPath, cfg, first); err != nil {
			return err
		}
	}
	if svgPath != "" {
		img, err := renderGrid(first.Rule, first.Final)
		if err != nil {
			return err
		}
		if err := os.WriteFile(svgPath, []byte(export.FrameToSVG(img, 10)), 0644); err != nil {
			return err
		}
	}
	return nil
}

func renderGrid(ruleName string, g *automaton.Grid) (*image.RGBA, error) {
	rule, err := automaton.RuleByName(ruleName)
	if err != nil {
		return nil, err
	}
	bmp := page.NewBitmap(g.Width(), g.Height(), rule.Palette(page.DefaultTextColor))
	bmp.CopyGrid(g)
	img := image.NewRGBA(bmp.Bounds())
	bmp.Draw(img)
	return img, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRULE\tPATTERN\tTIME\tSIZE\tGENS\tPERIOD")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dx%d\t%d\t%.0f\n",
			run.ID,
			run.Rule,
			run.Pattern,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width,
			run.Height,
			run.Generations,
			run.Metrics["period"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	population, changed, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(population) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("rule: %s\n", meta.Rule)
	fmt.Printf("samples: %d\n\n", len(population))

	fmt.Println(asciigraph.Plot(population,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("population"),
	))
	fmt.Println()
	if len(changed) > 0 {
		fmt.Println(asciigraph.Plot(changed,
			asciigraph.Height(6),
			asciigraph.Width(80),
			asciigraph.Caption("changed cells"),
		))
	}

	if plotSVG != "" {
		return os.WriteFile(plotSVG, []byte(export.SeriesToSVG(population, 640, 240, "#00ff88")), 0644)
	}
	return nil
}
