package main

import (
	"fmt"
	"image"
	"os"
	"text/tabwriter"

	"github.com/san-kum/matrixdemo/internal/automation"
	"github.com/san-kum/matrixdemo/internal/export"
	"github.com/san-kum/matrixdemo/internal/logging"
	"github.com/spf13/cobra"
)

var (
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closer, err := logging.Open(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closer.Close()

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	var rec *export.GIFRecorder
	var record func(*image.RGBA)
	if recordPath != "" {
		rec = export.NewGIFRecorder(4, 3, 0)
		record = rec.Add
	}

	report, err := automation.RunScenario(cmd.Context(), sc, cfg, logger, record)
	if err != nil {
		return fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	fmt.Printf("scenario: %s\n", report.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Printf("frames: %d  association attempts: %d\n", report.Frames, report.Attempts)
	for i, p := range report.Pages {
		fmt.Printf("  %2d  %s\n", i+1, p)
	}

	if rec != nil {
		if err := rec.Save(recordPath); err != nil {
			return err
		}
		fmt.Printf("recorded %d frames to %s\n", rec.Len(), recordPath)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	results, err := automation.RunSweep(cmd.Context(), &automation.DensitySweep{
		Rule:        args[0],
		Width:       width,
		Height:      height,
		Generations: generations,
		Seed:        statsSeed,
		Min:         sweepMin,
		Max:         sweepMax,
		NumSteps:    sweepSteps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DENSITY\tFINAL POP\tACTIVITY\tPERIOD")
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%.0f\t%.4f\t%.0f\n", r.Density, r.FinalPopulation, r.Activity, r.Period)
	}
	return w.Flush()
}
