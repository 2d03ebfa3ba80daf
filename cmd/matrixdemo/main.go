package main

import (
	"fmt"
	"os"

	"github.com/san-kum/matrixdemo/internal/automaton"
	"github.com/san-kum/matrixdemo/internal/catalog"
	"github.com/san-kum/matrixdemo/internal/config"
	"github.com/spf13/cobra"
)

const version = "v0.0.2"

var (
	dataDir    string
	configFile string
	logLevel   string
	logFile    string
	// Page set
	preset string
	seed   int64
	// Network credentials, used when the environment does not set them
	ssid     string
	password string
	// Emulated co-processor
	connectFailures int
	// GIF recording of the terminal display
	recordPath string
	// Hardware
	i2cBus string
	// Statistics
	statsSeed   int64
	generations int
	pattern     string
	density     float64
	runs        int
	width       int
	height      int
	saveRun     bool
	jsonPath    string
	svgPath     string
)

// main registers the commands and runs the terminal emulator when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:           "matrixdemo",
		Short:         "pixel matrix demo with cellular automata",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTerminal,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".matrixdemo", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	addBootFlags(rootCmd, true)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "boot the display in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTerminal,
	}
	addBootFlags(runCmd, true)

	deviceCmd := &cobra.Command{
		Use:   "device",
		Short: "boot the display on an SSD1306 panel with GPIO buttons",
		Args:  cobra.NoArgs,
		RunE:  runDevice,
	}
	addBootFlags(deviceCmd, false)
	deviceCmd.Flags().StringVar(&i2cBus, "i2c-bus", "", "I2C bus name (overrides config)")

	statsCmd := &cobra.Command{
		Use:   "stats [rule]",
		Short: "run an automaton headless and plot its population",
		Args:  cobra.ExactArgs(1),
		RunE:  runStats,
	}
	statsCmd.Flags().IntVar(&generations, "generations", 500, "number of generations")
	statsCmd.Flags().StringVar(&pattern, "pattern", "random", "seed pattern")
	statsCmd.Flags().Float64Var(&density, "density", config.DefaultDensity, "random fill density")
	statsCmd.Flags().Int64Var(&statsSeed, "seed", 1, "random seed of the first run")
	statsCmd.Flags().IntVar(&runs, "runs", 1, "number of runs with consecutive seeds")
	statsCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "grid width")
	statsCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "grid height")
	statsCmd.Flags().BoolVar(&saveRun, "save", false, "store the first run in the data directory")
	statsCmd.Flags().StringVar(&jsonPath, "json", "", "export the first run as JSON")
	statsCmd.Flags().StringVar(&svgPath, "svg", "", "export the final generation as SVG")

	sweepCmd := &cobra.Command{
		Use:   "sweep [rule]",
		Short: "run an automaton across random fill densities",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.05, "lowest density")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.95, "highest density")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of densities")
	sweepCmd.Flags().IntVar(&generations, "generations", 500, "number of generations")
	sweepCmd.Flags().Int64Var(&statsSeed, "seed", 1, "random seed")
	sweepCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "grid width")
	sweepCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "grid height")

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "play a scripted session on an emulated board",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	scriptCmd.Flags().StringVar(&recordPath, "record", "", "record the display to a GIF file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotSVG, "svg", "", "also write the population series as SVG")

	pagesCmd := &cobra.Command{
		Use:   "pages",
		Short: "list page presets, kinds and seed patterns",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				fmt.Printf("  %s\n", name)
				for _, p := range config.GetPreset(name) {
					fmt.Printf("    %-12s %s\n", p.Name, p.Kind)
				}
			}
			fmt.Printf("kinds: %v\n", catalog.NewRegistry(nil).Kinds())
			fmt.Printf("rules: %v\n", automaton.RuleNames())
			fmt.Printf("patterns: %v\n", automaton.PatternNames())
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if preset != "" {
				pages := config.GetPreset(preset)
				if pages == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
				}
				cfg.Pages = pages
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	configInitCmd.Flags().StringVar(&preset, "preset", "", "page preset")
	configCmd.AddCommand(configInitCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	rootCmd.AddCommand(runCmd, deviceCmd, statsCmd, sweepCmd, scriptCmd, listCmd, plotCmd, pagesCmd, configCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addBootFlags(cmd *cobra.Command, emulated bool) {
	cmd.Flags().StringVar(&preset, "preset", "", "page preset (overrides config pages)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for the pages (0 uses config, then time)")
	cmd.Flags().StringVar(&ssid, "ssid", "", "network name when the environment does not set one")
	cmd.Flags().StringVar(&password, "password", "", "network password when the environment does not set one")
	if !emulated {
		return
	}
	cmd.Flags().IntVar(&connectFailures, "connect-failures", 0, "emulated failed association attempts (-1 never connects)")
	cmd.Flags().StringVar(&recordPath, "record", "", "record the display to a GIF file")
}
