package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/matrixdemo/internal/boot"
	"github.com/san-kum/matrixdemo/internal/catalog"
	"github.com/san-kum/matrixdemo/internal/config"
	"github.com/san-kum/matrixdemo/internal/emulator"
	"github.com/san-kum/matrixdemo/internal/export"
	"github.com/san-kum/matrixdemo/internal/fonts"
	"github.com/san-kum/matrixdemo/internal/hostnet"
	"github.com/san-kum/matrixdemo/internal/hw"
	"github.com/san-kum/matrixdemo/internal/logging"
	"github.com/san-kum/matrixdemo/internal/rtc"
	"github.com/san-kum/matrixdemo/internal/tui"
	"github.com/spf13/cobra"
)

func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if preset != "" {
		pages := config.GetPreset(preset)
		if pages == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Pages = pages
	}
	if ssid != "" {
		cfg.Wifi.SSID = ssid
	}
	if password != "" {
		cfg.Wifi.Password = password
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	if i2cBus != "" {
		cfg.Display.I2CBus = i2cBus
	}
	return cfg, cfg.Validate()
}

func pageSeed(cfg *config.Config) int64 {
	switch {
	case seed != 0:
		return seed
	case cfg.RandomSeed != 0:
		return cfg.RandomSeed
	}
	return time.Now().UnixNano()
}

// baseDeps wires the collaborators shared by the terminal and device modes.
func baseDeps(cfg *config.Config, logger *log.Logger) (boot.Deps, error) {
	bootFont, err := fonts.Load(cfg.BootFont)
	if err != nil {
		return boot.Deps{}, err
	}
	return boot.Deps{
		HTTP:     boot.NewWebClient(cfg.Clock.Timeout),
		Clock:    rtc.New(time.Now),
		Screens:  catalog.NewRegistry(logger).Screens(cfg.Pages, pageSeed(cfg)),
		BootFont: bootFont,
		Logger:   logger,
	}, nil
}

func runTerminal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	tail := tui.NewLogTail(8)
	var logger *log.Logger
	if cfg.Log.File != "" {
		var closer io.Closer
		logger, closer, err = logging.Open(cfg.Log.Level, cfg.Log.File)
		if err == nil {
			defer closer.Close()
		}
	} else {
		logger, err = logging.New(cfg.Log.Level, tail)
	}
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.Options{
		Title:         "IHLRGB " + version,
		Width:         cfg.Display.Width,
		Height:        cfg.Display.Height,
		FrameInterval: cfg.Display.FrameInterval,
		Logs:          tail,
	}, cancel)

	var rec *export.GIFRecorder
	if recordPath != "" {
		delay := int(cfg.Display.FrameInterval / (10 * time.Millisecond))
		if delay < 1 {
			delay = 1
		}
		rec = export.NewGIFRecorder(4, delay, 1000)
		app.Sink.Record(rec)
	}

	deps, err := baseDeps(cfg, logger)
	if err != nil {
		return err
	}
	opts := emulator.DefaultOpts
	opts.Failures = connectFailures
	deps.OpenDisplay = app.OpenDisplay
	deps.Network = emulator.NewNetwork(&opts)
	deps.Forward = app.Forward
	deps.Backward = app.Backward
	deps.OnPhase = app.OnPhase

	ctrl := boot.New(cfg.Boot(version), deps)
	err = app.Run(ctx, ctrl.Run)

	if rec != nil && rec.Len() > 0 {
		if serr := rec.Save(recordPath); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}

func runDevice(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, closer, err := logging.Open(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := hw.Init(); err != nil {
		return fmt.Errorf("host init: %w", err)
	}
	forward, err := hw.OpenButton(cfg.Input.ForwardPin)
	if err != nil {
		return err
	}
	backward, err := hw.OpenButton(cfg.Input.BackwardPin)
	if err != nil {
		return err
	}

	deps, err := baseDeps(cfg, logger)
	if err != nil {
		return err
	}
	var panel *hw.OLED
	deps.OpenDisplay = func() (boot.Display, error) {
		o, err := hw.OpenOLED(cfg.Display.I2CBus, cfg.Display.Width, cfg.Display.Height, cfg.Display.FrameInterval, logger)
		if err != nil {
			return nil, err
		}
		panel = o
		return o, nil
	}
	deps.Network = hostnet.New(cfg.Wifi.Interface, hostnet.SystemInterfaces)
	deps.Forward = forward
	deps.Backward = backward

	err = boot.New(cfg.Boot(version), deps).Run(ctx)
	if panel != nil {
		if cerr := panel.Close(); cerr != nil {
			logger.Warn("halt panel", "err", cerr)
		}
	}
	return err
}
