package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/matrixdemo/internal/boot"
	"github.com/san-kum/matrixdemo/internal/fonts"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth         = 64
	DefaultHeight        = 32
	DefaultRefreshPoll   = time.Millisecond
	DefaultFrameInterval = 33 * time.Millisecond
	DefaultSettle        = 30 * time.Millisecond
	DefaultTimeout       = 5 * time.Second
	DefaultDensity       = 0.3
	DefaultBootFont      = fonts.Boot
)

var ErrInvalid = errors.New("config: invalid")

// Page kinds.
const (
	KindText   = "text"
	KindLife   = "life"
	KindChaser = "chaser"
)

type Config struct {
	Display    DisplayConfig `yaml:"display"`
	Input      InputConfig   `yaml:"input"`
	Wifi       WifiConfig    `yaml:"wifi"`
	Clock      ClockConfig   `yaml:"clock"`
	BootFont   string        `yaml:"boot_font"`
	RandomSeed int64         `yaml:"random_seed"`
	Pages      []PageConfig  `yaml:"pages"`
	Log        LogConfig     `yaml:"log"`
}

type DisplayConfig struct {
	Width         int           `yaml:"width"`
	Height        int           `yaml:"height"`
	RefreshPoll   time.Duration `yaml:"refresh_poll"`
	FrameInterval time.Duration `yaml:"frame_interval"`
	I2CBus        string        `yaml:"i2c_bus"`
}

type InputConfig struct {
	Settle      time.Duration `yaml:"settle"`
	ForwardPin  string        `yaml:"forward_pin"`
	BackwardPin string        `yaml:"backward_pin"`
}

type WifiConfig struct {
	SSIDEnv     string `yaml:"ssid_env"`
	PasswordEnv string `yaml:"password_env"`
	SSID        string `yaml:"ssid,omitempty"`
	Password    string `yaml:"password,omitempty"`
	Interface   string `yaml:"interface,omitempty"`
}

type ClockConfig struct {
	TimeURL string        `yaml:"time_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

type PageConfig struct {
	Name        string  `yaml:"name"`
	Kind        string  `yaml:"kind"`
	Font        string  `yaml:"font,omitempty"`
	Center      bool    `yaml:"center,omitempty"`
	Color       string  `yaml:"color,omitempty"`
	Seed        string  `yaml:"seed,omitempty"`
	Density     float64 `yaml:"density,omitempty"`
	ReseedEvery int     `yaml:"reseed_every,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:         DefaultWidth,
			Height:        DefaultHeight,
			RefreshPoll:   DefaultRefreshPoll,
			FrameInterval: DefaultFrameInterval,
			I2CBus:        "",
		},
		Input: InputConfig{
			Settle:      DefaultSettle,
			ForwardPin:  "GPIO17",
			BackwardPin: "GPIO27",
		},
		Wifi: WifiConfig{
			SSIDEnv:     "CIRCUITPY_WIFI_SSID",
			PasswordEnv: "CIRCUITPY_WIFI_PASSWORD",
		},
		Clock: ClockConfig{
			TimeURL: "http://worldtimeapi.org/api/ip",
			Timeout: DefaultTimeout,
		},
		BootFont: DefaultBootFont,
		Pages:    clonePages(Presets["default"]),
		Log:      LogConfig{Level: "info"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("%w: display size %dx%d", ErrInvalid, c.Display.Width, c.Display.Height)
	}
	if c.Display.RefreshPoll <= 0 {
		return fmt.Errorf("%w: refresh_poll must be positive", ErrInvalid)
	}
	if len(c.Pages) == 0 {
		return fmt.Errorf("%w: no pages", ErrInvalid)
	}
	seen := make(map[string]bool, len(c.Pages))
	for _, p := range c.Pages {
		if p.Name == "" {
			return fmt.Errorf("%w: page without a name", ErrInvalid)
		}
		if p.Name == boot.BootPage || seen[p.Name] {
			return fmt.Errorf("%w: duplicate page name %q", ErrInvalid, p.Name)
		}
		seen[p.Name] = true
		switch p.Kind {
		case KindText, KindLife, KindChaser:
		default:
			return fmt.Errorf("%w: page %q has unknown kind %q", ErrInvalid, p.Name, p.Kind)
		}
		if p.Density < 0 || p.Density > 1 {
			return fmt.Errorf("%w: page %q density %v outside [0,1]", ErrInvalid, p.Name, p.Density)
		}
		if _, err := ParseColor(p.Color); err != nil {
			return fmt.Errorf("%w: page %q: %v", ErrInvalid, p.Name, err)
		}
	}
	return nil
}

// Boot returns the controller configuration for this file.
func (c *Config) Boot(version string) boot.Config {
	bc := boot.DefaultConfig()
	bc.Version = version
	bc.Width = c.Display.Width
	bc.Height = c.Display.Height
	bc.RefreshPoll = c.Display.RefreshPoll
	bc.Settle = c.Input.Settle
	bc.TimeURL = c.Clock.TimeURL
	bc.SSIDEnv = c.Wifi.SSIDEnv
	bc.PasswordEnv = c.Wifi.PasswordEnv
	bc.SSID = c.Wifi.SSID
	bc.Password = c.Wifi.Password
	return bc
}

// ParseColor accepts "#rrggbb", "rrggbb" or "0xrrggbb". Empty means black
// with full alpha, which callers treat as "use the default color".
func ParseColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{A: 0xff}, nil
	}
	hex := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "#"), "0x")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
