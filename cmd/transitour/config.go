package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/transitour/transitour/gtfs"
)

// config is the resolved run configuration: defaults, overlaid by the
// optional YAML file, overlaid by command-line flags.
type config struct {
	Feed        string   `yaml:"feed"`
	Start       string   `yaml:"start"`
	Open        bool     `yaml:"open"`
	MaxPasses   int      `yaml:"max_passes"`
	MaxDuration string   `yaml:"max_duration"`
	Workers     int      `yaml:"workers"`
	SkipStops   []string `yaml:"skip_stop_prefixes"`

	Name      string  `yaml:"name"`
	FrameRate float64 `yaml:"frame_rate"`
	Speedup   float64 `yaml:"speedup"`
	GeoJSON   string  `yaml:"geojson"`
	ESP       string  `yaml:"esp"`

	maxDuration time.Duration
}

func defaultConfig() config {
	return config{Workers: 4, Name: "Transit Tour", FrameRate: 30, Speedup: 1}
}

// resolveConfig merges the config file (if any) with the flags set on
// the command line. An explicitly set flag always wins.
func resolveConfig(c *cli.Context) (config, error) {
	cfg := defaultConfig()

	if path := c.String("config"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if c.IsSet("feed") {
		cfg.Feed = c.String("feed")
	}
	if c.IsSet("start") {
		cfg.Start = c.String("start")
	}
	if c.IsSet("open") {
		cfg.Open = c.Bool("open")
	}
	if c.IsSet("max-passes") {
		cfg.MaxPasses = c.Int("max-passes")
	}
	if c.IsSet("max-duration") {
		cfg.MaxDuration = c.String("max-duration")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("skip-stop-prefix") {
		cfg.SkipStops = c.StringSlice("skip-stop-prefix")
	}
	if c.IsSet("name") {
		cfg.Name = c.String("name")
	}
	if c.IsSet("frame-rate") {
		cfg.FrameRate = c.Float64("frame-rate")
	}
	if c.IsSet("speedup") {
		cfg.Speedup = c.Float64("speedup")
	}
	if c.IsSet("geojson") {
		cfg.GeoJSON = c.String("geojson")
	}
	if c.IsSet("esp") {
		cfg.ESP = c.String("esp")
	}

	if cfg.Feed == "" {
		return config{}, fmt.Errorf("no GTFS feed given (--feed or config file)")
	}
	if cfg.MaxDuration != "" {
		d, err := time.ParseDuration(cfg.MaxDuration)
		if err != nil {
			return config{}, fmt.Errorf("parse max_duration: %w", err)
		}
		cfg.maxDuration = d
	}

	return cfg, nil
}

// stopFilter converts the skip-prefix list into a gtfs stop filter, or
// nil when no prefixes are configured.
func (cfg config) stopFilter() func(gtfs.Stop) bool {
	if len(cfg.SkipStops) == 0 {
		return nil
	}

	return func(s gtfs.Stop) bool {
		for _, prefix := range cfg.SkipStops {
			if strings.HasPrefix(s.ID, prefix) {
				return false
			}
		}

		return true
	}
}
