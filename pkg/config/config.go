package config

import (
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"outlierprep/pkg/stats"
)

// Config drives a single outlierprep run.
type Config struct {
	// Input is the CSV file to clean. "-" reads stdin.
	Input string `yaml:"input"`
	// Output is where the kept rows are written. Empty writes stdout.
	Output string `yaml:"output"`
	// Plot, when set, is a .png/.svg/.pdf path for the kept/outlier chart.
	Plot string `yaml:"plot"`
	// LabelCol is the 0-based label column, or -1 when there is none.
	LabelCol int  `yaml:"labelCol"`
	Impute   bool `yaml:"impute"`
	Dedupe   bool `yaml:"dedupe"`

	Filter FilterConfig `yaml:"filter"`
	Log    LogConfig    `yaml:"log"`
}

type FilterConfig struct {
	Threshold      float64 `yaml:"threshold"`
	WindowFraction float64 `yaml:"windowFraction"`
	Workers        int     `yaml:"workers"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Input:    "-",
		LabelCol: -1,
		Filter: FilterConfig{
			Threshold:      stats.DefaultThreshold,
			WindowFraction: stats.DefaultWindowFraction,
			Workers:        1,
		},
		Log: LogConfig{Level: "info"},
	}
}

// OutlierOptions converts the filter section for stats.RemoveOutliers.
// The mask is always requested since labels and plots need it.
func (c *Config) OutlierOptions() stats.OutlierOptions {
	return stats.OutlierOptions{
		Threshold:      c.Filter.Threshold,
		WindowFraction: c.Filter.WindowFraction,
		ReturnMask:     true,
		Workers:        c.Filter.Workers,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("input is required")
	}
	if c.LabelCol < -1 {
		return fmt.Errorf("labelCol must be -1 or a column index, got %d", c.LabelCol)
	}
	if c.Filter.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Filter.Workers)
	}
	return c.OutlierOptions().Validate()
}

// LoadFile overlays the YAML file at path onto cfg. Keys absent from the
// file keep their current values.
func LoadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Load builds a Config from defaults, then the --config file, then any
// flags explicitly set in args, and validates the result.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := Default()
	var path string
	fv := *cfg

	fs.StringVar(&path, "config", "", "YAML config file")
	fs.StringVarP(&fv.Input, "input", "i", cfg.Input, "input CSV file (- for stdin)")
	fs.StringVarP(&fv.Output, "output", "o", cfg.Output, "output CSV file (default stdout)")
	fs.StringVar(&fv.Plot, "plot", cfg.Plot, "write a kept/outlier scatter plot (.png, .svg, .pdf)")
	fs.IntVar(&fv.LabelCol, "label-col", cfg.LabelCol, "index of label column (-1 if no labels)")
	fs.BoolVar(&fv.Impute, "impute", cfg.Impute, "replace missing cells with the column median")
	fs.BoolVar(&fv.Dedupe, "dedupe", cfg.Dedupe, "drop duplicate rows before filtering")
	fs.Float64Var(&fv.Filter.Threshold, "threshold", cfg.Filter.Threshold, "modified z-score cutoff")
	fs.Float64Var(&fv.Filter.WindowFraction, "window-fraction", cfg.Filter.WindowFraction, "window length as a fraction of the row count")
	fs.IntVar(&fv.Filter.Workers, "workers", cfg.Filter.Workers, "windows scored concurrently")
	fs.StringVar(&fv.Log.Level, "log-level", cfg.Log.Level, "debug, info, warn or error")
	fs.BoolVar(&fv.Log.Development, "dev", cfg.Log.Development, "human-readable console logs")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	set := map[string]func(){
		"input":           func() { cfg.Input = fv.Input },
		"output":          func() { cfg.Output = fv.Output },
		"plot":            func() { cfg.Plot = fv.Plot },
		"label-col":       func() { cfg.LabelCol = fv.LabelCol },
		"impute":          func() { cfg.Impute = fv.Impute },
		"dedupe":          func() { cfg.Dedupe = fv.Dedupe },
		"threshold":       func() { cfg.Filter.Threshold = fv.Filter.Threshold },
		"window-fraction": func() { cfg.Filter.WindowFraction = fv.Filter.WindowFraction },
		"workers":         func() { cfg.Filter.Workers = fv.Filter.Workers },
		"log-level":       func() { cfg.Log.Level = fv.Log.Level },
		"dev":             func() { cfg.Log.Development = fv.Log.Development },
	}
	fs.Visit(func(f *flag.Flag) {
		if apply, ok := set[f.Name]; ok {
			apply()
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
