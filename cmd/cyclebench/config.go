package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes one benchmark run. It can be loaded from a YAML file;
// command-line flags override the file.
type Config struct {
	Clients   int           `yaml:"clients"`    // king keyspace
	Backends  int           `yaml:"backends"`   // queen keyspace
	PerClient int           `yaml:"per_client"` // backends assigned on a miss
	Workers   int           `yaml:"workers"`
	Duration  time.Duration `yaml:"duration"`
	ReadPct   int           `yaml:"read_pct"` // share of Next calls, the rest is churn
	ZipfS     float64       `yaml:"zipf_s"`
	Seed      int64         `yaml:"seed"`

	HTTPAddr  string `yaml:"http"`
	PprofAddr string `yaml:"pprof"`
	LogLevel  string `yaml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		Clients:   100_000,
		Backends:  64,
		PerClient: 3,
		Workers:   4,
		Duration:  10 * time.Second,
		ReadPct:   95,
		ZipfS:     1.1,
		Seed:      time.Now().UnixNano(),
		HTTPAddr:  ":8080",
		LogLevel:  "info",
	}
}

// loadConfig decodes the YAML file at path over cfg. Keys missing from the
// file keep their current value; unknown keys are rejected.
func loadConfig(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// validate rejects configurations the workload cannot run with.
func (c Config) validate() error {
	switch {
	case c.Clients < 1:
		return errors.New("clients must be >= 1")
	case c.Backends < 1:
		return errors.New("backends must be >= 1")
	case c.PerClient < 1 || c.PerClient > c.Backends:
		return fmt.Errorf("per_client must be in [1..%d]", c.Backends)
	case c.Workers < 1:
		return errors.New("workers must be >= 1")
	case c.Duration <= 0:
		return errors.New("duration must be > 0")
	case c.ReadPct < 0 || c.ReadPct > 100:
		return errors.New("read_pct must be in [0..100]")
	case c.ZipfS <= 1:
		return errors.New("zipf_s must be > 1")
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c Config) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}
