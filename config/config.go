// Package config loads pqsim settings from a file and PQSIM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/davidvella/pq/simulation"
)

const (
	KeySteps         = "simulation.steps"
	KeyMinArrivals   = "simulation.min_arrivals"
	KeyMaxArrivals   = "simulation.max_arrivals"
	KeyMinPriority   = "simulation.min_priority"
	KeyMaxPriority   = "simulation.max_priority"
	KeySeed          = "simulation.seed"
	KeyEventDir      = "events.dir"
	KeyEventFile     = "events.file"
	KeyEventKeep     = "events.keep"
	KeyReportTop     = "report.top"
	KeyLogDebug      = "log.debug"
	KeyLogFile       = "log.file"
	KeyLogMaxSize    = "log.max_size_mb"
	KeyLogMaxBackups = "log.max_backups"
)

// EnvPrefix prefixes environment overrides, e.g. PQSIM_SIMULATION_STEPS.
const EnvPrefix = "PQSIM"

var (
	ErrInvalidConfig = errors.New("config: invalid value")
	ErrConfigExists  = errors.New("config: file already exists")
)

// Config is the full configuration of the pqsim command.
type Config struct {
	Simulation simulation.Config

	EventDir  string // directory holding event logs
	EventFile string // event log name; empty generates one per run
	KeepRuns  int    // generated run logs retained; zero keeps all
	ReportTop int    // longest waits listed in the report

	Debug         bool
	LogFile       string // rotated JSON diagnostic log; empty disables it
	LogMaxSizeMB  int
	LogMaxBackups int
}

func newViper() *viper.Viper {
	v := defaults()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func defaults() *viper.Viper {
	v := viper.New()
	def := simulation.DefaultConfig()

	v.SetDefault(KeySteps, def.Steps)
	v.SetDefault(KeyMinArrivals, def.MinArrivals)
	v.SetDefault(KeyMaxArrivals, def.MaxArrivals)
	v.SetDefault(KeyMinPriority, def.MinPriority)
	v.SetDefault(KeyMaxPriority, def.MaxPriority)
	v.SetDefault(KeySeed, def.Seed)
	v.SetDefault(KeyEventDir, ".")
	v.SetDefault(KeyEventFile, "log.txt")
	v.SetDefault(KeyEventKeep, 0)
	v.SetDefault(KeyReportTop, 5)
	v.SetDefault(KeyLogDebug, false)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogMaxSize, 10)
	v.SetDefault(KeyLogMaxBackups, 3)
	return v
}

// Load reads the configuration file at path, if any, and applies
// environment overrides on top of the defaults. The file type is taken from
// the extension (yaml, toml, json).
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	c := &Config{
		Simulation: simulation.Config{
			Steps:       v.GetInt(KeySteps),
			MinArrivals: v.GetInt(KeyMinArrivals),
			MaxArrivals: v.GetInt(KeyMaxArrivals),
			MinPriority: v.GetInt(KeyMinPriority),
			MaxPriority: v.GetInt(KeyMaxPriority),
			Seed:        v.GetInt64(KeySeed),
		},
		EventDir:      v.GetString(KeyEventDir),
		EventFile:     v.GetString(KeyEventFile),
		KeepRuns:      v.GetInt(KeyEventKeep),
		ReportTop:     v.GetInt(KeyReportTop),
		Debug:         v.GetBool(KeyLogDebug),
		LogFile:       v.GetString(KeyLogFile),
		LogMaxSizeMB:  v.GetInt(KeyLogMaxSize),
		LogMaxBackups: v.GetInt(KeyLogMaxBackups),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the simulation and output settings.
func (c *Config) Validate() error {
	if err := c.Simulation.Validate(); err != nil {
		return err
	}
	if c.EventDir == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, KeyEventDir)
	}
	if c.KeepRuns < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, KeyEventKeep)
	}
	if c.ReportTop < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, KeyReportTop)
	}
	if c.LogMaxSizeMB < 1 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, KeyLogMaxSize)
	}
	return nil
}

// WriteDefault writes a configuration file holding the built-in defaults;
// environment overrides are not applied. An existing file is left untouched
// and reported with ErrConfigExists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), os.FileMode(0o700)); err != nil {
		return err
	}
	return defaults().WriteConfigAs(path)
}
