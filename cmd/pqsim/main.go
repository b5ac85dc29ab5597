package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/davidvella/pq/config"
	"github.com/davidvella/pq/internal/logutil"
)

const version = "0.1.0"

var (
	configPath  = flag.String("c", "", "Configuration file path (yaml, toml or json)")
	initConfig  = flag.Bool("init", false, "Write a default configuration file to -c and exit")
	steps       = flag.Int("steps", 0, "Override the number of generation steps")
	seed        = flag.Int64("seed", 0, "Override the random seed")
	eventFile   = flag.String("o", "", "Override the event log file name")
	keepRuns    = flag.Int("keep", 0, "Keep only the newest N generated run logs (0 keeps all)")
	debugLog    = flag.Bool("debug", false, "Enable debug output")
	versionFlag = flag.Bool("v", false, "Show version")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println("pqsim version", version)
		return
	}

	if *initConfig {
		if *configPath == "" {
			fatal("-init requires -c <path>")
		}
		err := config.WriteDefault(*configPath)
		switch {
		case errors.Is(err, config.ErrConfigExists):
			fmt.Println("configuration already exists at", *configPath)
		case err != nil:
			fatal("config: %v", err)
		default:
			fmt.Println("configuration written to", *configPath)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("config: %v", err)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fatal("config: %v", err)
	}

	level := "info"
	if cfg.Debug {
		level = "debug"
	}
	logger, closeLog, err := logutil.New(logutil.LogConfig{
		Level:      level,
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	if err != nil {
		fatal("log: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, color.Output, logger)
	stop()

	if err != nil {
		logger.Error("simulation failed", zap.Error(err))
		_ = closeLog()
		os.Exit(1)
	}
	_ = closeLog()
}

// applyFlags overrides configuration values with flags set on the command line.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "steps":
			cfg.Simulation.Steps = *steps
		case "seed":
			cfg.Simulation.Seed = *seed
		case "o":
			cfg.EventFile = *eventFile
		case "keep":
			cfg.KeepRuns = *keepRuns
		case "debug":
			cfg.Debug = *debugLog
		}
	})
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", color.New(color.FgHiRed).Sprint("[!!!]"), fmt.Sprintf(format, args...))
	os.Exit(1)
}
