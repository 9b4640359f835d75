// Package main is the macrostorm reference daemon. It runs the engine
// against the recording host backend, which makes it a dry-run driver:
// every injection and switch is logged instead of touching hardware.
// Real deployments embed the engine behind their own host
// implementation.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/macrostorm/internal/config"
	"github.com/dshills/macrostorm/internal/engine"
	"github.com/dshills/macrostorm/internal/host"
	"github.com/dshills/macrostorm/internal/logging"
	"github.com/dshills/macrostorm/internal/store"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	console    bool
	tickMS     int
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	log, err := logging.New(opts.logLevel, opts.console)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	cfg := loadConfig(opts.configPath, &log)

	rec := host.NewRecorder(&log)
	mem := store.NewMem()

	eng, err := buildEngine(cfg, rec, mem, &log)
	if err != nil {
		log.Error().Err(err).Msg("engine construction failed")
		return 1
	}
	defer eng.Close()

	// Hot reload: a settled config change delivers a fresh Config; the
	// engine is rebuilt between ticks.
	reloads := make(chan *config.Config, 1)
	if opts.configPath != "" {
		w, err := config.NewWatcher(opts.configPath, func(c *config.Config) {
			select {
			case reloads <- c:
			default:
			}
		}, &log)
		if err != nil {
			log.Warn().Err(err).Msg("config watcher unavailable, hot reload disabled")
		} else {
			defer w.Close()
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Duration(opts.tickMS) * time.Millisecond)
	defer ticker.Stop()

	log.Info().Str("version", version).Str("commit", commit).Msg("macrostorm running")

	for {
		select {
		case <-ticker.C:
			eng.OnTick(1)

		case cfg := <-reloads:
			next, err := buildEngine(cfg, rec, mem, &log)
			if err != nil {
				log.Error().Err(err).Msg("reload failed, keeping previous engine")
				continue
			}
			eng.Close()
			eng = next

		case sig := <-signals:
			log.Info().Str("signal", sig.String()).Msg("shutting down")
			return 0
		}
	}
}

// loadConfig reads the configuration file, falling back to defaults
// when no path is given or the file is unreadable.
func loadConfig(path string, log *zerolog.Logger) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("using default configuration")
		return config.Default()
	}
	for _, verr := range cfg.Validate() {
		log.Warn().Err(verr).Msg("config item invalid, skipping it")
	}
	return cfg
}

// buildEngine assembles a fully bound engine from a configuration.
func buildEngine(cfg *config.Config, h host.Host, st store.Transient, log *zerolog.Logger) (*engine.Engine, error) {
	eng, err := engine.New(cfg, h, st, log)
	if err != nil {
		return nil, err
	}

	if cfg.Engine.MacroPath != "" {
		if err := eng.LoadMacroFile(cfg.Engine.MacroPath); err != nil {
			log.Warn().Err(err).Str("path", cfg.Engine.MacroPath).Msg("macro script not loaded")
		}
	}
	for _, berr := range eng.BindLayers(cfg) {
		log.Warn().Err(berr).Msg("macro binding skipped")
	}

	eng.OnStartup()
	return eng, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	flag.BoolVar(&opts.console, "console", false, "Human-readable log output")
	flag.IntVar(&opts.tickMS, "tick", 40, "Tick interval in milliseconds")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "macrostorm - keyboard macro and remapping engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: macrostorm [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("macrostorm %s (%s)\n", version, commit)
		os.Exit(0)
	}

	if opts.tickMS <= 0 {
		opts.tickMS = 40
	}

	return opts
}
