package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagMode    = flag.String("mode", "", "Collision mode: membership or segment")
	flagBounds  = flag.String("bounds", "", "Bounds file for every body")
	flagBodies  = flag.Int("bodies", 0, "Number of simulated bodies")
	flagSteps   = flag.Int("steps", 0, "Number of simulation steps")
	flagSeed    = flag.Int64("seed", 0, "Random seed for body placement")
	flagWorkers = flag.Int("workers", 0, "Parallel workers (0 = one per CPU)")
	flagLogFile = flag.String("log-file", "", "Write logs to this file as well")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config. Zero values mean the
// flag was not given.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMode != "" {
		cfg.Engine.Mode = *flagMode
	}
	if *flagBounds != "" {
		cfg.Engine.BoundsFile = *flagBounds
	}
	if *flagBodies > 0 {
		cfg.Sim.Bodies = *flagBodies
	}
	if *flagSteps > 0 {
		cfg.Sim.Steps = *flagSteps
	}
	if *flagSeed != 0 {
		cfg.Sim.Seed = *flagSeed
	}
	if *flagWorkers > 0 {
		cfg.Sim.Workers = *flagWorkers
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
