// Package config loads settings for the rotabounds commands.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/rotabounds/pkg/bounds"
)

// Config holds all settings.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Sim     SimConfig     `yaml:"sim"`
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig selects the collision algorithm and the bounds source.
type EngineConfig struct {
	// Mode is membership or segment.
	Mode string `yaml:"mode" split_words:"true"`
	// BoundsFile is loaded for every body; empty means plain rectangles.
	BoundsFile string `yaml:"bounds_file" split_words:"true"`
}

// SimConfig drives the headless simulation. Workers 0 means one per CPU;
// FrameMillis is how long each animation frame is shown.
type SimConfig struct {
	Bodies       int     `yaml:"bodies" split_words:"true"`
	Steps        int     `yaml:"steps" split_words:"true"`
	StepMillis   int     `yaml:"step_millis" split_words:"true"`
	WorldWidth   float64 `yaml:"world_width" split_words:"true"`
	WorldHeight  float64 `yaml:"world_height" split_words:"true"`
	BodySize     float64 `yaml:"body_size" split_words:"true"`
	TweenSeconds float64 `yaml:"tween_seconds" split_words:"true"`
	Easing       string  `yaml:"easing" split_words:"true"`
	Seed         int64   `yaml:"seed" split_words:"true"`
	Workers      int     `yaml:"workers" split_words:"true"`
	FrameMillis  int     `yaml:"frame_millis" split_words:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" split_words:"true"`
	LogFile string `yaml:"log_file" split_words:"true"`
	JSON    bool   `yaml:"json" split_words:"true"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Mode: "membership",
		},
		Sim: SimConfig{
			Bodies:       16,
			Steps:        600,
			StepMillis:   16,
			WorldWidth:   800,
			WorldHeight:  600,
			BodySize:     48,
			TweenSeconds: 1.5,
			Easing:       "inOutQuad",
			Seed:         1,
			FrameMillis:  100,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Step returns the simulated time per step.
func (s SimConfig) Step() time.Duration {
	return time.Duration(s.StepMillis) * time.Millisecond
}

// Frame returns how long each animation frame is shown.
func (s SimConfig) Frame() time.Duration {
	return time.Duration(s.FrameMillis) * time.Millisecond
}

// Validate checks values that would make the commands misbehave.
func (c *Config) Validate() error {
	var errs []error
	if _, err := bounds.ParseMode(c.Engine.Mode); err != nil {
		errs = append(errs, fmt.Errorf("engine.mode: %w", err))
	}
	s := c.Sim
	if s.Bodies < 0 {
		errs = append(errs, fmt.Errorf("sim.bodies: must not be negative, got %d", s.Bodies))
	}
	if s.Steps < 0 {
		errs = append(errs, fmt.Errorf("sim.steps: must not be negative, got %d", s.Steps))
	}
	if s.StepMillis <= 0 {
		errs = append(errs, fmt.Errorf("sim.step_millis: must be positive, got %d", s.StepMillis))
	}
	if s.FrameMillis <= 0 {
		errs = append(errs, fmt.Errorf("sim.frame_millis: must be positive, got %d", s.FrameMillis))
	}
	if s.WorldWidth <= 0 || s.WorldHeight <= 0 {
		errs = append(errs, fmt.Errorf("sim.world: must be positive, got %gx%g", s.WorldWidth, s.WorldHeight))
	}
	if s.BodySize <= 0 {
		errs = append(errs, fmt.Errorf("sim.body_size: must be positive, got %g", s.BodySize))
	}
	if s.TweenSeconds <= 0 {
		errs = append(errs, fmt.Errorf("sim.tween_seconds: must be positive, got %g", s.TweenSeconds))
	}
	if s.Workers < 0 {
		errs = append(errs, fmt.Errorf("sim.workers: must not be negative, got %d", s.Workers))
	}
	return errors.Join(errs...)
}
