// Package main runs the headless bounds simulation.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/rotabounds/internal/config"
	"github.com/Faultbox/rotabounds/internal/logger"
	"github.com/Faultbox/rotabounds/internal/sim"
	"github.com/Faultbox/rotabounds/pkg/bounds"
	"github.com/Faultbox/rotabounds/pkg/formats"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
		fileCfg.JSON = cfg.Logging.JSON
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, true); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== rotabounds simulation ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	mode, err := bounds.ParseMode(cfg.Engine.Mode)
	if err != nil {
		logger.Fatal("bad collision mode", zap.Error(err))
	}

	var file *formats.BoundsFile
	if cfg.Engine.BoundsFile != "" {
		file, err = formats.LoadBounds(cfg.Engine.BoundsFile)
		if err != nil {
			logger.Fatal("failed to load bounds", zap.Error(err))
		}
		logger.Info("bounds loaded",
			zap.String("file", cfg.Engine.BoundsFile),
			zap.Stringer("mode", file.Mode),
			zap.Strings("frames", file.Keys()),
		)
	}

	world, err := sim.New(cfg.Sim, mode, file, logger.Named("sim"))
	if err != nil {
		logger.Fatal("failed to create world", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := world.Run(ctx, cfg.Sim.Steps)
	if err != nil {
		logger.Error("simulation stopped", zap.Error(err), zap.Int("steps", st.Steps))
		os.Exit(1)
	}

	fmt.Printf("steps=%d contacts=%d max=%d simulated=%v wall=%v\n",
		st.Steps, st.Contacts, st.MaxContacts, st.Simulated, st.Wall)
}
