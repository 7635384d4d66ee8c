package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"Tekka/internal/config"
	"Tekka/internal/engine/window"
	"Tekka/internal/logger"

	"go.uber.org/zap"
)

// GLFW and the GL context must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a TOML scene configuration")
	logLevel := flag.String("log-level", "", "override the configured log level")
	flag.Parse()

	if err := run(*configPath, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "tekka:", err)
		os.Exit(1)
	}
}

func run(configPath, logLevel string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		return err
	}
	defer logger.Sync()

	logger.Log.Info("Tekka starting",
		zap.String("config", configPath),
		zap.Int("objects", len(cfg.Objects)))
	if err := window.Run(cfg); err != nil {
		logger.Log.Error("Engine stopped", zap.Error(err))
		return err
	}
	return nil
}
