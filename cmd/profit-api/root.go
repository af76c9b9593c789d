package main

import (
	"github.com/kubev2v/profit-planner/internal/config"
	"github.com/kubev2v/profit-planner/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "profit-api",
	Short: "profit-api serves the profit simulator and the sales dashboard.",
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(importCmd)
}

// setup reads the configuration and installs the global logger.
// The returned func restores the previous logger and flushes the new one.
func setup() (*config.Config, func(), error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}

	logger := log.InitLog(log.ParseLevel(cfg.Service.LogLevel), cfg.Service.LogFormat)
	undo := zap.ReplaceGlobals(logger)

	return cfg, func() {
		_ = logger.Sync()
		undo()
	}, nil
}
