// Copyright (c) 2026 Alfa Eta Electromobile Team
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"

	"go.uber.org/zap"

	"github.com/alfa-eta/dashboard/internal/app"
	"github.com/alfa-eta/dashboard/internal/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger := initLogger(*debug)
	defer logger.Sync()

	logger.Info("starting dashboard web view (MQTT → browser)")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	if err := app.RunWeb(cfg, logger); err != nil {
		logger.Fatal("fatal", zap.Error(err))
	}
}

func initLogger(debug bool) *zap.Logger {
	if debug {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}
