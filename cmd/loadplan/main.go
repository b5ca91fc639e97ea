// Package main is the loadplan command-line tool.
//
// Usage:
//
//	loadplan containers
//	loadplan axles --front-mass 1100 --front-x 0.5 --rear-mass 900 --rear-x 3.35
//	loadplan restraint -f restraint.json -o json
//
// Engine defaults are read from the same configuration as the API
// (config.yaml or LPS_ENGINE_* variables). Logs go to stderr.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"

	"github.com/hapkiduki/loadplan-go/internal/application/service"
	"github.com/hapkiduki/loadplan-go/internal/infrastructure/config"
	"github.com/hapkiduki/loadplan-go/internal/infrastructure/logging"
	"github.com/hapkiduki/loadplan-go/internal/interfaces/cli"
	"github.com/hapkiduki/loadplan-go/pkg/logger"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		return 2
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: "console",
		Output: zapcore.Lock(os.Stderr),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		return 2
	}
	defer log.Sync()

	calc := service.NewCalculatorService(nil, logging.NewAdapter(log.Named("calculator")),
		service.WithDefaults(cfg.Engine.ServiceDefaults()))

	if err := cli.NewRootCommand(calc, version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		return 1
	}
	return 0
}
