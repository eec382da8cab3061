// Command tpe-solver exposes TPE optimizers to an external benchmark driver
// over line-delimited JSON on stdin/stdout. Logs go to stderr.
//
// Usage:
//
//	tpe-solver [-config solver.yaml]
package main

import (
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/thalesfsp/tpe/solver"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML solver configuration file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	config, err := solver.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	logger.Info("solver started",
		zap.Float64("gamma", config.Gamma),
		zap.Int("candidates", config.Candidates))

	handler := solver.NewHandler(config, logger)
	if err := handler.Run(os.Stdin, os.Stdout); err != nil {
		logger.Fatal("message loop failed", zap.Error(err))
	}

	logger.Info("driver closed the stream, exiting")
}

// newLogger builds a stderr logger; stdout is reserved for the protocol.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}
