package simulate

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/okian/joust/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging initializes the logger and, when logFile is set, tees
// the progress output to it as well.
func SetupLogging(logFile string, verbose bool) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		if err := logger.SetLevelString("debug"); err != nil {
			return fmt.Errorf("failed to set log level: %w", err)
		}
	}

	if logFile == "" {
		return nil
	}
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the simulator.
func ShowHelp() {
	os.Stdout.WriteString(`Joust Ranking Simulator
=======================

A concurrent client that drives complete pairwise ranking sessions
against a running joust server and verifies the results: bounded
completion, monotonic vote counts, share links and win records
matching a hidden preference order.

Usage:
  go run cmd/simulate/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -sessions int
        Number of ranking sessions to drive (default 25)
  -size int
        Requested pool size, one of 10, 50 or 100 (default 10)
  -workers int
        Maximum concurrent sessions (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -seed int
        Oracle shuffle seed (default: derived from the clock)
  -log string
        Optional log file for simulator output
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Simulate with default settings
  go run cmd/simulate/main.go

  # Heavier load with bigger pools
  go run cmd/simulate/main.go -sessions 100 -size 50 -workers 16

  # Replay a failed run deterministically
  go run cmd/simulate/main.go -seed 1724572800 -verbose
`)
}
