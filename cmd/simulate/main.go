package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/joust/internal/simulate"
)

// Default configuration constants.
const (
	defaultSessions   = 25
	defaultPoolSize   = 10
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		sessions = flag.Int("sessions", defaultSessions, "Number of ranking sessions to drive")
		poolSize = flag.Int("size", defaultPoolSize, "Requested pool size, one of 10, 50 or 100")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Maximum concurrent sessions")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed     = flag.Int64("seed", 0, "Oracle shuffle seed (default: derived from the clock)")
		logFile  = flag.String("log", "", "Optional log file for simulator output")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simulate.ShowHelp()
		return
	}

	if err := simulate.SetupLogging(*logFile, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &simulate.Config{
		BaseURL:  *baseURL,
		Sessions: *sessions,
		PoolSize: *poolSize,
		Workers:  *workers,
		Timeout:  *timeout,
		Seed:     *seed,
		LogFile:  *logFile,
		Verbose:  *verbose,
	}

	if err := simulate.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
