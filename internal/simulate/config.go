// Package simulate drives complete ranking sessions against a running
// joust server and verifies the engine's observable guarantees from the
// outside: monotonic vote counts, bounded completion, share links and
// per-item win records that match a hidden preference order.
package simulate

import (
	"errors"
	"fmt"
	"time"
)

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Sessions int           // Number of ranking sessions to drive
	PoolSize int           // Requested pool size for each session
	Workers  int           // Maximum concurrent sessions
	Timeout  time.Duration // HTTP request timeout
	Seed     int64         // Oracle shuffle seed; 0 derives one from the clock
	LogFile  string        // Optional log file for simulator output
	Verbose  bool          // Enable verbose logging
}

// validate rejects configurations the server would refuse anyway, plus
// the unbounded size: without a matchup budget the progress checks have
// nothing to verify against.
func (c *Config) validate() error {
	if c.Sessions < 1 {
		return errors.New("sessions must be at least 1")
	}
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	switch c.PoolSize {
	case 10, 50, 100:
		return nil
	default:
		return fmt.Errorf("pool size %d is not one of 10, 50 or 100", c.PoolSize)
	}
}

// Stats holds simulation statistics.
type Stats struct {
	SessionsStarted   int
	SessionsCompleted int
	SessionsFailed    int
	VotesSubmitted    int
	SharesVerified    int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
