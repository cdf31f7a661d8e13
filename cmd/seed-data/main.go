package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/mingle/internal/seed"
)

// Default configuration constants.
const (
	defaultNumAccounts   = 1000
	defaultNumActivities = 64
	defaultNumEvents     = 2000
	defaultSampleQueries = 100
	defaultBatchSize     = 100
	defaultWorkers       = 2 // multiplier for runtime.NumCPU()
	defaultTimeout       = 30 * time.Second
	defaultRunTimeout    = 10 * time.Minute
)

func main() {
	var (
		baseURL       = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numAccounts   = flag.Int("accounts", defaultNumAccounts, "Number of accounts to generate")
		numActivities = flag.Int("activities", defaultNumActivities, "Number of activities to generate")
		numEvents     = flag.Int("events", defaultNumEvents, "Number of events to generate")
		sampleQueries = flag.Int("sample", defaultSampleQueries, "Number of accounts to query recommendations for")
		workers       = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		batchSize     = flag.Int("batch", defaultBatchSize, "Entities per PUT request")
		timeout       = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile       = flag.String("log", "", "Log file for run output (default: seed_log_TIMESTAMP.log)")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
		help          = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seed.ShowHelp()
		return
	}

	// Setup logging
	if err := seed.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create run configuration
	config := &seed.Config{
		BaseURL:       *baseURL,
		NumAccounts:   *numAccounts,
		NumActivities: *numActivities,
		NumEvents:     *numEvents,
		SampleQueries: *sampleQueries,
		Workers:       *workers,
		BatchSize:     *batchSize,
		Timeout:       *timeout,
		LogFile:       *logFile,
		Verbose:       *verbose,
	}

	// Run the seeding
	if err := seed.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seed run failed: " + err.Error() + "\n")
		return
	}
}
