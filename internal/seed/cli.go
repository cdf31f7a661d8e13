package seed

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/mingle/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "seed_log_" + timestamp + ".log"
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

// ShowHelp prints usage information for the seed tool.
func ShowHelp() {
	os.Stdout.WriteString(`Mingle Seed Tool
================

A concurrent tool for loading the Mingle recommendation service with
generated accounts, activities and events, then sampling the
recommendation endpoints.

Usage:
  go run cmd/seed-data/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -accounts int
        Number of accounts to generate (default 1000)
  -activities int
        Number of activities to generate (default 64)
  -events int
        Number of events to generate (default 2000)
  -sample int
        Number of accounts to query recommendations for (default 100)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -batch int
        Entities per PUT request (default 100)
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for run output (default: seed_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Seed with default settings
  go run cmd/seed-data/main.go

  # Seed a larger directory
  go run cmd/seed-data/main.go -accounts 10000 -events 20000 -workers 16

  # Seed a different instance
  go run cmd/seed-data/main.go -url http://localhost:8080 -verbose
`)
}
