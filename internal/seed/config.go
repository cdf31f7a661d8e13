package seed

import "time"

// Config holds configuration for the directory seeding run.
type Config struct {
	BaseURL       string        // Base URL of the service
	NumAccounts   int           // Number of accounts to generate
	NumActivities int           // Number of activities to generate
	NumEvents     int           // Number of events to generate
	SampleQueries int           // Number of accounts to query recommendations for
	Workers       int           // Number of concurrent workers
	BatchSize     int           // Entities per PUT request
	Timeout       time.Duration // HTTP request timeout
	LogFile       string        // Log file for run output
	Verbose       bool          // Enable verbose logging
}

// ingestResponse mirrors the response from directory writes.
type ingestResponse struct {
	Written int `json:"written"`
}

// Stats holds seeding run statistics.
type Stats struct {
	AccountsGenerated   int
	ActivitiesGenerated int
	EventsGenerated     int
	EntitiesWritten     int
	BatchesFailed       int
	QueriesIssued       int
	QueriesFailed       int
	ResultsReturned     int
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
}
