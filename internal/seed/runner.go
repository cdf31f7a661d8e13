package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/mingle/internal/domain/model"
	"github.com/okian/mingle/pkg/logger"
)

// Query location used for recommendation sampling; matches the city
// center events are generated around.
const (
	queryLat = cityCenterLat
	queryLon = cityCenterLon
)

// Run executes the complete seeding run: generate entities, load them
// into the service, then sample the recommendation endpoints.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting mingle seed run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("accounts", config.NumAccounts),
		logger.Int("activities", config.NumActivities),
		logger.Int("events", config.NumEvents),
		logger.Int("workers", config.Workers),
		logger.Int("sampleQueries", config.SampleQueries),
		logger.Bool("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate entities
	activities := generateActivities(ctx, config, stats)
	accounts := generateAccounts(ctx, config, activities, stats)
	events := generateEvents(ctx, config, accounts, activities, stats)

	// Step 3: Load the directory
	batches := buildBatches(config, accounts, activities, events)
	if err := submitBatches(ctx, config, batches, stats); err != nil {
		return fmt.Errorf("directory load failed: %w", err)
	}

	// Step 4: Sample the recommendation endpoints
	if err := sampleRecommendations(ctx, config, accounts, stats); err != nil {
		return fmt.Errorf("recommendation sampling failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "seed run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	healthURL := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, healthURL)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Any 200 counts as healthy (the endpoint serves Prometheus metrics)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// buildBatches chunks the generated entities into PUT payloads.
// Activities load first so account interests resolve on arrival.
func buildBatches(config *Config, accounts []model.Account, activities []model.Activity, events []model.Event) []batch {
	size := config.BatchSize
	if size < 1 {
		size = 100
	}

	var batches []batch
	for start := 0; start < len(activities); start += size {
		end := min(start+size, len(activities))
		batches = append(batches, batch{
			url:  config.BaseURL + "/directory/activities",
			body: activities[start:end],
			size: end - start,
		})
	}
	for start := 0; start < len(accounts); start += size {
		end := min(start+size, len(accounts))
		batches = append(batches, batch{
			url:  config.BaseURL + "/directory/accounts",
			body: accounts[start:end],
			size: end - start,
		})
	}
	for start := 0; start < len(events); start += size {
		end := min(start+size, len(events))
		batches = append(batches, batch{
			url:  config.BaseURL + "/directory/events",
			body: events[start:end],
			size: end - start,
		})
	}
	return batches
}

// sampleRecommendations queries all three recommendation endpoints for a
// sample of the generated accounts and tallies the result sizes.
func sampleRecommendations(ctx context.Context, config *Config, accounts []model.Account, stats *Stats) error {
	sample := config.SampleQueries
	if sample > len(accounts) {
		sample = len(accounts)
	}
	if sample == 0 {
		return nil
	}

	logger.Get().Info(ctx, "sampling recommendations", logger.Int("accounts", sample))

	client := newHTTPClient(config.Timeout)

	var (
		issued  int64
		failed  int64
		results int64
	)

	accountChan := make(chan string, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for accountID := range accountChan {
				select {
				case <-ctx.Done():
					return
				default:
					for _, target := range queryTargets(config.BaseURL, accountID) {
						atomic.AddInt64(&issued, 1)
						n, err := countResults(ctx, client, target)
						if err != nil {
							atomic.AddInt64(&failed, 1)
							continue
						}
						atomic.AddInt64(&results, int64(n))
					}
				}
			}
		}()
	}

	go func() {
		defer close(accountChan)
		for i := 0; i < sample; i++ {
			select {
			case <-ctx.Done():
				return
			case accountChan <- accounts[i].ID:
			}
		}
	}()

	wg.Wait()

	stats.QueriesIssued = int(atomic.LoadInt64(&issued))
	stats.QueriesFailed = int(atomic.LoadInt64(&failed))
	stats.ResultsReturned = int(atomic.LoadInt64(&results))
	return nil
}

// queryTargets builds the three recommendation URLs for one account.
func queryTargets(baseURL, accountID string) []string {
	id := url.QueryEscape(accountID)
	coords := fmt.Sprintf("&lat=%.4f&lon=%.4f", queryLat, queryLon)
	return []string{
		baseURL + "/recommendations/activities?account_id=" + id,
		baseURL + "/recommendations/events?account_id=" + id + coords,
		baseURL + "/recommendations/friends?account_id=" + id + coords,
	}
}

// countResults issues one GET and counts the entries in whichever list
// the payload carries.
func countResults(ctx context.Context, client *HTTPClient, target string) (int, error) {
	resp, err := client.Get(ctx, target)
	if err != nil {
		return 0, err
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Activities []json.RawMessage `json:"activities"`
		Events     []json.RawMessage `json:"events"`
		Accounts   []json.RawMessage `json:"accounts"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, err
	}
	return len(payload.Activities) + len(payload.Events) + len(payload.Accounts), nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var resultsPerQuery float64
	succeeded := stats.QueriesIssued - stats.QueriesFailed
	if succeeded > 0 {
		resultsPerQuery = float64(stats.ResultsReturned) / float64(succeeded)
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("accountsGenerated", stats.AccountsGenerated),
		logger.Int("activitiesGenerated", stats.ActivitiesGenerated),
		logger.Int("eventsGenerated", stats.EventsGenerated),
		logger.Int("entitiesWritten", stats.EntitiesWritten),
		logger.Int("batchesFailed", stats.BatchesFailed),
		logger.Int("queriesIssued", stats.QueriesIssued),
		logger.Int("queriesFailed", stats.QueriesFailed),
		logger.Int("resultsReturned", stats.ResultsReturned),
		logger.Float64("resultsPerQuery", resultsPerQuery),
		logger.String("duration", stats.Duration.String()))
}
