// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	repository "github.com/okian/mingle/internal/adapters/repository"
	"github.com/okian/mingle/internal/domain/model"
	"github.com/okian/mingle/internal/domain/recommend"
	"github.com/okian/mingle/pkg/logger"
	"github.com/okian/mingle/pkg/metrics"
)

// Service implements the API dependencies for the recommendation system.
type Service struct {
	mu sync.RWMutex

	// Core components
	directory repository.Directory
	engine    *recommend.Engine

	// Configuration carried into the engine on Start
	engineOpts []recommend.Option

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDirectory sets a custom entity directory.
func WithDirectory(dir repository.Directory) Option {
	return func(s *Service) {
		if dir != nil {
			s.directory = dir
		}
	}
}

// WithSeed seeds the engine's random source for reproducible picks.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.engineOpts = append(s.engineOpts, recommend.WithSeed(seed))
	}
}

// WithEventWeights sets the event scoring weight table.
func WithEventWeights(w recommend.EventWeights) Option {
	return func(s *Service) {
		s.engineOpts = append(s.engineOpts, recommend.WithEventWeights(w))
	}
}

// WithActivityBlend sets the keyword/type blend for activity scoring.
func WithActivityBlend(b recommend.ActivityBlend) Option {
	return func(s *Service) {
		s.engineOpts = append(s.engineOpts, recommend.WithActivityBlend(b))
	}
}

// WithFriendQuotas sets the friend suggestion bucket quotas.
func WithFriendQuotas(q recommend.FriendQuotas) Option {
	return func(s *Service) {
		s.engineOpts = append(s.engineOpts, recommend.WithFriendQuotas(q))
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		logger: nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting recommendation service...")

	if s.directory == nil {
		s.directory = repository.NewMemDirectory()
		s.logger.Info(ctx, "using in-memory directory")
	}
	s.engine = recommend.New(s.engineOpts...)

	s.started = true
	s.logger.Info(ctx, "recommendation service started")

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping recommendation service...")
	s.started = false
	s.logger.Info(context.Background(), "recommendation service stopped")
}

// UpsertAccounts writes a batch of accounts into the directory.
func (s *Service) UpsertAccounts(ctx context.Context, accounts []model.Account) (int, error) {
	start := time.Now()
	n, err := s.directory.UpsertAccounts(ctx, accounts)
	if err != nil {
		return 0, fmt.Errorf("upsert accounts: %w", err)
	}

	metrics.RecordDirectoryUpsert("account", n, float64(time.Since(start).Milliseconds()))
	s.refreshDirectoryGauges(ctx)
	s.logger.Debug(ctx, "accounts upserted", logger.Int("count", n))
	return n, nil
}

// UpsertActivities writes a batch of activities into the directory.
func (s *Service) UpsertActivities(ctx context.Context, activities []model.Activity) (int, error) {
	start := time.Now()
	n, err := s.directory.UpsertActivities(ctx, activities)
	if err != nil {
		return 0, fmt.Errorf("upsert activities: %w", err)
	}

	metrics.RecordDirectoryUpsert("activity", n, float64(time.Since(start).Milliseconds()))
	s.refreshDirectoryGauges(ctx)
	s.logger.Debug(ctx, "activities upserted", logger.Int("count", n))
	return n, nil
}

// UpsertEvents writes a batch of events into the directory.
func (s *Service) UpsertEvents(ctx context.Context, events []model.Event) (int, error) {
	start := time.Now()
	n, err := s.directory.UpsertEvents(ctx, events)
	if err != nil {
		return 0, fmt.Errorf("upsert events: %w", err)
	}

	metrics.RecordDirectoryUpsert("event", n, float64(time.Since(start).Milliseconds()))
	s.refreshDirectoryGauges(ctx)
	s.logger.Debug(ctx, "events upserted", logger.Int("count", n))
	return n, nil
}

// RecommendActivities suggests up to three activities for the account.
func (s *Service) RecommendActivities(ctx context.Context, accountID string) ([]model.Activity, error) {
	account, err := s.directory.Account(ctx, accountID)
	if err != nil {
		metrics.RecordRecommendationError(metrics.KindActivity)
		return nil, fmt.Errorf("lookup account %q: %w", accountID, err)
	}

	all := s.directory.Activities(ctx)

	start := time.Now()
	recs := s.engine.Activities(all, account.Activities)
	metrics.RecordRecommendation(metrics.KindActivity, float64(time.Since(start).Milliseconds()), len(recs))

	s.logger.Debug(ctx, "activities recommended",
		logger.String("accountID", accountID),
		logger.Int("results", len(recs)),
	)
	return recs, nil
}

// RecommendEvents suggests up to four events for the account near the
// given location.
func (s *Service) RecommendEvents(ctx context.Context, accountID string, location model.Location) ([]model.Event, error) {
	account, err := s.directory.Account(ctx, accountID)
	if err != nil {
		metrics.RecordRecommendationError(metrics.KindEvent)
		return nil, fmt.Errorf("lookup account %q: %w", accountID, err)
	}

	all := s.directory.Events(ctx)
	past, future := splitByTime(all, account, time.Now())

	start := time.Now()
	recs := s.engine.Events(location, account.Friends, all, past, future, account.Activities)
	metrics.RecordRecommendation(metrics.KindEvent, float64(time.Since(start).Milliseconds()), len(recs))

	s.logger.Debug(ctx, "events recommended",
		logger.String("accountID", accountID),
		logger.Int("results", len(recs)),
	)
	return recs, nil
}

// RecommendFriends suggests up to fifteen accounts for the account to
// befriend.
func (s *Service) RecommendFriends(ctx context.Context, accountID string, location model.Location) ([]model.Account, error) {
	account, err := s.directory.Account(ctx, accountID)
	if err != nil {
		metrics.RecordRecommendationError(metrics.KindFriend)
		return nil, fmt.Errorf("lookup account %q: %w", accountID, err)
	}

	accounts := s.directory.Accounts(ctx)
	events := s.directory.Events(ctx)

	start := time.Now()
	recs := s.engine.Friends(account, location, accounts, events)
	metrics.RecordRecommendation(metrics.KindFriend, float64(time.Since(start).Milliseconds()), len(recs))

	s.logger.Debug(ctx, "friends recommended",
		logger.String("accountID", accountID),
		logger.Int("results", len(recs)),
	)
	return recs, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started": s.started,
	}

	if s.started {
		accounts, activities, events := s.directory.Counts(ctx)
		stats["accounts"] = accounts
		stats["activities"] = activities
		stats["events"] = events

		metrics.UpdateDirectorySizes(accounts, activities, events)
	}

	return stats
}

// refreshDirectoryGauges pushes the current directory sizes to the
// monitoring gauges.
func (s *Service) refreshDirectoryGauges(ctx context.Context) {
	accounts, activities, events := s.directory.Counts(ctx)
	metrics.UpdateDirectorySizes(accounts, activities, events)
}

// splitByTime partitions the account's events into past and future
// relative to now. An account is involved in an event when it hosts it
// or appears on the attendee list.
func splitByTime(events []model.Event, account model.Account, now time.Time) (past, future []model.Event) {
	nowMillis := float64(now.UnixMilli())
	for _, ev := range events {
		if ev.HostID != account.ID && !ev.HasAttendee(account.ID) {
			continue
		}
		if ev.Date < nowMillis {
			past = append(past, ev)
		} else {
			future = append(future, ev)
		}
	}
	return past, future
}
