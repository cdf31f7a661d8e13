// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/mingle/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	DirectoryDependencies
	RecommendationDependencies
}

// DirectoryDependencies defines the write side: batch upserts into the
// entity directory.
type DirectoryDependencies interface {
	UpsertAccounts(ctx context.Context, accounts []model.Account) (int, error)
	UpsertActivities(ctx context.Context, activities []model.Activity) (int, error)
	UpsertEvents(ctx context.Context, events []model.Event) (int, error)
}

// RecommendationDependencies defines the read side: personalized
// suggestion queries.
type RecommendationDependencies interface {
	RecommendActivities(ctx context.Context, accountID string) ([]model.Activity, error)
	RecommendEvents(ctx context.Context, accountID string, location model.Location) ([]model.Event, error)
	RecommendFriends(ctx context.Context, accountID string, location model.Location) ([]model.Account, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	directoryHandler       *DirectoryHandler
	recommendationsHandler *RecommendationsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:          NewHealthHandler(),
		statsHandler:           NewStatsHandler(statsProvider),
		directoryHandler:       NewDirectoryHandler(deps),
		recommendationsHandler: NewRecommendationsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/directory/accounts", MetricsMiddleware(s.directoryHandler.HandlePutAccounts, "directory_accounts"))
	mux.HandleFunc("/directory/activities", MetricsMiddleware(s.directoryHandler.HandlePutActivities, "directory_activities"))
	mux.HandleFunc("/directory/events", MetricsMiddleware(s.directoryHandler.HandlePutEvents, "directory_events"))
	mux.HandleFunc("/recommendations/activities", MetricsMiddleware(s.recommendationsHandler.HandleActivities, "recommend_activities"))
	mux.HandleFunc("/recommendations/events", MetricsMiddleware(s.recommendationsHandler.HandleEvents, "recommend_events"))
	mux.HandleFunc("/recommendations/friends", MetricsMiddleware(s.recommendationsHandler.HandleFriends, "recommend_friends"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
