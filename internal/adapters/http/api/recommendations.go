// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	repository "github.com/okian/mingle/internal/adapters/repository"
	"github.com/okian/mingle/internal/domain/model"
	"github.com/okian/mingle/internal/domain/types"
)

// RecommendationsHandler handles personalized suggestion requests.
type RecommendationsHandler struct {
	deps     RecommendationDependencies
	validate *validator.Validate
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps RecommendationDependencies) *RecommendationsHandler {
	return &RecommendationsHandler{
		deps:     deps,
		validate: validator.New(),
	}
}

// HandleActivities handles GET /recommendations/activities?account_id=ID requests.
func (h *RecommendationsHandler) HandleActivities(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommend_activities"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	accountID, err := accountIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}
	activities, err := h.deps.RecommendActivities(r.Context(), accountID)
	if err != nil {
		writeRecommendError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.ActivityRecommendations{
		AccountID:  accountID,
		Activities: activities,
	})
}

// HandleEvents handles GET /recommendations/events?account_id=ID&lat=F&lon=F requests.
func (h *RecommendationsHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommend_events"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	accountID, err := accountIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}
	location, err := h.locationParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}
	events, err := h.deps.RecommendEvents(r.Context(), accountID, location)
	if err != nil {
		writeRecommendError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.EventRecommendations{
		AccountID: accountID,
		Events:    events,
	})
}

// HandleFriends handles GET /recommendations/friends?account_id=ID&lat=F&lon=F requests.
func (h *RecommendationsHandler) HandleFriends(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommend_friends"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	accountID, err := accountIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}
	location, err := h.locationParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}
	accounts, err := h.deps.RecommendFriends(r.Context(), accountID, location)
	if err != nil {
		writeRecommendError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.FriendRecommendations{
		AccountID: accountID,
		Accounts:  accounts,
	})
}

// accountIDParam extracts and checks the mandatory account_id query parameter.
func accountIDParam(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.URL.Query().Get("account_id"))
	if id == "" {
		return "", fmt.Errorf("%w: missing account_id", ErrBadRequest)
	}
	return id, nil
}

// locationParams extracts and checks the mandatory lat/lon query parameters.
func (h *RecommendationsHandler) locationParams(r *http.Request) (model.Location, error) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		return model.Location{}, fmt.Errorf("%w: invalid lat", ErrBadRequest)
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		return model.Location{}, fmt.Errorf("%w: invalid lon", ErrBadRequest)
	}
	location := model.Location{Latitude: lat, Longitude: lon}
	if err := h.validate.Struct(location); err != nil {
		return model.Location{}, fmt.Errorf("%w: coordinates out of range", ErrBadRequest)
	}
	return location, nil
}

// writeRecommendError translates recommendation failures to HTTP statuses.
func writeRecommendError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
}
