// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	repository "github.com/okian/mingle/internal/adapters/repository"
	"github.com/okian/mingle/internal/domain/model"
	"github.com/okian/mingle/internal/domain/types"
)

// DirectoryHandler handles batch writes into the entity directory.
type DirectoryHandler struct {
	deps     DirectoryDependencies
	validate *validator.Validate
}

// NewDirectoryHandler creates a new directory handler.
func NewDirectoryHandler(deps DirectoryDependencies) *DirectoryHandler {
	return &DirectoryHandler{
		deps:     deps,
		validate: validator.New(),
	}
}

// HandlePutAccounts handles PUT /directory/accounts requests.
func (h *DirectoryHandler) HandlePutAccounts(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_accounts"
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	var accounts []model.Account
	if err := json.NewDecoder(r.Body).Decode(&accounts); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}
	for i, account := range accounts {
		if err := h.validate.Struct(account); err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", fmt.Errorf("%s: account %d: %w: %w", op, i, ErrValidation, err))
			return
		}
	}
	n, err := h.deps.UpsertAccounts(r.Context(), accounts)
	if err != nil {
		writeUpsertError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.IngestResult{Written: n})
}

// HandlePutActivities handles PUT /directory/activities requests.
func (h *DirectoryHandler) HandlePutActivities(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_activities"
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	var activities []model.Activity
	if err := json.NewDecoder(r.Body).Decode(&activities); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}
	for i, activity := range activities {
		if err := h.validate.Struct(activity); err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", fmt.Errorf("%s: activity %d: %w: %w", op, i, ErrValidation, err))
			return
		}
	}
	n, err := h.deps.UpsertActivities(r.Context(), activities)
	if err != nil {
		writeUpsertError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.IngestResult{Written: n})
}

// HandlePutEvents handles PUT /directory/events requests.
func (h *DirectoryHandler) HandlePutEvents(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_events"
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	var events []model.Event
	if err := json.NewDecoder(r.Body).Decode(&events); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}
	for i, event := range events {
		if err := h.validate.Struct(event); err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", fmt.Errorf("%s: event %d: %w: %w", op, i, ErrValidation, err))
			return
		}
	}
	n, err := h.deps.UpsertEvents(r.Context(), events)
	if err != nil {
		writeUpsertError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.IngestResult{Written: n})
}

// writeUpsertError translates directory write failures to HTTP statuses.
func writeUpsertError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, repository.ErrMissingID) {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
}
