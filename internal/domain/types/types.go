// Package types contains common types shared between the service and the HTTP API.
package types

import "github.com/okian/mingle/internal/domain/model"

// ActivityRecommendations is the response payload for activity suggestions.
type ActivityRecommendations struct {
	AccountID  string           `json:"account_id"`
	Activities []model.Activity `json:"activities"`
}

// EventRecommendations is the response payload for event suggestions.
type EventRecommendations struct {
	AccountID string        `json:"account_id"`
	Events    []model.Event `json:"events"`
}

// FriendRecommendations is the response payload for friend suggestions.
type FriendRecommendations struct {
	AccountID string          `json:"account_id"`
	Accounts  []model.Account `json:"accounts"`
}

// IngestResult reports how many entities a directory write accepted.
type IngestResult struct {
	Written int `json:"written"`
}
