package repository

import "errors"

// Sentinel kinds for directory errors.
var (
	ErrNotFound  = errors.New("account not found")
	ErrMissingID = errors.New("entity id must not be empty")
)
