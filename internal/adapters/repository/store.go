// Package repository defines the entity directory interface and errors.
// The directory holds the platform snapshots (accounts, activities,
// events) that the recommendation engine reads.
package repository

import (
	"context"

	"github.com/okian/mingle/internal/domain/model"
)

// Directory provides read/write access to the entity snapshots.
// Reads return copies ordered by id; callers may hold them across
// later writes.
type Directory interface {
	// UpsertAccounts inserts or replaces accounts by id.
	// Returns the number of entities written.
	UpsertAccounts(ctx context.Context, accounts []model.Account) (int, error)
	// UpsertActivities inserts or replaces activities by id.
	UpsertActivities(ctx context.Context, activities []model.Activity) (int, error)
	// UpsertEvents inserts or replaces events by id.
	UpsertEvents(ctx context.Context, events []model.Event) (int, error)

	// Account returns one account by id, or ErrNotFound.
	Account(ctx context.Context, id string) (model.Account, error)

	// Accounts, Activities and Events return full snapshots ordered by id.
	Accounts(ctx context.Context) []model.Account
	Activities(ctx context.Context) []model.Activity
	Events(ctx context.Context) []model.Event

	// Counts returns the directory sizes for monitoring.
	Counts(ctx context.Context) (accounts, activities, events int)
}
