// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/okian/mingle/internal/domain/recommend"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RandomSeed fixes the engine's random source for reproducible
	// output; 0 keeps the time-seeded default.
	RandomSeed int64 `koanf:"random_seed"`

	// EventWeights overrides the event scoring weight table. The table
	// is replaced as a whole; never mix values from different revisions.
	EventWeights recommend.EventWeights `koanf:"event_weights"`

	// ActivityBlend overrides the keyword/type blend used for activity
	// similarity.
	ActivityBlend recommend.ActivityBlend `koanf:"activity_blend"`

	// FriendQuotas overrides the friend recommendation bucket quotas.
	FriendQuotas recommend.FriendQuotas `koanf:"friend_quotas"`
}

// New creates a Config populated with the canonical defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":9080",
		RandomSeed:    0,
		EventWeights:  recommend.DefaultEventWeights(),
		ActivityBlend: recommend.DefaultActivityBlend(),
		FriendQuotas:  recommend.DefaultFriendQuotas(),
	}
}
