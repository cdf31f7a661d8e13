// Package recommend implements the recommendation scoring engine:
// three pure computations (activities, events, friends) over read-only
// entity snapshots supplied by the caller. The only non-determinism is
// the explicit random diversity picks, which draw from an injectable
// source so tests can fix the seed.
package recommend

import (
	"math/rand"
	"sync"
	"time"
)

// Fixed selection thresholds shared by the recommenders.
const (
	// noveltyCeiling bounds both component scores for an activity to
	// qualify for the "different" slot.
	noveltyCeiling = 0.2
	// freshScoreCeiling bounds the event score for the "different" slot.
	freshScoreCeiling = 2.0
	// proximityCutoffKm is the farthest distance at which an event still
	// earns the proximity term.
	proximityCutoffKm = 25.0
	// decayScaleKm controls the exponential distance decay exp(-km/scale).
	decayScaleKm = 10.0
	// nearbyRadiusKm bounds the random "nearby" event slot.
	nearbyRadiusKm = 10.0
	// futureNearRadiusKm bounds the future-location bonus.
	futureNearRadiusKm = 10.0
	// pastNearRadiusKm bounds the past-location similarity penalty.
	pastNearRadiusKm = 5.0
	// localRadiusKm bounds the local-random friend bucket.
	localRadiusKm = 25.0
)

// EventWeights is the additive weight table for event scoring.
type EventWeights struct {
	FriendHost             float64 `koanf:"friend_host"`
	FutureHost             float64 `koanf:"future_host"`
	FutureAttendee         float64 `koanf:"future_attendee"`
	FriendAttendee         float64 `koanf:"friend_attendee"`
	SharedActivity         float64 `koanf:"shared_activity"`
	ActivityKeyword        float64 `koanf:"activity_keyword"`
	CurrentActivityIDBonus float64 `koanf:"current_activity_id_bonus"`
	TypeScore              float64 `koanf:"type_score"`
	LocationProximity      float64 `koanf:"location_proximity"`
	FutureLocationBonus    float64 `koanf:"future_location_bonus"`
	FriendDensityBonus     float64 `koanf:"friend_density_bonus"`
	PastSimilarityPenalty  float64 `koanf:"past_similarity_penalty"`
}

// DefaultEventWeights returns the canonical event weight table.
func DefaultEventWeights() EventWeights {
	return EventWeights{
		FriendHost:             4.0,
		FutureHost:             3.5,
		FutureAttendee:         3.0,
		FriendAttendee:         2.0,
		SharedActivity:         3.0,
		ActivityKeyword:        2.5,
		CurrentActivityIDBonus: 2.5,
		TypeScore:              1.5,
		LocationProximity:      1.2,
		FutureLocationBonus:    1.0,
		FriendDensityBonus:     0.5,
		PastSimilarityPenalty:  -3.0,
	}
}

// ActivityBlend weighs the two components of activity similarity.
type ActivityBlend struct {
	Keyword float64 `koanf:"keyword"`
	Type    float64 `koanf:"type"`
}

// DefaultActivityBlend returns the canonical 0.6/0.4 blend.
func DefaultActivityBlend() ActivityBlend {
	return ActivityBlend{Keyword: 0.6, Type: 0.4}
}

// FriendQuotas allocates shares of the friend result list to the four
// candidate-generation buckets. Each bucket gets floor(share × ListSize)
// slots.
type FriendQuotas struct {
	ListSize           int     `koanf:"list_size"`
	FriendsOfFriends   float64 `koanf:"friends_of_friends"`
	ActivitySimilarity float64 `koanf:"activity_similarity"`
	EventSimilarity    float64 `koanf:"event_similarity"`
	LocalRandom        float64 `koanf:"local_random"`
}

// DefaultFriendQuotas returns the canonical 30/20/15/35 split over a
// 15-item list.
func DefaultFriendQuotas() FriendQuotas {
	return FriendQuotas{
		ListSize:           15,
		FriendsOfFriends:   0.30,
		ActivitySimilarity: 0.20,
		EventSimilarity:    0.15,
		LocalRandom:        0.35,
	}
}

// Engine computes recommendations. The zero value is not usable; build
// one with New. An Engine is safe for concurrent use: all working state
// is call-local and the random source is guarded.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand

	eventWeights EventWeights
	blend        ActivityBlend
	quotas       FriendQuotas
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithRand sets the random source used for diversity picks and shuffles.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithSeed replaces the random source with a deterministic seeded one.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // diversity sampling, not security
	}
}

// WithEventWeights replaces the whole event weight table. Partial tables
// are not merged with the defaults; callers own the full set.
func WithEventWeights(w EventWeights) Option {
	return func(e *Engine) {
		e.eventWeights = w
	}
}

// WithActivityBlend replaces the activity similarity blend.
func WithActivityBlend(b ActivityBlend) Option {
	return func(e *Engine) {
		if b.Keyword > 0 || b.Type > 0 {
			e.blend = b
		}
	}
}

// WithFriendQuotas replaces the friend bucket quotas.
func WithFriendQuotas(q FriendQuotas) Option {
	return func(e *Engine) {
		if q.ListSize > 0 {
			e.quotas = q
		}
	}
}

// New constructs an Engine with the canonical weight tables and a
// time-seeded random source.
func New(opts ...Option) *Engine {
	e := &Engine{
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // diversity sampling, not security
		eventWeights: DefaultEventWeights(),
		blend:        DefaultActivityBlend(),
		quotas:       DefaultFriendQuotas(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// intn draws from the engine's random source under the lock.
func (e *Engine) intn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(n)
}

// shuffle permutes indices [0, n) under the lock.
func (e *Engine) shuffle(n int, swap func(i, j int)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rng.Shuffle(n, swap)
}
