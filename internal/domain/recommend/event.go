package recommend

import (
	"math"
	"sort"

	"github.com/okian/mingle/internal/domain/keyword"
	"github.com/okian/mingle/internal/domain/model"
)

// eventContext holds the per-call sets precomputed from the caller's
// social graph, activity collection and event history.
type eventContext struct {
	weights          EventWeights
	location         model.Location
	friendIDs        map[string]struct{}
	activityKeywords keyword.Set
	activityIDs      map[string]struct{}
	futureHostIDs    map[string]struct{}
	futureAttendees  map[string]struct{}
	futureLocations  []model.Location
	pastHostIDs      map[string]struct{}
	pastAttendees    map[string]struct{}
	pastLocations    []model.Location
}

func newEventContext(
	weights EventWeights,
	location model.Location,
	friendIDs []string,
	past, future []model.Event,
	activities []model.Activity,
) *eventContext {
	cx := &eventContext{
		weights:         weights,
		location:        location,
		friendIDs:       make(map[string]struct{}, len(friendIDs)),
		activityIDs:     make(map[string]struct{}, len(activities)),
		futureHostIDs:   make(map[string]struct{}, len(future)),
		futureAttendees: make(map[string]struct{}),
		pastHostIDs:     make(map[string]struct{}, len(past)),
		pastAttendees:   make(map[string]struct{}),
	}
	for _, id := range friendIDs {
		cx.friendIDs[id] = struct{}{}
	}
	texts := make([]string, 0, len(activities))
	for _, act := range activities {
		cx.activityIDs[act.ID] = struct{}{}
		texts = append(texts, act.Text())
	}
	cx.activityKeywords = keyword.TokenizeAll(texts...)
	for _, ev := range future {
		cx.futureHostIDs[ev.HostID] = struct{}{}
		for _, a := range ev.Attendees {
			cx.futureAttendees[a] = struct{}{}
		}
		if ev.Location != nil {
			cx.futureLocations = append(cx.futureLocations, *ev.Location)
		}
	}
	for _, ev := range past {
		cx.pastHostIDs[ev.HostID] = struct{}{}
		for _, a := range ev.Attendees {
			cx.pastAttendees[a] = struct{}{}
		}
		if ev.Location != nil {
			cx.pastLocations = append(cx.pastLocations, *ev.Location)
		}
	}
	return cx
}

// score computes the additive multi-factor score for one candidate event.
func (cx *eventContext) score(ev model.Event) float64 {
	w := cx.weights
	score := 0.0

	if _, ok := cx.friendIDs[ev.HostID]; ok {
		score += w.FriendHost
	}
	if _, ok := cx.futureHostIDs[ev.HostID]; ok {
		score += w.FutureHost
	}
	if anyMember(ev.Attendees, cx.futureAttendees) {
		score += w.FutureAttendee
	}
	if anyMember(ev.Attendees, cx.friendIDs) {
		score += w.FriendAttendee
	}

	shared := 0
	for _, id := range ev.Activities {
		if _, ok := cx.activityIDs[id]; ok {
			shared++
		}
	}
	denom := len(ev.Activities)
	if denom < 1 {
		denom = 1
	}
	score += float64(shared) / float64(denom) * w.SharedActivity
	if shared > 0 {
		score += w.CurrentActivityIDBonus
	}

	score += keyword.Jaccard(cx.activityKeywords, keyword.Tokenize(ev.Text())) * w.ActivityKeyword

	switch ev.Type {
	case model.EventInPerson:
		score += 1.0 * w.TypeScore
	case model.EventHybrid:
		score += 0.5 * w.TypeScore
	case model.EventOnline:
		// No in-person component.
	}

	base := ev.BaseLocation(cx.location)
	if km := cx.location.DistanceTo(base); km <= proximityCutoffKm {
		score += math.Exp(-km/decayScaleKm) * w.LocationProximity
	}

	for _, loc := range cx.futureLocations {
		if loc.DistanceTo(base) < futureNearRadiusKm {
			score += w.FutureLocationBonus
			break
		}
	}

	friendCount := 0
	for _, a := range ev.Attendees {
		if _, ok := cx.friendIDs[a]; ok {
			friendCount++
		}
	}
	score += float64(friendCount) * w.FriendDensityBonus

	if cx.resemblesPast(ev, base) {
		score += w.PastSimilarityPenalty
	}
	return score
}

// resemblesPast reports whether the event repeats the user's history:
// a past host, a past co-attendee, or a venue close to one already seen.
func (cx *eventContext) resemblesPast(ev model.Event, base model.Location) bool {
	if _, ok := cx.pastHostIDs[ev.HostID]; ok {
		return true
	}
	if anyMember(ev.Attendees, cx.pastAttendees) {
		return true
	}
	for _, loc := range cx.pastLocations {
		if loc.DistanceTo(base) < pastNearRadiusKm {
			return true
		}
	}
	return false
}

type scoredEvent struct {
	event model.Event
	score float64
}

// maxEventResults caps the recommendation carousel. Five slots are drawn
// but overlap usually collapses them; the cap holds when it does not.
const maxEventResults = 4

// Events recommends up to four events: the two best matches, the third
// ranked, a random low-scoring "fresh" pick and a random nearby one, with
// duplicates collapsed by id in first-seen order. Events the user already
// attends (past or future) never appear.
func (e *Engine) Events(
	location model.Location,
	friendIDs []string,
	all, past, future []model.Event,
	activities []model.Activity,
) []model.Event {
	held := make(map[string]struct{}, len(past)+len(future))
	for _, ev := range past {
		held[ev.ID] = struct{}{}
	}
	for _, ev := range future {
		held[ev.ID] = struct{}{}
	}

	cx := newEventContext(e.eventWeights, location, friendIDs, past, future, activities)

	filtered := make([]model.Event, 0, len(all))
	scored := make([]scoredEvent, 0, len(all))
	for _, ev := range all {
		if _, ok := held[ev.ID]; ok {
			continue
		}
		filtered = append(filtered, ev)
		scored = append(scored, scoredEvent{event: ev, score: cx.score(ev)})
	}
	if len(scored) == 0 {
		return nil
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	picks := make([]model.Event, 0, 5)
	for i := 0; i < len(scored) && i < 3; i++ {
		picks = append(picks, scored[i].event)
	}

	if different, ok := e.pickFreshEvent(scored); ok {
		picks = append(picks, different)
	}
	if nearby, ok := e.pickNearbyEvent(filtered, location); ok {
		picks = append(picks, nearby)
	}

	picks = dedupeEvents(picks)
	if len(picks) > maxEventResults {
		picks = picks[:maxEventResults]
	}
	return picks
}

// pickFreshEvent selects a uniformly random low-scoring candidate, falling
// back to the lowest-ranked one when every candidate scores high.
func (e *Engine) pickFreshEvent(scored []scoredEvent) (model.Event, bool) {
	if len(scored) == 0 {
		return model.Event{}, false
	}
	bucket := make([]scoredEvent, 0, len(scored))
	for _, s := range scored {
		if s.score < freshScoreCeiling {
			bucket = append(bucket, s)
		}
	}
	if len(bucket) == 0 {
		return scored[len(scored)-1].event, true
	}
	return bucket[e.intn(len(bucket))].event, true
}

// pickNearbyEvent selects a uniformly random candidate within the nearby
// radius of the caller, regardless of score.
func (e *Engine) pickNearbyEvent(candidates []model.Event, location model.Location) (model.Event, bool) {
	bucket := make([]model.Event, 0, len(candidates))
	for _, ev := range candidates {
		if location.DistanceTo(ev.BaseLocation(location)) < nearbyRadiusKm {
			bucket = append(bucket, ev)
		}
	}
	if len(bucket) == 0 {
		return model.Event{}, false
	}
	return bucket[e.intn(len(bucket))], true
}

func dedupeEvents(events []model.Event) []model.Event {
	seen := make(map[string]struct{}, len(events))
	out := events[:0]
	for _, ev := range events {
		if _, ok := seen[ev.ID]; ok {
			continue
		}
		seen[ev.ID] = struct{}{}
		out = append(out, ev)
	}
	return out
}

func anyMember(ids []string, set map[string]struct{}) bool {
	for _, id := range ids {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}
