package recommend

import (
	"math"
	"sort"

	"github.com/okian/mingle/internal/domain/model"
)

// Friends recommends up to 15 accounts for the caller to befriend,
// blending four candidate buckets under fixed quotas: friends-of-friends,
// activity similarity, shared event attendance, and a local random sample.
// The quotas guarantee diversity of recommendation reason rather than
// letting one signal dominate.
func (e *Engine) Friends(
	account model.Account,
	location model.Location,
	allAccounts []model.Account,
	allEvents []model.Event,
) []model.Account {
	friendIDs := account.FriendSet()

	visible := make([]model.Account, 0, len(allAccounts))
	for _, candidate := range allAccounts {
		if candidate.ID == account.ID {
			continue
		}
		if _, already := friendIDs[candidate.ID]; already {
			continue
		}
		if !candidate.Visible() {
			continue
		}
		visible = append(visible, candidate)
	}
	if len(visible) == 0 {
		return nil
	}

	q := e.quotas
	picks := make([]model.Account, 0, q.ListSize)
	picks = append(picks, e.friendsOfFriends(account, visible, allAccounts, quota(q.FriendsOfFriends, q.ListSize))...)
	picks = append(picks, e.byActivitySimilarity(account, visible, quota(q.ActivitySimilarity, q.ListSize))...)
	picks = append(picks, e.bySharedEvents(account, visible, allEvents, quota(q.EventSimilarity, q.ListSize))...)
	picks = append(picks, e.localSample(account, location, visible, allEvents, quota(q.LocalRandom, q.ListSize))...)

	return truncateAccounts(dedupeAccounts(picks), q.ListSize)
}

func quota(share float64, listSize int) int {
	return int(math.Floor(share * float64(listSize)))
}

// friendsOfFriends returns a shuffled sample of visible accounts reachable
// through one hop of the caller's friend relation. The hop is directional:
// it only requires the caller's friend to have added the candidate.
func (e *Engine) friendsOfFriends(account model.Account, visible, all []model.Account, n int) []model.Account {
	byID := make(map[string]model.Account, len(all))
	for _, a := range all {
		byID[a.ID] = a
	}

	bucket := make([]model.Account, 0, len(visible))
	for _, candidate := range visible {
		for _, friendID := range account.Friends {
			friend, ok := byID[friendID]
			if ok && friend.HasFriend(candidate.ID) {
				bucket = append(bucket, candidate)
				break
			}
		}
	}
	e.shuffle(len(bucket), func(i, j int) {
		bucket[i], bucket[j] = bucket[j], bucket[i]
	})
	return truncateAccounts(bucket, n)
}

// byActivitySimilarity returns the top candidates by the blended
// keyword/type score over the two accounts' activity collections.
func (e *Engine) byActivitySimilarity(account model.Account, visible []model.Account, n int) []model.Account {
	type scored struct {
		account model.Account
		score   float64
	}
	bucket := make([]scored, 0, len(visible))
	for _, candidate := range visible {
		bucket = append(bucket, scored{
			account: candidate,
			score:   e.activitySimilarity(account.Activities, candidate.Activities),
		})
	}
	sort.SliceStable(bucket, func(i, j int) bool {
		return bucket[i].score > bucket[j].score
	})
	out := make([]model.Account, 0, n)
	for i := 0; i < len(bucket) && i < n; i++ {
		out = append(out, bucket[i].account)
	}
	return out
}

// bySharedEvents returns the top candidates by the number of events both
// the caller and the candidate attend. Candidates with no shared events
// never qualify for this bucket.
func (e *Engine) bySharedEvents(account model.Account, visible []model.Account, events []model.Event, n int) []model.Account {
	type scored struct {
		account model.Account
		count   int
	}
	bucket := make([]scored, 0, len(visible))
	for _, candidate := range visible {
		count := 0
		for _, ev := range events {
			if ev.HasAttendee(account.ID) && ev.HasAttendee(candidate.ID) {
				count++
			}
		}
		if count > 0 {
			bucket = append(bucket, scored{account: candidate, count: count})
		}
	}
	sort.SliceStable(bucket, func(i, j int) bool {
		return bucket[i].count > bucket[j].count
	})
	out := make([]model.Account, 0, n)
	for i := 0; i < len(bucket) && i < n; i++ {
		out = append(out, bucket[i].account)
	}
	return out
}

// localSample returns a shuffled sample of candidates whose approximate
// location is within the local radius of the caller. A candidate's
// location is taken from any event they attend; candidates attending no
// located event fall back to the caller's own location and so always
// qualify.
func (e *Engine) localSample(account model.Account, location model.Location, visible []model.Account, events []model.Event, n int) []model.Account {
	shuffled := make([]model.Account, len(visible))
	copy(shuffled, visible)
	e.shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	bucket := make([]model.Account, 0, len(shuffled))
	for _, candidate := range shuffled {
		if location.DistanceTo(approximateLocation(candidate.ID, events, location)) <= localRadiusKm {
			bucket = append(bucket, candidate)
		}
	}
	return truncateAccounts(bucket, n)
}

// approximateLocation derives a candidate's location from the first
// located event they attend, defaulting to fallback.
func approximateLocation(accountID string, events []model.Event, fallback model.Location) model.Location {
	for _, ev := range events {
		if ev.Location != nil && ev.HasAttendee(accountID) {
			return *ev.Location
		}
	}
	return fallback
}

func dedupeAccounts(accounts []model.Account) []model.Account {
	seen := make(map[string]struct{}, len(accounts))
	out := accounts[:0]
	for _, a := range accounts {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	return out
}

func truncateAccounts(accounts []model.Account, n int) []model.Account {
	if len(accounts) > n {
		return accounts[:n]
	}
	return accounts
}
