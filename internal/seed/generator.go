package seed

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/okian/mingle/internal/domain/model"
	"github.com/okian/mingle/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
)

// Generation ranges.
const (
	maxInterestsPerAccount = 3
	maxFriendsPerAccount   = 8
	maxAttendeesPerEvent   = 12
	pastEventShare         = 0.3
	privateShare           = 0.1
	unlistedShare          = 0.15
	eventSpreadDays        = 30
	cityCenterLat          = 52.37
	cityCenterLon          = 4.89
	citySpreadDegrees      = 0.4
)

// catalogEntry pairs an activity template with its categorical tags.
type catalogEntry struct {
	name        string
	description string
	types       []model.ActivityType
}

// catalog is the pool activity generation draws from. Descriptions carry
// deliberately overlapping vocabulary so keyword scoring has signal.
var catalog = []catalogEntry{
	{"Soccer", "Team football matches and training every weekend", []model.ActivityType{model.ActivitySport, model.ActivitySocial}},
	{"Futsal", "Indoor football games with small teams", []model.ActivityType{model.ActivitySport}},
	{"Basketball", "Pickup basketball games at the local court", []model.ActivityType{model.ActivitySport, model.ActivitySocial}},
	{"Trail running", "Long distance running on forest trails", []model.ActivityType{model.ActivitySport}},
	{"Chess", "Strategy board games and club tournaments", []model.ActivityType{model.ActivityHobby}},
	{"Board games", "Casual board games and strategy nights", []model.ActivityType{model.ActivityHobby, model.ActivitySocial}},
	{"Photography", "Street photography walks and editing workshops", []model.ActivityType{model.ActivityHobby}},
	{"Painting", "Watercolor and oil painting sessions", []model.ActivityType{model.ActivityHobby, model.ActivityRelaxation}},
	{"Pottery", "Shaping clay on the wheel and glazing", []model.ActivityType{model.ActivityRelaxation}},
	{"Yoga", "Morning yoga and breathing practice", []model.ActivityType{model.ActivityRelaxation}},
	{"Book club", "Monthly reading and book discussions", []model.ActivityType{model.ActivityStudy, model.ActivitySocial}},
	{"Language exchange", "Practicing languages over coffee", []model.ActivityType{model.ActivityStudy, model.ActivitySocial}},
	{"Coding meetup", "Programming talks and pair coding evenings", []model.ActivityType{model.ActivityWork, model.ActivityStudy}},
	{"Startup networking", "Meeting founders and exchanging work ideas", []model.ActivityType{model.ActivityWork, model.ActivitySocial}},
	{"City trips", "Weekend travel to nearby cities", []model.ActivityType{model.ActivityTravel}},
	{"Hiking", "Day hikes and mountain travel", []model.ActivityType{model.ActivityTravel, model.ActivitySport}},
}

// randomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func randomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// randomIndex returns a random index in [0, n).
func randomIndex(n int) int {
	if n <= 0 {
		return 0
	}
	idx, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(idx.Int64())
}

// generateActivities draws activities from the catalog, cycling with
// numbered variants once the catalog is exhausted.
func generateActivities(ctx context.Context, config *Config, stats *Stats) []model.Activity {
	logger.Get().Info(ctx, "generating activities", logger.Int("numActivities", config.NumActivities))

	activities := make([]model.Activity, config.NumActivities)
	for i := range activities {
		entry := catalog[i%len(catalog)]
		name := entry.name
		if i >= len(catalog) {
			name = fmt.Sprintf("%s %d", entry.name, i/len(catalog)+1)
		}
		activities[i] = model.Activity{
			ID:          uuid.New().String(),
			Name:        name,
			Description: entry.description,
			Types:       entry.types,
		}
	}

	stats.ActivitiesGenerated = len(activities)
	return activities
}

// generateAccounts creates accounts with random interests, friends and
// visibility.
func generateAccounts(ctx context.Context, config *Config, activities []model.Activity, stats *Stats) []model.Account {
	logger.Get().Info(ctx, "generating accounts", logger.Int("numAccounts", config.NumAccounts))

	ids := make([]string, config.NumAccounts)
	for i := range ids {
		ids[i] = uuid.New().String()
	}

	accounts := make([]model.Account, config.NumAccounts)
	for i := range accounts {
		interestTarget := 1 + randomIndex(maxInterestsPerAccount)
		interests := make([]model.Activity, 0, interestTarget)
		for attempts := 0; len(interests) < interestTarget && attempts < interestTarget*4 && len(activities) > 0; attempts++ {
			candidate := activities[randomIndex(len(activities))]
			if !containsActivity(interests, candidate.ID) {
				interests = append(interests, candidate)
			}
		}

		friendTarget := randomIndex(maxFriendsPerAccount + 1)
		friends := make([]string, 0, friendTarget)
		for attempts := 0; len(friends) < friendTarget && attempts < friendTarget*4 && config.NumAccounts > 1; attempts++ {
			friend := ids[randomIndex(len(ids))]
			if friend != ids[i] && !containsString(friends, friend) {
				friends = append(friends, friend)
			}
		}

		accounts[i] = model.Account{
			ID:         ids[i],
			Username:   fmt.Sprintf("user-%04d", i),
			Bio:        "Generated profile for load seeding",
			Activities: interests,
			Friends:    friends,
			Visibility: randomVisibility(),
		}
	}

	stats.AccountsGenerated = len(accounts)
	return accounts
}

// generateEvents creates events hosted by the generated accounts, spread
// around the configured city center and split between past and future.
func generateEvents(ctx context.Context, config *Config, accounts []model.Account, activities []model.Activity, stats *Stats) []model.Event {
	logger.Get().Info(ctx, "generating events", logger.Int("numEvents", config.NumEvents))

	now := time.Now()
	day := 24 * time.Hour

	events := make([]model.Event, config.NumEvents)
	for i := range events {
		host := accounts[randomIndex(len(accounts))]
		activity := activities[randomIndex(len(activities))]

		offset := time.Duration(1+randomIndex(eventSpreadDays)) * day
		date := now.Add(offset)
		if randomFloat() < pastEventShare {
			date = now.Add(-offset)
		}

		attendeeTarget := 1 + randomIndex(maxAttendeesPerEvent)
		attendees := []string{host.ID}
		for attempts := 0; len(attendees) < attendeeTarget && attempts < attendeeTarget*4; attempts++ {
			attendee := accounts[randomIndex(len(accounts))].ID
			if !containsString(attendees, attendee) {
				attendees = append(attendees, attendee)
			}
		}

		var location *model.Location
		eventType := model.EventOnline
		if randomFloat() < 0.8 {
			eventType = model.EventInPerson
			location = &model.Location{
				Latitude:  cityCenterLat + (randomFloat()-0.5)*citySpreadDegrees,
				Longitude: cityCenterLon + (randomFloat()-0.5)*citySpreadDegrees,
			}
		}

		events[i] = model.Event{
			ID:          uuid.New().String(),
			HostID:      host.ID,
			Name:        activity.Name + " meetup",
			Description: activity.Description,
			Date:        float64(date.UnixMilli()),
			Location:    location,
			Type:        eventType,
			Attendees:   attendees,
			Activities:  []string{activity.ID},
		}
	}

	stats.EventsGenerated = len(events)
	return events
}

func randomVisibility() model.Visibility {
	r := randomFloat()
	switch {
	case r < privateShare:
		return model.VisibilityPrivate
	case r < privateShare+unlistedShare:
		return model.VisibilityUnlisted
	default:
		return model.VisibilityPublic
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func containsActivity(list []model.Activity, id string) bool {
	for _, item := range list {
		if item.ID == id {
			return true
		}
	}
	return false
}
