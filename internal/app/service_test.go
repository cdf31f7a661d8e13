package service

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	repository "github.com/okian/mingle/internal/adapters/repository"
	"github.com/okian/mingle/internal/domain/model"
	"github.com/okian/mingle/pkg/logger"
)

func init() {
	_ = logger.Init()
}

func startedService(t *testing.T) *Service {
	t.Helper()
	svc := New(WithSeed(1))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("failed to start service: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func seedDirectory(t *testing.T, svc *Service) {
	t.Helper()
	ctx := context.Background()

	soccer := model.Activity{ID: "soccer", Name: "Soccer", Description: "Team football matches every weekend", Types: []model.ActivityType{model.ActivitySport}}
	futsal := model.Activity{ID: "futsal", Name: "Futsal", Description: "Indoor football with small teams", Types: []model.ActivityType{model.ActivitySport}}
	chess := model.Activity{ID: "chess", Name: "Chess", Description: "Strategy board games and tournaments", Types: []model.ActivityType{model.ActivityHobby}}
	pottery := model.Activity{ID: "pottery", Name: "Pottery", Description: "Shaping clay on the wheel", Types: []model.ActivityType{model.ActivityRelaxation}}

	if _, err := svc.UpsertActivities(ctx, []model.Activity{soccer, futsal, chess, pottery}); err != nil {
		t.Fatalf("failed to seed activities: %v", err)
	}

	accounts := []model.Account{
		{ID: "ana", Username: "ana", Activities: []model.Activity{soccer}, Friends: []string{"bob"}, Visibility: model.VisibilityPublic},
		{ID: "bob", Username: "bob", Activities: []model.Activity{soccer, futsal}, Friends: []string{"ana", "cara"}, Visibility: model.VisibilityPublic},
		{ID: "cara", Username: "cara", Activities: []model.Activity{chess}, Visibility: model.VisibilityPublic},
		{ID: "dan", Username: "dan", Activities: []model.Activity{pottery}, Visibility: model.VisibilityPublic},
	}
	if _, err := svc.UpsertAccounts(ctx, accounts); err != nil {
		t.Fatalf("failed to seed accounts: %v", err)
	}

	nowMillis := float64(time.Now().UnixMilli())
	day := float64(24 * time.Hour.Milliseconds())
	events := []model.Event{
		{
			ID: "past-match", HostID: "bob", Name: "Last week's match",
			Description: "Friendly football match", Date: nowMillis - 7*day,
			Attendees: []string{"bob", "ana"}, Activities: []string{"soccer"},
			Type: model.EventInPerson, Location: &model.Location{Latitude: 10, Longitude: 10},
		},
		{
			ID: "next-match", HostID: "bob", Name: "Next week's match",
			Description: "Friendly football match", Date: nowMillis + 7*day,
			Attendees: []string{"bob"}, Activities: []string{"soccer"},
			Type: model.EventInPerson, Location: &model.Location{Latitude: 10, Longitude: 10},
		},
		{
			ID: "chess-night", HostID: "cara", Name: "Chess night",
			Description: "Casual chess evening", Date: nowMillis + 2*day,
			Attendees: []string{"cara"}, Activities: []string{"chess"},
			Type: model.EventOnline,
		},
	}
	if _, err := svc.UpsertEvents(ctx, events); err != nil {
		t.Fatalf("failed to seed events: %v", err)
	}
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := New(WithSeed(42))

		Convey("When starting twice", func() {
			err1 := svc.Start(context.Background())
			err2 := svc.Start(context.Background())

			Convey("Then both calls should succeed", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
			})

			Convey("Then stats should report started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldBeTrue)
			})

			svc.Stop()
		})

		Convey("When stopping without starting", func() {
			Convey("Then it should be a no-op", func() {
				So(svc.Stop, ShouldNotPanic)
			})
		})
	})
}

func TestServiceDirectory(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService(t)
		seedDirectory(t, svc)

		Convey("When reading stats", func() {
			stats := svc.GetStats()

			Convey("Then directory counts should be reported", func() {
				So(stats["accounts"], ShouldEqual, 4)
				So(stats["activities"], ShouldEqual, 4)
				So(stats["events"], ShouldEqual, 3)
			})
		})

		Convey("When upserting an account without an id", func() {
			_, err := svc.UpsertAccounts(context.Background(), []model.Account{{Username: "ghost"}})

			Convey("Then the write should fail", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, repository.ErrMissingID), ShouldBeTrue)
			})
		})
	})
}

func TestRecommendActivities(t *testing.T) {
	Convey("Given a started service with seeded data", t, func() {
		svc := startedService(t)
		seedDirectory(t, svc)
		ctx := context.Background()

		Convey("When recommending activities for ana", func() {
			recs, err := svc.RecommendActivities(ctx, "ana")

			Convey("Then up to three suggestions should come back", func() {
				So(err, ShouldBeNil)
				So(len(recs), ShouldBeGreaterThan, 0)
				So(len(recs), ShouldBeLessThanOrEqualTo, 3)
			})

			Convey("Then her current activity should not appear", func() {
				So(err, ShouldBeNil)
				for _, rec := range recs {
					So(rec.ID, ShouldNotEqual, "soccer")
				}
			})
		})

		Convey("When the account does not exist", func() {
			_, err := svc.RecommendActivities(ctx, "nobody")

			Convey("Then a not-found error should be returned", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestRecommendEvents(t *testing.T) {
	Convey("Given a started service with seeded data", t, func() {
		svc := startedService(t)
		seedDirectory(t, svc)
		ctx := context.Background()
		here := model.Location{Latitude: 10, Longitude: 10}

		Convey("When recommending events for ana", func() {
			recs, err := svc.RecommendEvents(ctx, "ana", here)

			Convey("Then up to four suggestions should come back", func() {
				So(err, ShouldBeNil)
				So(len(recs), ShouldBeLessThanOrEqualTo, 4)
			})

			Convey("Then her attended past event should not appear", func() {
				So(err, ShouldBeNil)
				for _, rec := range recs {
					So(rec.ID, ShouldNotEqual, "past-match")
				}
			})
		})

		Convey("When the account does not exist", func() {
			_, err := svc.RecommendEvents(ctx, "nobody", here)

			Convey("Then a not-found error should be returned", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestRecommendFriends(t *testing.T) {
	Convey("Given a started service with seeded data", t, func() {
		svc := startedService(t)
		seedDirectory(t, svc)
		ctx := context.Background()
		here := model.Location{Latitude: 10, Longitude: 10}

		Convey("When recommending friends for ana", func() {
			recs, err := svc.RecommendFriends(ctx, "ana", here)

			Convey("Then neither ana nor her friend bob should appear", func() {
				So(err, ShouldBeNil)
				So(len(recs), ShouldBeLessThanOrEqualTo, 15)
				for _, rec := range recs {
					So(rec.ID, ShouldNotEqual, "ana")
					So(rec.ID, ShouldNotEqual, "bob")
				}
			})
		})
	})
}

func TestSplitByTime(t *testing.T) {
	Convey("Given a set of events", t, func() {
		now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
		nowMillis := float64(now.UnixMilli())
		account := model.Account{ID: "ana"}

		events := []model.Event{
			{ID: "attended-past", Date: nowMillis - 1000, Attendees: []string{"ana"}},
			{ID: "hosted-future", Date: nowMillis + 1000, HostID: "ana"},
			{ID: "unrelated", Date: nowMillis + 1000, Attendees: []string{"bob"}},
		}

		Convey("When splitting by time", func() {
			past, future := splitByTime(events, account, now)

			Convey("Then only involved events should be partitioned", func() {
				So(len(past), ShouldEqual, 1)
				So(past[0].ID, ShouldEqual, "attended-past")
				So(len(future), ShouldEqual, 1)
				So(future[0].ID, ShouldEqual, "hosted-future")
			})
		})
	})
}
