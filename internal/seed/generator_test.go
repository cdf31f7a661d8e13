package seed

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/mingle/internal/domain/model"
	"github.com/okian/mingle/pkg/logger"
)

func init() {
	_ = logger.Init()
}

func TestGenerators(t *testing.T) {
	Convey("Given a seed configuration", t, func() {
		ctx := context.Background()
		config := &Config{
			NumAccounts:   50,
			NumActivities: 20,
			NumEvents:     80,
		}
		stats := &Stats{}

		activities := generateActivities(ctx, config, stats)
		accounts := generateAccounts(ctx, config, activities, stats)
		events := generateEvents(ctx, config, accounts, activities, stats)

		Convey("When generating activities", func() {
			Convey("Then the requested count should come back with unique ids", func() {
				So(len(activities), ShouldEqual, 20)
				So(stats.ActivitiesGenerated, ShouldEqual, 20)
				seen := make(map[string]struct{})
				for _, act := range activities {
					So(act.ID, ShouldNotBeEmpty)
					So(act.Name, ShouldNotBeEmpty)
					So(len(act.Types), ShouldBeLessThanOrEqualTo, model.MaxActivityTypes)
					seen[act.ID] = struct{}{}
				}
				So(len(seen), ShouldEqual, 20)
			})

			Convey("Then every type should be a declared one", func() {
				for _, act := range activities {
					for _, typ := range act.Types {
						So(typ.Valid(), ShouldBeTrue)
					}
				}
			})
		})

		Convey("When generating accounts", func() {
			Convey("Then accounts should be well formed", func() {
				So(len(accounts), ShouldEqual, 50)
				for _, account := range accounts {
					So(account.ID, ShouldNotBeEmpty)
					So(account.Username, ShouldNotBeEmpty)
					So(len(account.Activities), ShouldBeGreaterThan, 0)
					for _, friend := range account.Friends {
						So(friend, ShouldNotEqual, account.ID)
					}
				}
			})
		})

		Convey("When generating events", func() {
			Convey("Then events should be hosted and attended by generated accounts", func() {
				So(len(events), ShouldEqual, 80)
				ids := make(map[string]struct{}, len(accounts))
				for _, account := range accounts {
					ids[account.ID] = struct{}{}
				}
				for _, event := range events {
					So(event.ID, ShouldNotBeEmpty)
					_, hostKnown := ids[event.HostID]
					So(hostKnown, ShouldBeTrue)
					So(event.HasAttendee(event.HostID), ShouldBeTrue)
					So(event.Type.Valid(), ShouldBeTrue)
					if event.Type == model.EventInPerson {
						So(event.Location, ShouldNotBeNil)
					}
				}
			})
		})

		Convey("When chunking into batches", func() {
			config.BaseURL = "http://localhost:9080"
			config.BatchSize = 16
			batches := buildBatches(config, accounts, activities, events)

			Convey("Then every entity should land in exactly one batch", func() {
				total := 0
				for _, b := range batches {
					So(b.size, ShouldBeLessThanOrEqualTo, 16)
					total += b.size
				}
				So(total, ShouldEqual, 50+20+80)
			})
		})
	})
}
