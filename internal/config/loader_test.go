package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	config "github.com/okian/mingle/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file or env overrides", t, func() {
		os.Unsetenv("MINGLE_CONFIG")
		os.Unsetenv("MINGLE_ADDR")
		os.Unsetenv("MINGLE_LOG_LEVEL")

		cfg, err := config.Load(context.Background())

		Convey("Then the canonical defaults apply", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.RandomSeed, ShouldEqual, 0)
			So(cfg.EventWeights.FriendHost, ShouldEqual, 4.0)
			So(cfg.EventWeights.PastSimilarityPenalty, ShouldEqual, -3.0)
			So(cfg.ActivityBlend.Keyword, ShouldEqual, 0.6)
			So(cfg.FriendQuotas.ListSize, ShouldEqual, 15)
			So(cfg.FriendQuotas.LocalRandom, ShouldEqual, 0.35)
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	Convey("Given env overrides", t, func() {
		os.Unsetenv("MINGLE_CONFIG")
		t.Setenv("MINGLE_ADDR", ":7070")
		t.Setenv("MINGLE_LOG_LEVEL", "debug")
		t.Setenv("MINGLE_RANDOM_SEED", "42")

		cfg, err := config.Load(context.Background())

		Convey("Then env values win over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.LogLevel, ShouldEqual, "debug")
			So(cfg.RandomSeed, ShouldEqual, 42)
		})

		Convey("And untouched fields keep their defaults", func() {
			So(cfg.EventWeights.FutureHost, ShouldEqual, 3.5)
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "mingle.yaml")
		yaml := []byte(`
addr: ":6060"
event_weights:
  friend_host: 10
  future_host: 3.5
  future_attendee: 3
  friend_attendee: 2
  shared_activity: 3
  activity_keyword: 2.5
  current_activity_id_bonus: 2.5
  type_score: 1.5
  location_proximity: 1.2
  future_location_bonus: 1
  friend_density_bonus: 0.5
  past_similarity_penalty: -3
`)
		So(os.WriteFile(path, yaml, 0o600), ShouldBeNil)
		t.Setenv("MINGLE_CONFIG", path)

		cfg, err := config.Load(context.Background())

		Convey("Then file values layer over the defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
			So(cfg.EventWeights.FriendHost, ShouldEqual, 10.0)
		})
	})

	Convey("Given a missing config file", t, func() {
		t.Setenv("MINGLE_CONFIG", "/does/not/exist.yaml")

		_, err := config.Load(context.Background())

		Convey("Then loading fails", func() {
			So(err, ShouldNotBeNil)
		})
	})
}
