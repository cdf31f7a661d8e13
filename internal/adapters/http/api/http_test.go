package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	repository "github.com/okian/mingle/internal/adapters/repository"
	"github.com/okian/mingle/internal/domain/model"
	"github.com/okian/mingle/internal/domain/types"
)

// fakeDeps implements Dependencies with canned responses.
type fakeDeps struct {
	accounts   []model.Account
	activities []model.Activity
	events     []model.Event

	knownAccounts map[string]struct{}
}

func newFakeDeps(knownAccounts ...string) *fakeDeps {
	known := make(map[string]struct{}, len(knownAccounts))
	for _, id := range knownAccounts {
		known[id] = struct{}{}
	}
	return &fakeDeps{knownAccounts: known}
}

func (f *fakeDeps) UpsertAccounts(_ context.Context, accounts []model.Account) (int, error) {
	for _, a := range accounts {
		if a.ID == "" {
			return 0, fmt.Errorf("account: %w", repository.ErrMissingID)
		}
	}
	f.accounts = append(f.accounts, accounts...)
	return len(accounts), nil
}

func (f *fakeDeps) UpsertActivities(_ context.Context, activities []model.Activity) (int, error) {
	f.activities = append(f.activities, activities...)
	return len(activities), nil
}

func (f *fakeDeps) UpsertEvents(_ context.Context, events []model.Event) (int, error) {
	f.events = append(f.events, events...)
	return len(events), nil
}

func (f *fakeDeps) lookup(accountID string) error {
	if _, ok := f.knownAccounts[accountID]; !ok {
		return fmt.Errorf("lookup account %q: %w", accountID, repository.ErrNotFound)
	}
	return nil
}

func (f *fakeDeps) RecommendActivities(_ context.Context, accountID string) ([]model.Activity, error) {
	if err := f.lookup(accountID); err != nil {
		return nil, err
	}
	return []model.Activity{{ID: "chess", Name: "Chess"}}, nil
}

func (f *fakeDeps) RecommendEvents(_ context.Context, accountID string, _ model.Location) ([]model.Event, error) {
	if err := f.lookup(accountID); err != nil {
		return nil, err
	}
	return []model.Event{{ID: "chess-night", Name: "Chess night"}}, nil
}

func (f *fakeDeps) RecommendFriends(_ context.Context, accountID string, _ model.Location) ([]model.Account, error) {
	if err := f.lookup(accountID); err != nil {
		return nil, err
	}
	return []model.Account{{ID: "cara", Username: "cara"}}, nil
}

// fakeStats implements StatsProvider.
type fakeStats struct{}

func (fakeStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestMux(deps Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	NewServer(deps, fakeStats{}).Register(context.Background(), mux)
	return mux
}

func doRequest(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestDirectoryEndpoints(t *testing.T) {
	Convey("Given the API routes", t, func() {
		deps := newFakeDeps()
		mux := newTestMux(deps)

		Convey("When putting valid accounts", func() {
			body := `[{"id":"ana","username":"ana","visibility":"PUBLIC"}]`
			rec := doRequest(mux, http.MethodPut, "/directory/accounts", body)

			Convey("Then the write count should come back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var result types.IngestResult
				So(json.Unmarshal(rec.Body.Bytes(), &result), ShouldBeNil)
				So(result.Written, ShouldEqual, 1)
			})
		})

		Convey("When putting malformed JSON", func() {
			rec := doRequest(mux, http.MethodPut, "/directory/accounts", `{not json`)

			Convey("Then the request should be rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When putting an account without a username", func() {
			rec := doRequest(mux, http.MethodPut, "/directory/accounts", `[{"id":"ana"}]`)

			Convey("Then validation should fail", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "validation_failed")
			})
		})

		Convey("When using the wrong method", func() {
			rec := doRequest(mux, http.MethodGet, "/directory/accounts", "")

			Convey("Then the route should not match", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When putting valid activities and events", func() {
			actBody := `[{"id":"chess","name":"Chess","types":["HOBBY"]}]`
			evBody := `[{"id":"e1","host_id":"ana","name":"Chess night","date":1,"type":"ONLINE"}]`
			actRec := doRequest(mux, http.MethodPut, "/directory/activities", actBody)
			evRec := doRequest(mux, http.MethodPut, "/directory/events", evBody)

			Convey("Then both writes should succeed", func() {
				So(actRec.Code, ShouldEqual, http.StatusOK)
				So(evRec.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When putting an event with an invented type", func() {
			body := `[{"id":"e1","host_id":"ana","name":"x","date":1,"type":"TELEPATHIC"}]`
			rec := doRequest(mux, http.MethodPut, "/directory/events", body)

			Convey("Then the request should be rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(len(deps.events), ShouldEqual, 0)
			})
		})

		Convey("When putting an activity with an unknown type tag", func() {
			body := `[{"id":"chess","name":"Chess","types":["JUGGLING"]}]`
			rec := doRequest(mux, http.MethodPut, "/directory/activities", body)

			Convey("Then the request should be rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(len(deps.activities), ShouldEqual, 0)
			})
		})

		Convey("When putting an event with a lowercase type", func() {
			body := `[{"id":"e3","host_id":"ana","name":"Walk","date":1,"type":"in_person"}]`
			rec := doRequest(mux, http.MethodPut, "/directory/events", body)

			Convey("Then the type should normalize on ingest", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.events[0].Type, ShouldEqual, model.EventInPerson)
			})
		})

		Convey("When putting an event with too many activity links", func() {
			ids := make([]string, 26)
			for i := range ids {
				ids[i] = fmt.Sprintf("\"a%d\"", i)
			}
			body := fmt.Sprintf(`[{"id":"e2","host_id":"ana","name":"Big","date":1,"type":"ONLINE","activities":[%s]}]`, strings.Join(ids, ","))
			rec := doRequest(mux, http.MethodPut, "/directory/events", body)

			Convey("Then validation should fail", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestRecommendationEndpoints(t *testing.T) {
	Convey("Given the API routes with one known account", t, func() {
		deps := newFakeDeps("ana")
		mux := newTestMux(deps)

		Convey("When requesting activity suggestions", func() {
			rec := doRequest(mux, http.MethodGet, "/recommendations/activities?account_id=ana", "")

			Convey("Then the payload should echo the account", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var payload types.ActivityRecommendations
				So(json.Unmarshal(rec.Body.Bytes(), &payload), ShouldBeNil)
				So(payload.AccountID, ShouldEqual, "ana")
				So(len(payload.Activities), ShouldEqual, 1)
			})
		})

		Convey("When the account_id parameter is missing", func() {
			rec := doRequest(mux, http.MethodGet, "/recommendations/activities", "")

			Convey("Then the request should be rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the account is unknown", func() {
			rec := doRequest(mux, http.MethodGet, "/recommendations/activities?account_id=ghost", "")

			Convey("Then a 404 should come back", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
				So(rec.Body.String(), ShouldContainSubstring, "not_found")
			})
		})

		Convey("When requesting event suggestions with coordinates", func() {
			rec := doRequest(mux, http.MethodGet, "/recommendations/events?account_id=ana&lat=34.0&lon=12.0", "")

			Convey("Then the payload should carry events", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var payload types.EventRecommendations
				So(json.Unmarshal(rec.Body.Bytes(), &payload), ShouldBeNil)
				So(len(payload.Events), ShouldEqual, 1)
			})
		})

		Convey("When coordinates are missing or invalid", func() {
			missing := doRequest(mux, http.MethodGet, "/recommendations/events?account_id=ana", "")
			invalid := doRequest(mux, http.MethodGet, "/recommendations/events?account_id=ana&lat=abc&lon=12", "")
			outOfRange := doRequest(mux, http.MethodGet, "/recommendations/friends?account_id=ana&lat=95&lon=12", "")

			Convey("Then all three should be rejected", func() {
				So(missing.Code, ShouldEqual, http.StatusBadRequest)
				So(invalid.Code, ShouldEqual, http.StatusBadRequest)
				So(outOfRange.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When requesting friend suggestions", func() {
			rec := doRequest(mux, http.MethodGet, "/recommendations/friends?account_id=ana&lat=34.0&lon=12.0", "")

			Convey("Then the payload should carry accounts", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var payload types.FriendRecommendations
				So(json.Unmarshal(rec.Body.Bytes(), &payload), ShouldBeNil)
				So(len(payload.Accounts), ShouldEqual, 1)
			})
		})
	})
}

func TestOperationalEndpoints(t *testing.T) {
	Convey("Given the API routes", t, func() {
		mux := newTestMux(newFakeDeps())

		Convey("When requesting health", func() {
			rec := doRequest(mux, http.MethodGet, "/healthz", "")

			Convey("Then metrics should be served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When requesting stats", func() {
			rec := doRequest(mux, http.MethodGet, "/stats", "")

			Convey("Then the stats JSON should be served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `"started":true`)
			})
		})
	})
}
