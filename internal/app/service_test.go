package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/okian/joust/internal/adapters/catalog"
	"github.com/okian/joust/internal/adapters/repository"
	service "github.com/okian/joust/internal/app"
	"github.com/okian/joust/internal/domain/model"
	"github.com/okian/joust/internal/domain/pool"
	"github.com/okian/joust/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

var testClock = func() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

// fixtureCatalog covers five items in win-share order, so canonical
// top-N pools and preset filtering behave predictably in tests.
func fixtureCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Player{
		{ID: "jordami01", Name: "Michael Jordan", Team: "CHI", Position: "SG", WinShares: 214.0},
		{ID: "jamesle01", Name: "LeBron James", Team: "LAL", Position: "SF", WinShares: 210.0},
		{ID: "olajuha01", Name: "Hakeem Olajuwon", Team: "HOU", Position: "C", WinShares: 162.8},
		{ID: "birdla01", Name: "Larry Bird", Team: "BOS", Position: "SF", WinShares: 145.8},
		{ID: "curryst01", Name: "Stephen Curry", Team: "GSW", Position: "PG", WinShares: 133.9},
	})
}

// newTestService wires a started service over a fresh in-memory store
// and the fixture catalog.
func newTestService(opts ...service.Option) *service.Service {
	base := []service.Option{
		service.WithCatalog(fixtureCatalog()),
		service.WithClock(testClock),
	}
	svc := service.New(append(base, opts...)...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should exist and report not started", func() {
			So(svc, ShouldNotBeNil)
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a default service", t, func() {
		svc := service.New()
		defer svc.Stop()

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then it runs on the built-in catalog and memory store", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["catalog_items"], ShouldBeGreaterThan, 2)
				So(stats["presets"], ShouldEqual, len(pool.Presets()))
			})

			Convey("And starting again is a no-op", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
			})
		})

		Convey("When stopping it twice", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			svc.Stop()
			svc.Stop()

			Convey("Then it reports stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})

	Convey("Given a service pointed at a missing catalog file", t, func() {
		svc := service.New(service.WithCatalogCSV("/nonexistent/players.csv"))

		Convey("Then starting it fails", func() {
			So(svc.Start(context.Background()), ShouldNotBeNil)
		})
	})

	Convey("Given a service with an unknown store driver", t, func() {
		svc := service.New(service.WithStoreDriver("etcd"))

		Convey("Then starting it fails with the driver sentinel", func() {
			err := svc.Start(context.Background())
			So(err, ShouldWrap, repository.ErrUnknownDriver)
		})
	})
}

func TestStartSession(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		svc := newTestService()
		defer svc.Stop()

		Convey("When starting an unbounded session over explicit items", func() {
			view, err := svc.StartSession(ctx, service.StartRequest{
				Size:       pool.SizeUnbounded,
				Items:      []string{"jordami01", "jamesle01", "birdla01"},
				OwnerToken: "owner-1",
			})

			Convey("Then the session opens with a first matchup and no budget", func() {
				So(err, ShouldBeNil)
				So(view.ID, ShouldNotBeEmpty)
				So(view.PoolSize, ShouldEqual, 3)
				So(view.TotalMatchups, ShouldEqual, 0)
				So(view.IsComplete, ShouldBeFalse)
				So(view.VotesCompleted, ShouldEqual, 0)
				So(view.NextMatchup, ShouldNotBeNil)
				So(view.CreatedAt, ShouldEqual, testClock())
			})

			Convey("And every item starts at the initial score", func() {
				So(err, ShouldBeNil)
				So(view.Standings, ShouldHaveLength, 3)
				for _, row := range view.Standings {
					So(row.Score, ShouldEqual, 1500.0)
				}
			})

			Convey("And the first matchup carries decorated cards", func() {
				So(err, ShouldBeNil)
				So(view.NextMatchup.ItemA.Name, ShouldNotBeEmpty)
				So(view.NextMatchup.ItemA.Stats, ShouldContainKey, "win_shares")
			})
		})

		Convey("When starting a bounded session from the catalog", func() {
			view, err := svc.StartSession(ctx, service.StartRequest{Size: pool.SizeSmall})

			Convey("Then the pool clamps to the catalog and the budget is n*(n-1)/2", func() {
				So(err, ShouldBeNil)
				So(view.PoolSize, ShouldEqual, 5)
				So(view.TotalMatchups, ShouldEqual, 10)
			})
		})

		Convey("When starting from a preset", func() {
			// The fixture catalog only knows five ids, so the preset's
			// items filter down to the known ones.
			view, err := svc.StartSession(ctx, service.StartRequest{
				Size:   pool.SizeUnbounded,
				Preset: "nba75_mvps",
			})

			Convey("Then resolution filters against the catalog", func() {
				So(err, ShouldBeNil)
				So(view.PoolSize, ShouldBeLessThanOrEqualTo, 5)
				So(view.PoolSize, ShouldBeGreaterThanOrEqualTo, 2)
			})
		})

		Convey("When the requested size is not supported", func() {
			_, err := svc.StartSession(ctx, service.StartRequest{Size: 7})

			Convey("Then it fails with the size sentinel", func() {
				So(err, ShouldWrap, pool.ErrInvalidSize)
			})
		})

		Convey("When the resolved pool is too small", func() {
			_, err := svc.StartSession(ctx, service.StartRequest{
				Size:  pool.SizeUnbounded,
				Items: []string{"jordami01"},
			})

			Convey("Then it fails before any state is created", func() {
				So(err, ShouldWrap, model.ErrPoolTooSmall)
			})
		})

		Convey("When the pool code does not exist", func() {
			_, err := svc.StartSession(ctx, service.StartRequest{PoolCode: "nope42"})

			Convey("Then it fails with the pool sentinel", func() {
				So(err, ShouldWrap, repository.ErrPoolNotFound)
			})
		})
	})
}

func TestSubmitVote(t *testing.T) {
	ctx := context.Background()

	Convey("Given an owned session over three items", t, func() {
		svc := newTestService()
		defer svc.Stop()

		start, err := svc.StartSession(ctx, service.StartRequest{
			Size:       pool.SizeUnbounded,
			Items:      []string{"jordami01", "jamesle01", "birdla01"},
			OwnerToken: "owner-1",
		})
		So(err, ShouldBeNil)
		pending := start.NextMatchup

		Convey("When the owner votes for one side of the pending matchup", func() {
			view, err := svc.SubmitVote(ctx, service.VoteRequest{
				SessionID:  start.ID,
				WinnerID:   pending.ItemA.ItemID,
				OwnerToken: "owner-1",
			})

			Convey("Then the vote applies and the scores move symmetrically", func() {
				So(err, ShouldBeNil)
				So(view.VotesCompleted, ShouldEqual, 1)
				So(view.IsComplete, ShouldBeFalse)

				byID := make(map[string]float64, len(view.Standings))
				for _, row := range view.Standings {
					byID[row.ItemID] = row.Score
				}
				So(byID[pending.ItemA.ItemID], ShouldEqual, 1516.0)
				So(byID[pending.ItemB.ItemID], ShouldEqual, 1484.0)
			})

			Convey("And the winner leads the standings", func() {
				So(err, ShouldBeNil)
				So(view.Standings[0].ItemID, ShouldEqual, pending.ItemA.ItemID)
				So(view.Standings[0].Rank, ShouldEqual, 1)
				So(view.Standings[0].Wins, ShouldEqual, 1)
			})

			Convey("And a fresh matchup is already offered", func() {
				So(err, ShouldBeNil)
				So(view.NextMatchup, ShouldNotBeNil)
				next := model.NewPair(view.NextMatchup.ItemA.ItemID, view.NextMatchup.ItemB.ItemID)
				So(next, ShouldNotResemble, model.NewPair(pending.ItemA.ItemID, pending.ItemB.ItemID))
			})
		})

		Convey("When a stranger votes", func() {
			_, err := svc.SubmitVote(ctx, service.VoteRequest{
				SessionID:  start.ID,
				WinnerID:   pending.ItemA.ItemID,
				OwnerToken: "intruder",
			})

			Convey("Then the vote is rejected and nothing changed", func() {
				So(err, ShouldWrap, service.ErrNotOwner)
				view, gerr := svc.GetSession(ctx, start.ID)
				So(gerr, ShouldBeNil)
				So(view.VotesCompleted, ShouldEqual, 0)
			})
		})

		Convey("When the claimed winner is not in the pending pair", func() {
			_, err := svc.SubmitVote(ctx, service.VoteRequest{
				SessionID:  start.ID,
				WinnerID:   "curryst01",
				OwnerToken: "owner-1",
			})

			Convey("Then the error names the expected pair", func() {
				So(err, ShouldWrap, service.ErrInvalidWinner)
				So(err.Error(), ShouldContainSubstring, pending.ItemA.ItemID)
				So(err.Error(), ShouldContainSubstring, pending.ItemB.ItemID)
			})
		})

		Convey("When the session does not exist", func() {
			_, err := svc.SubmitVote(ctx, service.VoteRequest{
				SessionID: "missing",
				WinnerID:  "jordami01",
			})

			So(err, ShouldWrap, repository.ErrSessionNotFound)
		})
	})

	Convey("Given an ownerless session", t, func() {
		svc := newTestService()
		defer svc.Stop()

		start, err := svc.StartSession(ctx, service.StartRequest{
			Size:  pool.SizeUnbounded,
			Items: []string{"jordami01", "jamesle01", "birdla01"},
		})
		So(err, ShouldBeNil)

		Convey("Then any caller may vote on it", func() {
			_, err := svc.SubmitVote(ctx, service.VoteRequest{
				SessionID:  start.ID,
				WinnerID:   start.NextMatchup.ItemA.ItemID,
				OwnerToken: "whoever",
			})
			So(err, ShouldBeNil)
		})
	})
}

func TestFinalizeSession(t *testing.T) {
	ctx := context.Background()

	Convey("Given a session with a vote applied", t, func() {
		svc := newTestService(service.WithShareBaseURL("https://joust.test/"))
		defer svc.Stop()

		start, err := svc.StartSession(ctx, service.StartRequest{
			Size:       pool.SizeUnbounded,
			Items:      []string{"jordami01", "jamesle01", "birdla01", "olajuha01"},
			OwnerToken: "owner-1",
		})
		So(err, ShouldBeNil)
		_, err = svc.SubmitVote(ctx, service.VoteRequest{
			SessionID:  start.ID,
			WinnerID:   start.NextMatchup.ItemA.ItemID,
			OwnerToken: "owner-1",
		})
		So(err, ShouldBeNil)

		Convey("When the owner finalizes with a share link", func() {
			view, err := svc.FinalizeSession(ctx, service.FinalizeRequest{
				SessionID:         start.ID,
				OwnerToken:        "owner-1",
				GenerateShareLink: true,
			})

			Convey("Then the session completes with a token and URL", func() {
				So(err, ShouldBeNil)
				So(view.IsComplete, ShouldBeTrue)
				So(view.ShareToken, ShouldNotBeEmpty)
				So(view.ShareURL, ShouldEqual, "https://joust.test/share/"+view.ShareToken)
				So(view.NextMatchup, ShouldBeNil)
			})

			Convey("And finalizing again keeps the same token", func() {
				So(err, ShouldBeNil)
				again, aerr := svc.FinalizeSession(ctx, service.FinalizeRequest{
					SessionID:         start.ID,
					OwnerToken:        "owner-1",
					GenerateShareLink: true,
				})
				So(aerr, ShouldBeNil)
				So(again.ShareToken, ShouldEqual, view.ShareToken)
				So(again.VotesCompleted, ShouldEqual, view.VotesCompleted)
			})

			Convey("And the shared view is readable without the owner token", func() {
				So(err, ShouldBeNil)
				shared, serr := svc.GetSharedSession(ctx, view.ShareToken)
				So(serr, ShouldBeNil)
				So(shared.ID, ShouldEqual, start.ID)
				So(shared.IsComplete, ShouldBeTrue)
			})

			Convey("And votes after finalization are rejected", func() {
				So(err, ShouldBeNil)
				_, verr := svc.SubmitVote(ctx, service.VoteRequest{
					SessionID:  start.ID,
					WinnerID:   "jordami01",
					OwnerToken: "owner-1",
				})
				So(verr, ShouldWrap, model.ErrSessionComplete)
			})
		})

		Convey("When the owner finalizes without a share link", func() {
			view, err := svc.FinalizeSession(ctx, service.FinalizeRequest{
				SessionID:  start.ID,
				OwnerToken: "owner-1",
			})

			Convey("Then the session completes without a token", func() {
				So(err, ShouldBeNil)
				So(view.IsComplete, ShouldBeTrue)
				So(view.ShareToken, ShouldBeEmpty)
				So(view.ShareURL, ShouldBeEmpty)
			})
		})

		Convey("When a stranger finalizes", func() {
			_, err := svc.FinalizeSession(ctx, service.FinalizeRequest{
				SessionID:  start.ID,
				OwnerToken: "intruder",
			})

			So(err, ShouldWrap, service.ErrNotOwner)
		})

		Convey("When the share token is unknown", func() {
			_, err := svc.GetSharedSession(ctx, "bogus-token")

			So(err, ShouldWrap, repository.ErrSessionNotFound)
		})
	})
}

func TestCustomPools(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		svc := newTestService()
		defer svc.Stop()

		Convey("When creating a valid pool", func() {
			view, err := svc.CreateCustomPool(ctx, service.CreatePoolRequest{
				Name:        "  GOAT shortlist ",
				Description: "the only debate that matters",
				Items:       []string{"jordami01", " jamesle01 ", "birdla01"},
				Public:      true,
				OwnerToken:  "owner-1",
			})

			Convey("Then it is stored trimmed, in submitted order, with a code", func() {
				So(err, ShouldBeNil)
				So(view.Name, ShouldEqual, "GOAT shortlist")
				So(view.Items, ShouldResemble, []string{"jordami01", "jamesle01", "birdla01"})
				So(view.ItemNames, ShouldResemble, []string{"Michael Jordan", "LeBron James", "Larry Bird"})
				So(view.ShareCode, ShouldNotBeEmpty)
				So(view.Public, ShouldBeTrue)
			})

			Convey("And it resolves back by share code without a token", func() {
				So(err, ShouldBeNil)
				got, gerr := svc.GetCustomPool(ctx, view.ShareCode)
				So(gerr, ShouldBeNil)
				So(got.ID, ShouldEqual, view.ID)
				So(got.Items, ShouldResemble, view.Items)
			})

			Convey("And a session can start from its code", func() {
				So(err, ShouldBeNil)
				sess, serr := svc.StartSession(ctx, service.StartRequest{PoolCode: view.ShareCode})
				So(serr, ShouldBeNil)
				So(sess.PoolSize, ShouldEqual, 3)
				So(sess.TotalMatchups, ShouldEqual, 0)
			})
		})

		Convey("When the name is missing", func() {
			_, err := svc.CreateCustomPool(ctx, service.CreatePoolRequest{
				Name:  "   ",
				Items: []string{"jordami01", "jamesle01"},
			})

			So(err, ShouldWrap, service.ErrPoolNameRequired)
		})

		Convey("When fewer than two usable items remain", func() {
			_, err := svc.CreateCustomPool(ctx, service.CreatePoolRequest{
				Name:  "tiny",
				Items: []string{"jordami01", "  "},
			})

			So(err, ShouldWrap, model.ErrPoolTooSmall)
		})

		Convey("When the pool exceeds the item cap", func() {
			items := make([]string, 201)
			for i := range items {
				items[i] = "jordami01"
			}
			_, err := svc.CreateCustomPool(ctx, service.CreatePoolRequest{Name: "huge", Items: items})

			So(err, ShouldWrap, service.ErrPoolTooLarge)
		})

		Convey("When items are unknown to the catalog", func() {
			_, err := svc.CreateCustomPool(ctx, service.CreatePoolRequest{
				Name: "made up",
				Items: []string{
					"jordami01", "ghost01", "ghost02", "ghost03",
					"ghost04", "ghost05", "ghost06",
				},
			})

			Convey("Then the error lists a bounded sample of offenders", func() {
				So(err, ShouldWrap, service.ErrUnknownItems)
				So(err.Error(), ShouldContainSubstring, "ghost01")
				So(err.Error(), ShouldContainSubstring, "ghost05")
				So(err.Error(), ShouldNotContainSubstring, "ghost06")
			})
		})

		Convey("When the share code is unknown", func() {
			_, err := svc.GetCustomPool(ctx, "nope42")

			So(err, ShouldWrap, repository.ErrPoolNotFound)
		})
	})
}

func TestPresetsAndStats(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service with some activity", t, func() {
		svc := newTestService()
		defer svc.Stop()

		start, err := svc.StartSession(ctx, service.StartRequest{
			Size:  pool.SizeUnbounded,
			Items: []string{"jordami01", "jamesle01"},
		})
		So(err, ShouldBeNil)
		_, err = svc.SubmitVote(ctx, service.VoteRequest{
			SessionID: start.ID,
			WinnerID:  start.NextMatchup.ItemA.ItemID,
		})
		So(err, ShouldBeNil)
		_, err = svc.CreateCustomPool(ctx, service.CreatePoolRequest{
			Name:  "shortlist",
			Items: []string{"jordami01", "birdla01"},
		})
		So(err, ShouldBeNil)

		Convey("Then presets surface in display order", func() {
			presets := svc.Presets()
			So(presets, ShouldHaveLength, 3)
			So(presets[0].ID, ShouldEqual, "nba75_mvps")
		})

		Convey("Then stats reflect the stored state", func() {
			stats := svc.GetStats()
			So(stats["sessions_total"], ShouldEqual, 1)
			// A two-item pool completes on its only vote.
			So(stats["sessions_completed"], ShouldEqual, 1)
			So(stats["votes_total"], ShouldEqual, 1)
			So(stats["custom_pools_total"], ShouldEqual, 1)
			So(stats["catalog_items"], ShouldEqual, 5)
		})
	})
}

func TestSentinelMessages(t *testing.T) {
	Convey("Sentinel errors read like caller guidance", t, func() {
		So(service.ErrUnavailable.Error(), ShouldContainSubstring, "retry")
		So(strings.Contains(service.ErrInvalidWinner.Error(), "matchup"), ShouldBeTrue)
	})
}
