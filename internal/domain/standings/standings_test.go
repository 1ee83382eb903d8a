package standings_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/okian/joust/internal/domain/model"
	"github.com/okian/joust/internal/domain/standings"
	. "github.com/smartystreets/goconvey/convey"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestCompute(t *testing.T) {
	Convey("Given ratings with distinct scores", t, func() {
		pool := []string{"a", "b", "c"}
		ratings := map[string]model.Rating{
			"a": {Score: 1484.0, Wins: 0, Losses: 1},
			"b": {Score: 1516.0, Wins: 1, Losses: 0},
			"c": {Score: 1500.0},
		}

		Convey("When materializing", func() {
			rows := standings.Compute(pool, ratings)

			Convey("Then rows are ordered descending with 1-based ranks", func() {
				So(len(rows), ShouldEqual, 3)
				So(rows[0].ItemID, ShouldEqual, "b")
				So(rows[0].Rank, ShouldEqual, 1)
				So(rows[0].Wins, ShouldEqual, 1)
				So(rows[1].ItemID, ShouldEqual, "c")
				So(rows[1].Rank, ShouldEqual, 2)
				So(rows[2].ItemID, ShouldEqual, "a")
				So(rows[2].Rank, ShouldEqual, 3)
				So(rows[2].Losses, ShouldEqual, 1)
			})
		})
	})

	Convey("Given tied scores", t, func() {
		pool := []string{"z-last-in-alphabet", "m-middle", "a-first"}
		ratings := map[string]model.Rating{
			"z-last-in-alphabet": {Score: 1500},
			"m-middle":           {Score: 1500},
			"a-first":            {Score: 1500},
		}

		Convey("When materializing", func() {
			rows := standings.Compute(pool, ratings)

			Convey("Then ties keep the original pool order", func() {
				So(rows[0].ItemID, ShouldEqual, "z-last-in-alphabet")
				So(rows[1].ItemID, ShouldEqual, "m-middle")
				So(rows[2].ItemID, ShouldEqual, "a-first")
			})
		})
	})

	Convey("Given scores that only differ past the display precision", t, func() {
		pool := []string{"first", "second"}
		ratings := map[string]model.Rating{
			"first":  {Score: 1500.01},
			"second": {Score: 1500.04},
		}

		Convey("When materializing", func() {
			rows := standings.Compute(pool, ratings)

			Convey("Then the full-precision score decides the order", func() {
				So(rows[0].ItemID, ShouldEqual, "second")
				So(rows[1].ItemID, ShouldEqual, "first")
			})

			Convey("And displayed scores are rounded to one decimal", func() {
				So(rows[0].Score, ShouldEqual, 1500.0)
				So(rows[1].Score, ShouldEqual, 1500.0)
			})
		})
	})
}

func TestComputeRounding(t *testing.T) {
	Convey("Given a score with a long fraction", t, func() {
		pool := []string{"a", "b"}
		ratings := map[string]model.Rating{
			"a": {Score: 1531.2837},
			"b": {Score: 1468.7163},
		}

		Convey("When materializing", func() {
			rows := standings.Compute(pool, ratings)

			Convey("Then display scores carry one decimal", func() {
				So(rows[0].Score, ShouldEqual, 1531.3)
				So(rows[1].Score, ShouldEqual, 1468.7)
			})
		})
	})
}

func TestComputeIdempotent(t *testing.T) {
	Convey("Given a live session mid-ranking", t, func() {
		s, err := model.NewSession("sess-1", 10, []string{"a", "b", "c"}, "", testNow)
		So(err, ShouldBeNil)
		So(s.ApplyVote(model.NewPair("a", "b"), "a", testNow), ShouldBeNil)

		Convey("When materializing twice without a state change", func() {
			first, err := json.Marshal(standings.FromSession(s))
			So(err, ShouldBeNil)
			second, err := json.Marshal(standings.FromSession(s))
			So(err, ShouldBeNil)

			Convey("Then the outputs are byte-identical", func() {
				So(string(second), ShouldEqual, string(first))
			})
		})
	})
}
