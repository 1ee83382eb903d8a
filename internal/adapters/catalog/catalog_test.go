package catalog_test

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/joust/internal/adapters/catalog"
	"github.com/okian/joust/internal/domain/pool"
	"github.com/okian/joust/internal/domain/types"
)

func fixture() []catalog.Player {
	return []catalog.Player{
		{ID: "alpha", Name: "Alpha One", Position: "C", Team: "AAA", CareerFrom: 1990, CareerTo: 2000, Games: 800, Points: 20000, Rebounds: 9000, Assists: 2000, WinShares: 150.0},
		{ID: "bravo", Name: "Bravo Two", Position: "PG", Team: "BBB", CareerFrom: 1995, CareerTo: 2005, Games: 700, Points: 15000, Rebounds: 3000, Assists: 8000, WinShares: 120.0},
		{ID: "charlie", Name: "Charlie Three", Position: "SF", Team: "CCC", CareerFrom: 2000, CareerTo: 2010, Games: 600, Points: 18000, Rebounds: 5000, Assists: 4000, WinShares: 100.0},
		{ID: "delta", Name: "Delta Four", Position: "SG", Team: "DDD", CareerFrom: 2005, CareerTo: 2015, Games: 500, Points: 9000, Rebounds: 2000, Assists: 1000, WinShares: 80.0},
	}
}

func TestNewCatalog(t *testing.T) {
	Convey("Given catalog rows in arbitrary order", t, func() {
		rows := fixture()
		// Shuffle so the canonical order must come from win shares.
		rows[0], rows[3] = rows[3], rows[0]
		c := catalog.New(rows)

		Convey("Then the canonical order is win shares, best first", func() {
			So(c.CanonicalOrder(), ShouldResemble, []string{"alpha", "bravo", "charlie", "delta"})
			So(c.Size(), ShouldEqual, 4)
		})

		Convey("Then membership and names resolve", func() {
			So(c.Has("charlie"), ShouldBeTrue)
			So(c.Has("echo"), ShouldBeFalse)
			So(c.Name("charlie"), ShouldEqual, "Charlie Three")
			So(c.Name("echo"), ShouldEqual, "echo")
		})
	})

	Convey("Given rows with empty and duplicate ids", t, func() {
		rows := []catalog.Player{
			{ID: "", Name: "Nobody", WinShares: 500},
			{ID: "dup", Name: "First", WinShares: 50},
			{ID: "dup", Name: "Second", WinShares: 60},
			{ID: "solo", Name: "Solo", WinShares: 10},
		}
		c := catalog.New(rows)

		Convey("Then empty ids are skipped and the first duplicate wins", func() {
			So(c.Size(), ShouldEqual, 2)
			So(c.Name("dup"), ShouldEqual, "First")
		})
	})
}

func TestStatRanks(t *testing.T) {
	Convey("Given a four item catalog", t, func() {
		c := catalog.New(fixture())

		Convey("When reading the games statistic", func() {
			Convey("Then ranks follow the values and percentiles step by quarters", func() {
				So(c.Card("alpha").Stats["games"], ShouldResemble, types.Stat{Value: 800, Rank: 1, Percentile: 75})
				So(c.Card("bravo").Stats["games"], ShouldResemble, types.Stat{Value: 700, Rank: 2, Percentile: 50})
				So(c.Card("charlie").Stats["games"], ShouldResemble, types.Stat{Value: 600, Rank: 3, Percentile: 25})
				So(c.Card("delta").Stats["games"], ShouldResemble, types.Stat{Value: 500, Rank: 4, Percentile: 0})
			})
		})

		Convey("When an attribute orders differently from win shares", func() {
			Convey("Then its ranks are independent", func() {
				So(c.Card("charlie").Stats["points"].Rank, ShouldEqual, 2)
				So(c.Card("bravo").Stats["points"].Rank, ShouldEqual, 3)
				So(c.Card("bravo").Stats["assists"].Rank, ShouldEqual, 1)
			})
		})
	})

	Convey("Given two items tied on an attribute", t, func() {
		c := catalog.New([]catalog.Player{
			{ID: "strong", Games: 700, WinShares: 150},
			{ID: "weak", Games: 700, WinShares: 120},
			{ID: "least", Games: 100, WinShares: 80},
		})

		Convey("Then the canonical order breaks the tie", func() {
			So(c.Card("strong").Stats["games"].Rank, ShouldEqual, 1)
			So(c.Card("weak").Stats["games"].Rank, ShouldEqual, 2)
			So(c.Card("least").Stats["games"].Rank, ShouldEqual, 3)
		})
	})
}

func TestCard(t *testing.T) {
	Convey("Given a built catalog", t, func() {
		c := catalog.New(fixture())

		Convey("When requesting a known item", func() {
			card := c.Card("bravo")

			Convey("Then the card carries every display attribute", func() {
				So(card.ItemID, ShouldEqual, "bravo")
				So(card.Name, ShouldEqual, "Bravo Two")
				So(card.Team, ShouldEqual, "BBB")
				So(card.Position, ShouldEqual, "PG")
				So(card.CareerFrom, ShouldEqual, 1995)
				So(card.CareerTo, ShouldEqual, 2005)
				So(card.Stats, ShouldHaveLength, len(catalog.StatAttributes))
			})
		})

		Convey("When requesting an unknown item", func() {
			card := c.Card("mystery")

			Convey("Then the card is bare", func() {
				So(card.ItemID, ShouldEqual, "mystery")
				So(card.Name, ShouldBeEmpty)
				So(card.Stats, ShouldBeNil)
			})
		})
	})
}

func TestDecorate(t *testing.T) {
	Convey("Given standings over a mixed pool", t, func() {
		c := catalog.New(fixture())
		rows := []types.Standing{
			{Rank: 1, ItemID: "alpha", Score: 1532.0},
			{Rank: 2, ItemID: "outsider", Score: 1500.0},
		}

		Convey("When decorating", func() {
			c.Decorate(rows)

			Convey("Then known items get catalog attributes", func() {
				So(rows[0].Name, ShouldEqual, "Alpha One")
				So(rows[0].Team, ShouldEqual, "AAA")
				So(rows[0].Position, ShouldEqual, "C")
			})

			Convey("Then unknown items fall back to their id", func() {
				So(rows[1].Name, ShouldEqual, "outsider")
				So(rows[1].Team, ShouldBeEmpty)
			})
		})
	})
}

func TestParseCSV(t *testing.T) {
	Convey("Given a CSV with shuffled columns and an extra one", t, func() {
		src := strings.Join([]string{
			"name,id,team,position,career_from,career_to,games,points,rebounds,assists,win_shares,notes",
			"Michael Jordan,jordami01,CHI,SG,1985,2003,1072,32292,6672,5633,214.0,goat",
			"John Stockton,stockjo01,UTA,PG,1985,2003,1504,19711,4051,15806,207.7,iron man",
			"No Id,,XXX,C,1990,2000,100,1000,500,100,10.0,skipped",
			"Bad Numbers,badnum01,YYY,PF,199x,2000,not-a-number,5000,2500,800,12.5,lenient",
		}, "\n")

		Convey("When parsing", func() {
			c, err := catalog.Parse(strings.NewReader(src))

			Convey("Then rows load by header name", func() {
				So(err, ShouldBeNil)
				So(c.Size(), ShouldEqual, 3)
				So(c.CanonicalOrder(), ShouldResemble, []string{"jordami01", "stockjo01", "badnum01"})
				So(c.Name("jordami01"), ShouldEqual, "Michael Jordan")
			})

			Convey("Then unparsable numbers count as zero", func() {
				card := c.Card("badnum01")
				So(card.CareerFrom, ShouldEqual, 0)
				So(card.Stats["games"].Value, ShouldEqual, 0)
				So(card.Stats["points"].Value, ShouldEqual, 5000)
				So(card.Stats["win_shares"].Value, ShouldEqual, 12.5)
			})
		})
	})

	Convey("Given a CSV without an id column", t, func() {
		_, err := catalog.Parse(strings.NewReader("name,team\nFoo,AAA\n"))

		Convey("Then parsing fails", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "id")
		})
	})

	Convey("Given a CSV with a header and no usable rows", t, func() {
		src := "id,name,win_shares\n,Empty,1.0\n"
		_, err := catalog.Parse(strings.NewReader(src))

		Convey("Then the empty catalog is rejected", func() {
			So(err, ShouldWrap, catalog.ErrEmptyCatalog)
		})
	})
}

func TestDefaultCatalog(t *testing.T) {
	Convey("Given the built-in catalog", t, func() {
		c := catalog.Default()

		Convey("Then it is cached across calls", func() {
			So(catalog.Default(), ShouldEqual, c)
		})

		Convey("Then it is large enough to seed every bounded size", func() {
			So(c.Size(), ShouldBeGreaterThanOrEqualTo, 80)
		})

		Convey("Then the canonical order starts with the top career", func() {
			So(c.CanonicalOrder()[0], ShouldEqual, "abdulka01")
		})

		Convey("Then every curated preset resolves in full", func() {
			for _, p := range pool.Presets() {
				items, err := pool.Resolve(pool.Spec{Preset: p.ID}, c)
				So(err, ShouldBeNil)
				So(items, ShouldHaveLength, len(p.Items))
			}
		})
	})
}
