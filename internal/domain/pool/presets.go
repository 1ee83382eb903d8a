package pool

// Preset is a curated, named pool definition. Preset items are
// filtered against the catalog at resolution time, so a preset may
// resolve to fewer items than it lists.
type Preset struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Items       []string `json:"items"`
}

// nba75PlusMVPs is the NBA 75th Anniversary Team plus recent MVP
// winners and modern legends.
var nba75PlusMVPs = []string{
	// NBA 75 core
	"abdulka01", "barklch01", "birdla01", "bryanko01", "chambwi01",
	"curryst01", "duncati01", "duranke01", "ervinju01", "ewingpa01",
	"garneke01", "gervige01", "hardeja01", "havlijo01", "hillgr01",
	"iveral01", "jamesle01", "johnsma02", "jordami01", "kiddja01",
	"malonka01", "malonmo01", "mchalke01", "millere01", "mullich01",
	"nashst01", "nowitdi01", "olajuha01", "onealsh01", "parisro01",
	"paulch01", "paytoga01", "piercpa01", "pippesc01", "allenra02",
	"robinda01", "russewi01", "stockjo01", "thomais01", "wadedw01",
	"westbru01", "wilkido01", "worthja01",
	// Modern legends and recent MVPs
	"antetgi01", "jokicni01", "embiijo01", "gilgesh01", "leonaka01",
	"lillada01", "davisan02", "irvinky01", "georgpa01", "townska01",
	"butleji01", "lowryky01", "derozde01", "westda01", "anthoca01",
	"boshch01", "howardw01",
	// Additional legends
	"drexlcl01", "fraziwl01", "roberos01", "barryri01", "archibti01",
	"cowenda01", "westje01", "moncrsi01", "richmmi01", "dantlad01",
	"englial01", "kingbe01",
}

var modernSuperstars = []string{
	"jokicni01", "gilgesh01", "antetgi01", "doncilu01", "embiijo01",
	"curryst01", "duranke01", "jamesle01", "tatumja01", "leonaka01",
	"davisan02", "lillada01", "mitchdo01", "youngtr01", "morantja01",
	"edwaran01", "irvinky01", "hardeja01", "paulch01", "butleji01",
	"georgpa01", "townska01", "adebaba01", "bookede01", "brownja02",
}

var ninetiesLegends = []string{
	"jordami01", "pippesc01", "olajuha01", "robinda01", "ewingpa01",
	"malonka01", "stockjo01", "barklch01", "millere01", "paytoga01",
	"kempsh01", "drexlcl01", "onealsh01", "richmmi01", "hillgr01",
	"hardati01", "johnske02", "mullich01", "mournal01", "webbech01",
}

// presets holds the built-in definitions in display order.
var presets = []Preset{
	{
		ID:          "nba75_mvps",
		Name:        "NBA 75 + Modern MVPs",
		Description: "The NBA 75th Anniversary Team combined with recent MVP winners",
		Items:       nba75PlusMVPs,
	},
	{
		ID:          "modern_superstars",
		Name:        "Modern Superstars",
		Description: "Today's top 25 NBA players",
		Items:       modernSuperstars,
	},
	{
		ID:          "90s_legends",
		Name:        "90s Legends",
		Description: "The greatest players from the 1990s era",
		Items:       ninetiesLegends,
	},
}

// Presets returns the built-in preset definitions in display order.
// Callers must not mutate the returned slices.
func Presets() []Preset {
	return presets
}

// PresetByID looks up a built-in preset.
func PresetByID(id string) (Preset, bool) {
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}
