// Package seed generates mock prop lines for local development.
package seed

import (
	"math"
	"math/rand"
	"time"

	"github.com/fortuna/propscope/internal/metrics"
	"github.com/fortuna/propscope/internal/store"
)

type valueRange struct {
	min, max float64
}

var ranges = map[metrics.Market]valueRange{
	metrics.MarketPoints:   {15, 25},
	metrics.MarketRebounds: {4, 10},
	metrics.MarketAssists:  {3, 8},
}

// Generator produces plausible lines from an injected random source
type Generator struct {
	rng  *rand.Rand
	book string
}

// NewGenerator creates a generator. Pass a seeded rng for reproducible output.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng, book: store.DefaultBook}
}

// Lines returns one line per market for every player, in canonical market order.
// The combined market is the sum of the three single-stat lines.
func (g *Generator) Lines(playerIDs []int, date time.Time) []store.SportsbookLine {
	lines := make([]store.SportsbookLine, 0, len(playerIDs)*len(metrics.AllMarkets()))

	for _, id := range playerIDs {
		pts := g.value(metrics.MarketPoints)
		reb := g.value(metrics.MarketRebounds)
		ast := g.value(metrics.MarketAssists)

		values := map[metrics.Market]float64{
			metrics.MarketPoints:                pts,
			metrics.MarketRebounds:              reb,
			metrics.MarketAssists:               ast,
			metrics.MarketPointsReboundsAssists: pts + reb + ast,
		}

		for _, m := range metrics.AllMarkets() {
			lines = append(lines, store.SportsbookLine{
				PlayerID:  id,
				LineDate:  date,
				Market:    string(m),
				LineValue: values[m],
				Book:      g.book,
			})
		}
	}
	return lines
}

// value draws uniformly from the market's range and rounds to the nearest half
func (g *Generator) value(m metrics.Market) float64 {
	r := ranges[m]
	v := r.min + g.rng.Float64()*(r.max-r.min)
	return math.Round(v*2) / 2
}
