package metrics

import (
	"errors"
	"fmt"
	"strings"
)

// Market names the statistic, or sum of statistics, a line and an average refer to.
type Market string

const (
	MarketPoints                Market = "points"
	MarketRebounds              Market = "rebounds"
	MarketAssists               Market = "assists"
	MarketPointsReboundsAssists Market = "points_rebounds_assists"
)

// ErrUnknownMarket is returned when external input names a market outside the enumeration.
var ErrUnknownMarket = errors.New("unknown market")

// resolver extracts a market's value from one game. ok is false when a
// required field was not recorded for that game.
type resolver func(g GameStat) (value float64, ok bool)

// Adding a market means adding it here, to AllMarkets, and to the constants above.
var resolvers = map[Market]resolver{
	MarketPoints:   field(func(g GameStat) *float64 { return g.Points }),
	MarketRebounds: field(func(g GameStat) *float64 { return g.Rebounds }),
	MarketAssists:  field(func(g GameStat) *float64 { return g.Assists }),
	MarketPointsReboundsAssists: sum(
		func(g GameStat) *float64 { return g.Points },
		func(g GameStat) *float64 { return g.Rebounds },
		func(g GameStat) *float64 { return g.Assists },
	),
}

var canonical = []Market{
	MarketPoints,
	MarketRebounds,
	MarketAssists,
	MarketPointsReboundsAssists,
}

// AllMarkets returns every market in canonical order.
func AllMarkets() []Market {
	out := make([]Market, len(canonical))
	copy(out, canonical)
	return out
}

// ParseMarket validates a market name from an external source. The short
// alias "pra" is accepted for points_rebounds_assists.
func ParseMarket(s string) (Market, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "pra" {
		return MarketPointsReboundsAssists, nil
	}
	m := Market(name)
	if _, ok := resolvers[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMarket, s)
	}
	return m, nil
}

// Valid reports whether m is part of the enumeration.
func (m Market) Valid() bool {
	_, ok := resolvers[m]
	return ok
}

// Resolve returns the market value for a single game. It panics for a market
// outside the enumeration.
func (m Market) Resolve(g GameStat) (float64, bool) {
	return m.mustResolver()(g)
}

func (m Market) mustResolver() resolver {
	r, ok := resolvers[m]
	if !ok {
		panic(fmt.Sprintf("metrics: no resolver for market %q", string(m)))
	}
	return r
}

func field(get func(GameStat) *float64) resolver {
	return func(g GameStat) (float64, bool) {
		v := get(g)
		if v == nil {
			return 0, false
		}
		return *v, true
	}
}

func sum(parts ...func(GameStat) *float64) resolver {
	return func(g GameStat) (float64, bool) {
		var total float64
		for _, get := range parts {
			v := get(g)
			if v == nil {
				return 0, false
			}
			total += *v
		}
		return total, true
	}
}
