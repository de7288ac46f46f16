// Package metrics derives season and rolling averages from a player's game
// history and compares them against sportsbook lines.
//
// Every function here is pure. Missing data is reported as a nil pointer,
// never as zero.
package metrics

import (
	"sort"
	"time"
)

// Standard rolling windows.
const (
	WindowLast5  = 5
	WindowLast10 = 10
)

// GameStat is one player's box score for one game. Nil stat fields were not recorded.
type GameStat struct {
	Date     time.Time
	Opponent string
	Minutes  *float64
	Points   *float64
	Rebounds *float64
	Assists  *float64
}

// Line is a sportsbook threshold for one player, market and date.
type Line struct {
	Market Market
	Value  float64
	Book   string
	Date   time.Time
}

// Comparison holds one line measured against the shared averages.
type Comparison struct {
	Line            Line
	DeltaVsSeason   *float64
	DeltaVsLast5    *float64
	PercentVsSeason *float64
	PercentVsLast5  *float64
}

// DerivedMetric is the per player, market and as-of date result.
type DerivedMetric struct {
	Market        Market
	AsOf          time.Time
	SeasonAverage *float64
	Last5Average  *float64
	Last10Average *float64
	Comparisons   []Comparison
}

// ComputeAverage averages market over the first window games of a
// most-recent-first sequence. A window of zero or less uses every game.
// Games that cannot resolve the market count in neither the sum nor the
// divisor. It returns nil when no game contributes.
func ComputeAverage(games []GameStat, market Market, window int) *float64 {
	resolve := market.mustResolver()
	if window > 0 && window < len(games) {
		games = games[:window]
	}

	var total float64
	var n int
	for _, g := range games {
		v, ok := resolve(g)
		if !ok {
			continue
		}
		total += v
		n++
	}
	if n == 0 {
		return nil
	}
	avg := total / float64(n)
	return &avg
}

// ComputeDelta returns line - avg, or nil when avg is nil.
func ComputeDelta(line float64, avg *float64) *float64 {
	if avg == nil {
		return nil
	}
	d := line - *avg
	return &d
}

// ComputePercentDifference returns delta as a percentage of avg. It is nil
// when either input is nil or avg is exactly zero.
func ComputePercentDifference(delta, avg *float64) *float64 {
	if delta == nil || avg == nil || *avg == 0 {
		return nil
	}
	p := *delta / *avg * 100
	return &p
}

// BuildDerivedMetric computes the season, last-5 and last-10 averages for
// market as of asOf, then compares every matching line dated asOf against them.
// games may arrive in any order and may include games after asOf.
func BuildDerivedMetric(games []GameStat, lines []Line, market Market, asOf time.Time) DerivedMetric {
	history := History(games, asOf)

	dm := DerivedMetric{
		Market:        market,
		AsOf:          Day(asOf),
		SeasonAverage: ComputeAverage(history, market, 0),
		Last5Average:  ComputeAverage(history, market, WindowLast5),
		Last10Average: ComputeAverage(history, market, WindowLast10),
	}

	for _, l := range lines {
		if l.Market != market || !sameDay(l.Date, asOf) {
			continue
		}
		ds := ComputeDelta(l.Value, dm.SeasonAverage)
		d5 := ComputeDelta(l.Value, dm.Last5Average)
		dm.Comparisons = append(dm.Comparisons, Comparison{
			Line:            l,
			DeltaVsSeason:   ds,
			DeltaVsLast5:    d5,
			PercentVsSeason: ComputePercentDifference(ds, dm.SeasonAverage),
			PercentVsLast5:  ComputePercentDifference(d5, dm.Last5Average),
		})
	}

	return dm
}

// History returns the games on or before asOf's day, most recent first.
// The input slice is not modified.
func History(games []GameStat, asOf time.Time) []GameStat {
	cutoff := Day(asOf)
	out := make([]GameStat, 0, len(games))
	for _, g := range games {
		if Day(g.Date).After(cutoff) {
			continue
		}
		out = append(out, g)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Day returns t's calendar date as midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}
