package service

import (
	"time"

	"github.com/fortuna/propscope/internal/metrics"
)

// compareLines runs the engine for every market the lines cover, in
// canonical market order, and flattens the result to one entry per line.
func compareLines(games []metrics.GameStat, lines []metrics.Line, asOf time.Time) []MarketComparison {
	out := make([]MarketComparison, 0, len(lines))
	for _, m := range metrics.AllMarkets() {
		if !hasMarket(lines, m) {
			continue
		}
		dm := metrics.BuildDerivedMetric(games, lines, m, asOf)
		for _, c := range dm.Comparisons {
			out = append(out, MarketComparison{
				Market:        m,
				LineValue:     c.Line.Value,
				Book:          c.Line.Book,
				SeasonAvg:     metrics.Round1(dm.SeasonAverage),
				Last5Avg:      metrics.Round1(dm.Last5Average),
				Last10Avg:     metrics.Round1(dm.Last10Average),
				DeltaVsSeason: metrics.Round1(c.DeltaVsSeason),
				DeltaVsLast5:  metrics.Round1(c.DeltaVsLast5),
				PctVsSeason:   metrics.Round1(c.PercentVsSeason),
				PctVsLast5:    metrics.Round1(c.PercentVsLast5),
			})
		}
	}
	return out
}

func hasMarket(lines []metrics.Line, m metrics.Market) bool {
	for _, l := range lines {
		if l.Market == m {
			return true
		}
	}
	return false
}
