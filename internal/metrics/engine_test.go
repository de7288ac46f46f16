package metrics_test

import (
	"testing"
	"time"

	"github.com/fortuna/propscope/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// pointsGames returns games with the given points, most recent first, one day apart ending on end.
func pointsGames(end string, points ...float64) []metrics.GameStat {
	last := day(end)
	games := make([]metrics.GameStat, len(points))
	for i, p := range points {
		games[i] = metrics.GameStat{
			Date:     last.AddDate(0, 0, -i),
			Opponent: "BOS",
			Points:   f(p),
			Rebounds: f(5),
			Assists:  f(5),
		}
	}
	return games
}

func TestComputeAverage(t *testing.T) {
	tests := []struct {
		name   string
		games  []metrics.GameStat
		market metrics.Market
		window int
		want   *float64
	}{
		{
			name:   "last five of exactly five games",
			games:  pointsGames("2025-01-10", 30, 25, 20, 22, 28),
			market: metrics.MarketPoints,
			window: 5,
			want:   f(25.0),
		},
		{
			name:   "window takes most recent games only",
			games:  pointsGames("2025-01-10", 10, 20, 30, 40, 50, 100, 100),
			market: metrics.MarketPoints,
			window: 5,
			want:   f(30.0),
		},
		{
			name:   "fewer games than window uses what exists",
			games:  pointsGames("2025-01-10", 10, 20),
			market: metrics.MarketPoints,
			window: 10,
			want:   f(15.0),
		},
		{
			name:   "season uses every game",
			games:  pointsGames("2025-01-10", 10, 20, 30, 40, 50, 60, 70),
			market: metrics.MarketPoints,
			window: 0,
			want:   f(40.0),
		},
		{
			name:   "empty history is nil not zero",
			games:  nil,
			market: metrics.MarketPoints,
			window: 5,
			want:   nil,
		},
		{
			name:   "all zero games average to zero",
			games:  pointsGames("2025-01-10", 0, 0, 0),
			market: metrics.MarketPoints,
			window: 0,
			want:   f(0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := metrics.ComputeAverage(tt.games, tt.market, tt.window)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestComputeAverage_MissingFieldsExcluded(t *testing.T) {
	games := []metrics.GameStat{
		{Date: day("2025-01-10"), Points: f(30), Rebounds: f(10), Assists: f(5)},
		{Date: day("2025-01-09"), Points: nil, Rebounds: f(6), Assists: f(5)},
		{Date: day("2025-01-08"), Points: f(20), Rebounds: nil, Assists: f(5)},
	}

	pts := metrics.ComputeAverage(games, metrics.MarketPoints, 0)
	require.NotNil(t, pts)
	assert.InDelta(t, 25.0, *pts, 1e-9, "missing points must not count as zero")

	reb := metrics.ComputeAverage(games, metrics.MarketRebounds, 0)
	require.NotNil(t, reb)
	assert.InDelta(t, 8.0, *reb, 1e-9)

	// Only the first game has all three constituents.
	pra := metrics.ComputeAverage(games, metrics.MarketPointsReboundsAssists, 0)
	require.NotNil(t, pra)
	assert.InDelta(t, 45.0, *pra, 1e-9)

	onlyMissing := metrics.ComputeAverage(games[1:2], metrics.MarketPoints, 0)
	assert.Nil(t, onlyMissing)
}

func TestComputeAverage_WindowCountsRowsNotContributors(t *testing.T) {
	games := pointsGames("2025-01-10", 10, 20, 30, 40, 50, 60)
	games[0].Points = nil

	// The five most recent rows hold 20, 30, 40, 50; the sixth game stays out.
	got := metrics.ComputeAverage(games, metrics.MarketPoints, 5)
	require.NotNil(t, got)
	assert.InDelta(t, 35.0, *got, 1e-9)
}

func TestCombinationMarketResolves(t *testing.T) {
	g := metrics.GameStat{Points: f(29.1), Rebounds: f(8.3), Assists: f(7.9)}

	v, ok := metrics.MarketPointsReboundsAssists.Resolve(g)
	require.True(t, ok)
	assert.Equal(t, 45.3, *metrics.Round1(&v))
}

func TestComputeDelta(t *testing.T) {
	tests := []struct {
		name string
		line float64
		avg  *float64
		want *float64
	}{
		{name: "line above average", line: 27.5, avg: f(26.1), want: f(1.4)},
		{name: "line below average", line: 27.5, avg: f(29.3), want: f(-1.8)},
		{name: "zero average still has a delta", line: 0.5, avg: f(0), want: f(0.5)},
		{name: "nil average", line: 27.5, avg: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := metrics.ComputeDelta(tt.line, tt.avg)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *metrics.Round1(got))
		})
	}
}

func TestComputePercentDifference(t *testing.T) {
	tests := []struct {
		name  string
		delta *float64
		avg   *float64
		want  *float64
	}{
		{name: "positive", delta: f(2.5), avg: f(25), want: f(10)},
		{name: "negative", delta: f(-5), avg: f(20), want: f(-25)},
		{name: "zero average", delta: f(0.5), avg: f(0), want: nil},
		{name: "nil average", delta: f(1), avg: nil, want: nil},
		{name: "nil delta", delta: nil, avg: f(10), want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := metrics.ComputePercentDifference(tt.delta, tt.avg)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestBuildDerivedMetric(t *testing.T) {
	asOf := day("2025-01-10")
	games := pointsGames("2025-01-10", 30, 25, 20, 22, 28, 15)
	// Future game must be ignored.
	games = append(games, metrics.GameStat{Date: day("2025-01-12"), Points: f(99), Rebounds: f(1), Assists: f(1)})

	lines := []metrics.Line{
		{Market: metrics.MarketPoints, Value: 27.5, Book: "PrizePicks", Date: asOf},
		{Market: metrics.MarketPoints, Value: 26.5, Book: "Underdog", Date: asOf},
		{Market: metrics.MarketRebounds, Value: 6.5, Book: "PrizePicks", Date: asOf},
		{Market: metrics.MarketPoints, Value: 30.5, Book: "PrizePicks", Date: day("2025-01-09")},
	}

	dm := metrics.BuildDerivedMetric(games, lines, metrics.MarketPoints, asOf)

	assert.Equal(t, metrics.MarketPoints, dm.Market)
	require.NotNil(t, dm.Last5Average)
	assert.InDelta(t, 25.0, *dm.Last5Average, 1e-9)
	require.NotNil(t, dm.SeasonAverage)
	assert.InDelta(t, 140.0/6, *dm.SeasonAverage, 1e-9)
	require.NotNil(t, dm.Last10Average)
	assert.InDelta(t, *dm.SeasonAverage, *dm.Last10Average, 1e-9)

	require.Len(t, dm.Comparisons, 2, "one comparison per book for the as-of date")
	assert.Equal(t, "PrizePicks", dm.Comparisons[0].Line.Book)
	assert.Equal(t, "Underdog", dm.Comparisons[1].Line.Book)

	assert.InDelta(t, 2.5, *dm.Comparisons[0].DeltaVsLast5, 1e-9)
	assert.InDelta(t, 1.5, *dm.Comparisons[1].DeltaVsLast5, 1e-9)
	assert.InDelta(t, 10.0, *dm.Comparisons[0].PercentVsLast5, 1e-9)
	assert.InDelta(t, 27.5-140.0/6, *dm.Comparisons[0].DeltaVsSeason, 1e-9)
}

func TestBuildDerivedMetric_IncludesAsOfDay(t *testing.T) {
	asOf := time.Date(2025, 1, 10, 23, 30, 0, 0, time.UTC)
	games := []metrics.GameStat{
		{Date: time.Date(2025, 1, 10, 19, 0, 0, 0, time.UTC), Points: f(40)},
		{Date: time.Date(2025, 1, 11, 1, 0, 0, 0, time.UTC), Points: f(0)},
	}

	dm := metrics.BuildDerivedMetric(games, nil, metrics.MarketPoints, asOf)
	require.NotNil(t, dm.SeasonAverage)
	assert.InDelta(t, 40.0, *dm.SeasonAverage, 1e-9)
	assert.Empty(t, dm.Comparisons)
}

func TestBuildDerivedMetric_EmptyHistory(t *testing.T) {
	asOf := day("2025-01-10")
	lines := []metrics.Line{{Market: metrics.MarketAssists, Value: 6.5, Book: "PrizePicks", Date: asOf}}

	var dm metrics.DerivedMetric
	require.NotPanics(t, func() {
		dm = metrics.BuildDerivedMetric(nil, lines, metrics.MarketAssists, asOf)
	})

	assert.Nil(t, dm.SeasonAverage)
	assert.Nil(t, dm.Last5Average)
	assert.Nil(t, dm.Last10Average)
	require.Len(t, dm.Comparisons, 1)
	assert.Nil(t, dm.Comparisons[0].DeltaVsSeason)
	assert.Nil(t, dm.Comparisons[0].DeltaVsLast5)
	assert.Nil(t, dm.Comparisons[0].PercentVsSeason)
	assert.Nil(t, dm.Comparisons[0].PercentVsLast5)
}

func TestBuildDerivedMetric_UnknownMarketPanics(t *testing.T) {
	assert.Panics(t, func() {
		metrics.BuildDerivedMetric(nil, nil, metrics.Market("steals"), day("2025-01-10"))
	})
	assert.Panics(t, func() {
		metrics.ComputeAverage(nil, metrics.Market("pra"), 0)
	})
}

func TestHistoryDoesNotMutateInput(t *testing.T) {
	games := []metrics.GameStat{
		{Date: day("2025-01-01"), Points: f(1)},
		{Date: day("2025-01-03"), Points: f(3)},
		{Date: day("2025-01-02"), Points: f(2)},
	}

	h := metrics.History(games, day("2025-01-02"))
	require.Len(t, h, 2)
	assert.Equal(t, day("2025-01-02"), h[0].Date)
	assert.Equal(t, day("2025-01-01"), h[1].Date)
	assert.Equal(t, day("2025-01-01"), games[0].Date)
}
