package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fortuna/propscope/internal/metrics"
)

const (
	// DefaultGameLogLimit is how many games the detail game log shows by default
	DefaultGameLogLimit = 10
	// MaxGameLogLimit caps a requested game log at one regular season
	MaxGameLogLimit = 82
)

// DetailAssembler builds the full profile for one player
type DetailAssembler struct {
	source   DataSource
	now      func() time.Time
	logLimit int
}

// DetailOption configures a DetailAssembler
type DetailOption func(*DetailAssembler)

// WithClock sets the clock that decides "today" when no date is given
func WithClock(now func() time.Time) DetailOption {
	return func(a *DetailAssembler) { a.now = now }
}

// WithGameLogLimit sets the default game log length
func WithGameLogLimit(n int) DetailOption {
	return func(a *DetailAssembler) {
		if n > 0 {
			a.logLimit = min(n, MaxGameLogLimit)
		}
	}
}

// NewDetailAssembler creates a detail assembler over src
func NewDetailAssembler(src DataSource, opts ...DetailOption) *DetailAssembler {
	a := &DetailAssembler{
		source:   src,
		now:      time.Now,
		logLimit: DefaultGameLogLimit,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GetPlayerDetail returns a player's averages, recent game log and current
// lines as of asOf. A zero asOf means today (UTC) and games <= 0 uses the
// default log length. An unknown player yields ErrPlayerNotFound.
func (a *DetailAssembler) GetPlayerDetail(ctx context.Context, playerID int, asOf time.Time, games int) (*PlayerDetail, error) {
	if asOf.IsZero() {
		asOf = a.now().UTC()
	}
	day := metrics.Day(asOf)

	limit := a.logLimit
	if games > 0 {
		limit = min(games, MaxGameLogLimit)
	}

	profile, err := a.source.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	stats, err := a.source.GetGameStats(ctx, playerID, day)
	if err != nil {
		return nil, fmt.Errorf("fetching history for player %d: %w", playerID, err)
	}

	lines, err := a.source.GetLines(ctx, []int{playerID}, day)
	if err != nil {
		return nil, fmt.Errorf("fetching lines for player %d: %w", playerID, err)
	}

	history := metrics.History(stats, day)

	detail := &PlayerDetail{
		Player:          profile,
		AsOf:            day.Format(DateLayout),
		SeasonAverages:  make(map[string]*float64),
		RollingAverages: make(map[string]*float64),
		GameLogs:        gameLogs(history, limit),
		CurrentLines:    compareLines(stats, lines[playerID], day),
	}

	for _, m := range metrics.AllMarkets() {
		detail.SeasonAverages[string(m)] = metrics.Round1(metrics.ComputeAverage(history, m, 0))
		detail.RollingAverages[rollingKey(metrics.WindowLast5, m)] = metrics.Round1(metrics.ComputeAverage(history, m, metrics.WindowLast5))
		detail.RollingAverages[rollingKey(metrics.WindowLast10, m)] = metrics.Round1(metrics.ComputeAverage(history, m, metrics.WindowLast10))
	}

	return detail, nil
}

func rollingKey(window int, m metrics.Market) string {
	return fmt.Sprintf("last%d_%s", window, m)
}

// gameLogs returns the first limit games of a most-recent-first history as raw rows.
func gameLogs(history []metrics.GameStat, limit int) []GameLog {
	if limit < len(history) {
		history = history[:limit]
	}

	logs := make([]GameLog, 0, len(history))
	for _, g := range history {
		gl := GameLog{
			Date:     g.Date.Format(DateLayout),
			Opponent: g.Opponent,
			Minutes:  g.Minutes,
			Points:   g.Points,
			Rebounds: g.Rebounds,
			Assists:  g.Assists,
		}
		if pra, ok := metrics.MarketPointsReboundsAssists.Resolve(g); ok {
			gl.PointsReboundsAssists = metrics.Round1(&pra)
		}
		logs = append(logs, gl)
	}
	return logs
}
