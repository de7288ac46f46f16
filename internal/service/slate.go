package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fortuna/propscope/internal/metrics"
)

// SlateAssembler answers which players play on a date and how their lines
// compare with their averages.
type SlateAssembler struct {
	source DataSource
}

// NewSlateAssembler creates a slate assembler over src
func NewSlateAssembler(src DataSource) *SlateAssembler {
	return &SlateAssembler{source: src}
}

// GetSlate returns every player with a game on date, in the order the source
// lists them. A date with no games yields an empty, non-nil player list.
func (a *SlateAssembler) GetSlate(ctx context.Context, date time.Time) (*Slate, error) {
	day := metrics.Day(date)

	players, err := a.source.ListSlatePlayers(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("listing slate players: %w", err)
	}

	ids := make([]int, len(players))
	for i, p := range players {
		ids[i] = p.PlayerID
	}

	lines, err := a.source.GetLines(ctx, ids, day)
	if err != nil {
		return nil, fmt.Errorf("fetching slate lines: %w", err)
	}

	slate := &Slate{
		Date:    day.Format(DateLayout),
		Players: make([]SlateEntry, 0, len(players)),
	}

	for _, p := range players {
		entry := SlateEntry{SlatePlayer: p, Markets: []MarketComparison{}}

		if pl := lines[p.PlayerID]; len(pl) > 0 {
			games, err := a.source.GetGameStats(ctx, p.PlayerID, day)
			if err != nil {
				return nil, fmt.Errorf("fetching history for player %d: %w", p.PlayerID, err)
			}
			entry.Markets = compareLines(games, pl, day)
		}

		slate.Players = append(slate.Players, entry)
	}

	return slate, nil
}
