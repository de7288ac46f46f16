package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/fortuna/propscope/internal/media"
	"github.com/fortuna/propscope/internal/metrics"
	"github.com/fortuna/propscope/internal/store"
	"github.com/fortuna/propscope/internal/store/repository"
)

// DataSource is everything the assemblers read. Implementations own any
// read-consistency guarantees; the assemblers only use what they are handed.
type DataSource interface {
	// ListSlatePlayers returns the players with a game on date, in display order.
	ListSlatePlayers(ctx context.Context, date time.Time) ([]SlatePlayer, error)
	// GetPlayer returns ErrPlayerNotFound for an unknown id.
	GetPlayer(ctx context.Context, playerID int) (PlayerProfile, error)
	// GetGameStats returns the player's games on or before asOf.
	GetGameStats(ctx context.Context, playerID int, asOf time.Time) ([]metrics.GameStat, error)
	// GetLines returns the lines dated date, keyed by player id.
	GetLines(ctx context.Context, playerIDs []int, date time.Time) (map[int][]metrics.Line, error)
}

// StoreSource reads from the PostgreSQL repositories
type StoreSource struct {
	gameRepo   *repository.GameRepository
	playerRepo *repository.PlayerRepository
	statsRepo  *repository.StatsRepository
	lineRepo   *repository.LineRepository
}

// NewStoreSource creates a DataSource backed by db
func NewStoreSource(db *store.Database) *StoreSource {
	return &StoreSource{
		gameRepo:   repository.NewGameRepository(db),
		playerRepo: repository.NewPlayerRepository(db),
		statsRepo:  repository.NewStatsRepository(db),
		lineRepo:   repository.NewLineRepository(db),
	}
}

// ListSlatePlayers implements DataSource
func (s *StoreSource) ListSlatePlayers(ctx context.Context, date time.Time) ([]SlatePlayer, error) {
	scheduled, err := s.gameRepo.ListScheduledPlayers(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("fetching scheduled players: %w", err)
	}

	players := make([]SlatePlayer, 0, len(scheduled))
	for _, sp := range scheduled {
		players = append(players, SlatePlayer{
			PlayerIdentity: identity(&sp.Player),
			Opponent:       sp.Opponent,
		})
	}
	return players, nil
}

// GetPlayer implements DataSource
func (s *StoreSource) GetPlayer(ctx context.Context, playerID int) (PlayerProfile, error) {
	p, err := s.playerRepo.GetByID(ctx, playerID)
	if errors.Is(err, store.ErrNotFound) {
		return PlayerProfile{}, fmt.Errorf("%w: %d", ErrPlayerNotFound, playerID)
	}
	if err != nil {
		return PlayerProfile{}, fmt.Errorf("fetching player: %w", err)
	}

	return PlayerProfile{
		PlayerIdentity: identity(p),
		Height:         nullString(p.Height),
		Weight:         nullInt(p.Weight),
		JerseyNumber:   nullString(p.JerseyNumber),
	}, nil
}

// GetGameStats implements DataSource. History is limited to asOf's season.
func (s *StoreSource) GetGameStats(ctx context.Context, playerID int, asOf time.Time) ([]metrics.GameStat, error) {
	rows, err := s.statsRepo.GetPlayerHistory(ctx, playerID, asOf)
	if err != nil {
		return nil, fmt.Errorf("fetching game stats: %w", err)
	}

	games := make([]metrics.GameStat, 0, len(rows))
	for _, r := range rows {
		games = append(games, metrics.GameStat{
			Date:     r.GameDate,
			Opponent: r.Opponent,
			Minutes:  nullFloat(r.Minutes),
			Points:   nullFloat(r.Points),
			Rebounds: nullFloat(r.Rebounds),
			Assists:  nullFloat(r.Assists),
		})
	}
	return games, nil
}

// GetLines implements DataSource. Rows naming a market outside the
// enumeration are skipped with a warning.
func (s *StoreSource) GetLines(ctx context.Context, playerIDs []int, date time.Time) (map[int][]metrics.Line, error) {
	rows, err := s.lineRepo.ListForPlayers(ctx, playerIDs, date)
	if err != nil {
		return nil, fmt.Errorf("fetching lines: %w", err)
	}

	out := make(map[int][]metrics.Line, len(playerIDs))
	for _, r := range rows {
		m, err := metrics.ParseMarket(r.Market)
		if err != nil {
			log.Printf("⚠️  Skipping line %d: %v", r.ID, err)
			continue
		}
		out[r.PlayerID] = append(out[r.PlayerID], metrics.Line{
			Market: m,
			Value:  r.LineValue,
			Book:   r.Book,
			Date:   r.LineDate,
		})
	}
	return out, nil
}

func identity(p *store.Player) PlayerIdentity {
	return PlayerIdentity{
		PlayerID: p.PlayerID,
		Name:     p.FullName,
		Team:     p.TeamAbbreviation.String,
		Position: p.Position.String,
		ImageURL: media.Resolve(p.PlayerID, p.HeadshotURL.String),
	}
}

// nullFloat treats NULL and non-finite values alike as not recorded
func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid || math.IsNaN(v.Float64) || math.IsInf(v.Float64, 0) {
		return nil
	}
	f := v.Float64
	return &f
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullInt(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int32)
	return &i
}
