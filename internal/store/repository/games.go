package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fortuna/propscope/internal/store"
)

// GameRepository handles game data access
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

// GetByDate returns all games on a specific date
func (r *GameRepository) GetByDate(ctx context.Context, date time.Time) ([]*store.Game, error) {
	query := `
		SELECT game_id, external_id, game_date, season, home_team_id, away_team_id, status, created_at
		FROM games
		WHERE game_date = $1
		ORDER BY game_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("querying games by date: %w", err)
	}
	defer rows.Close()

	var games []*store.Game
	for rows.Next() {
		g := &store.Game{}
		if err := rows.Scan(
			&g.GameID, &g.ExternalID, &g.GameDate, &g.Season,
			&g.HomeTeamID, &g.AwayTeamID, &g.Status, &g.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, g)
	}

	return games, rows.Err()
}

// ListScheduledPlayers returns every active player whose team plays on date,
// with the opposing team's abbreviation. Rows come back grouped by game, then by name.
func (r *GameRepository) ListScheduledPlayers(ctx context.Context, date time.Time) ([]*store.ScheduledPlayer, error) {
	query := `SELECT ` + playerColumns + `,
			g.game_id,
			opp.abbreviation
		FROM games g
		JOIN players p ON p.team_id IN (g.home_team_id, g.away_team_id)
		LEFT JOIN teams t ON t.team_id = p.team_id
		JOIN teams opp ON opp.team_id = CASE WHEN p.team_id = g.home_team_id THEN g.away_team_id ELSE g.home_team_id END
		WHERE g.game_date = $1
		  AND p.is_active
		ORDER BY g.game_id, p.full_name
	`

	rows, err := r.db.DB().QueryContext(ctx, query, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("querying scheduled players: %w", err)
	}
	defer rows.Close()

	var out []*store.ScheduledPlayer
	for rows.Next() {
		sp := &store.ScheduledPlayer{}
		p := &sp.Player
		if err := rows.Scan(
			&p.PlayerID, &p.FullName, &p.TeamID, &p.Position, &p.Height,
			&p.Weight, &p.JerseyNumber, &p.HeadshotURL, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt, &p.TeamAbbreviation,
			&sp.GameID, &sp.Opponent,
		); err != nil {
			return nil, fmt.Errorf("scanning scheduled player: %w", err)
		}
		out = append(out, sp)
	}

	return out, rows.Err()
}
