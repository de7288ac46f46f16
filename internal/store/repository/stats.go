package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fortuna/propscope/internal/store"
)

// StatsRepository handles player game stats data access
type StatsRepository struct {
	db *store.Database
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *store.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetPlayerHistory returns every box score of a player dated on or before
// asOf, across seasons, most recent first, with the opponent's abbreviation.
func (r *StatsRepository) GetPlayerHistory(ctx context.Context, playerID int, asOf time.Time) ([]*store.PlayerGameStats, error) {
	query := `
		SELECT
			pgs.id, pgs.game_id, pgs.player_id, pgs.team_id,
			pgs.minutes, pgs.points, pgs.rebounds, pgs.assists,
			g.game_date,
			opp.abbreviation
		FROM player_game_stats pgs
		JOIN games g ON pgs.game_id = g.game_id
		LEFT JOIN teams opp ON opp.team_id = CASE WHEN pgs.team_id = g.home_team_id THEN g.away_team_id ELSE g.home_team_id END
		WHERE pgs.player_id = $1
		  AND g.game_date <= $2
		ORDER BY g.game_date DESC, g.game_id DESC
	`

	rows, err := r.db.DB().QueryContext(ctx, query, playerID, asOf.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("querying player history: %w", err)
	}
	defer rows.Close()

	var history []*store.PlayerGameStats
	for rows.Next() {
		s := &store.PlayerGameStats{}
		var opp sql.NullString
		if err := rows.Scan(
			&s.ID, &s.GameID, &s.PlayerID, &s.TeamID,
			&s.Minutes, &s.Points, &s.Rebounds, &s.Assists,
			&s.GameDate,
			&opp,
		); err != nil {
			return nil, fmt.Errorf("scanning player history: %w", err)
		}
		s.Opponent = opp.String
		history = append(history, s)
	}

	return history, rows.Err()
}
