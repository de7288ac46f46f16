package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/propscope/internal/store"
)

const playerColumns = `
	p.player_id, p.full_name, p.team_id, p.position, p.height, p.weight,
	p.jersey_number, p.headshot_url, p.is_active, p.created_at, p.updated_at,
	t.abbreviation`

// PlayerRepository handles player data access
type PlayerRepository struct {
	db *store.Database
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *store.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetByID finds a player by ID. It returns store.ErrNotFound for an unknown id.
func (r *PlayerRepository) GetByID(ctx context.Context, playerID int) (*store.Player, error) {
	query := `SELECT ` + playerColumns + `
		FROM players p
		LEFT JOIN teams t ON t.team_id = p.team_id
		WHERE p.player_id = $1
	`

	player, err := scanPlayer(r.db.DB().QueryRowContext(ctx, query, playerID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player %d: %w", playerID, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player: %w", err)
	}

	return player, nil
}

// FindByName resolves a player by full name, case-insensitively. When the
// team abbreviation is non-empty it must match as well.
func (r *PlayerRepository) FindByName(ctx context.Context, fullName, team string) (*store.Player, error) {
	query := `SELECT ` + playerColumns + `
		FROM players p
		LEFT JOIN teams t ON t.team_id = p.team_id
		WHERE LOWER(p.full_name) = LOWER($1)
		  AND ($2 = '' OR t.abbreviation = UPPER($2))
		ORDER BY p.is_active DESC, p.player_id
		LIMIT 1
	`

	player, err := scanPlayer(r.db.DB().QueryRowContext(ctx, query, fullName, team))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player %q: %w", fullName, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player by name: %w", err)
	}

	return player, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (*store.Player, error) {
	player := &store.Player{}
	err := row.Scan(
		&player.PlayerID, &player.FullName, &player.TeamID, &player.Position, &player.Height,
		&player.Weight, &player.JerseyNumber, &player.HeadshotURL, &player.IsActive,
		&player.CreatedAt, &player.UpdatedAt, &player.TeamAbbreviation,
	)
	if err != nil {
		return nil, err
	}
	return player, nil
}
