package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fortuna/propscope/internal/store"
	"github.com/lib/pq"
)

// LineRepository handles sportsbook line data access
type LineRepository struct {
	db *store.Database
}

// NewLineRepository creates a new line repository
func NewLineRepository(db *store.Database) *LineRepository {
	return &LineRepository{db: db}
}

// ListForPlayers returns the lines dated date for any of playerIDs,
// ordered by player, market, then book.
func (r *LineRepository) ListForPlayers(ctx context.Context, playerIDs []int, date time.Time) ([]*store.SportsbookLine, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(playerIDs))
	for i, id := range playerIDs {
		ids[i] = int64(id)
	}

	query := `
		SELECT id, player_id, line_date, market, line_value, book, created_at, updated_at
		FROM sportsbook_lines
		WHERE player_id = ANY($1)
		  AND line_date = $2
		ORDER BY player_id, market, book
	`

	rows, err := r.db.DB().QueryContext(ctx, query, pq.Array(ids), date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("querying lines: %w", err)
	}
	defer rows.Close()

	var lines []*store.SportsbookLine
	for rows.Next() {
		l := &store.SportsbookLine{}
		if err := rows.Scan(
			&l.ID, &l.PlayerID, &l.LineDate, &l.Market, &l.LineValue, &l.Book,
			&l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning line: %w", err)
		}
		lines = append(lines, l)
	}

	return lines, rows.Err()
}

// Upsert inserts a line or replaces the value already quoted by the same
// book for that player, market and date.
func (r *LineRepository) Upsert(ctx context.Context, line *store.SportsbookLine) error {
	if line.Book == "" {
		line.Book = store.DefaultBook
	}

	query := `
		INSERT INTO sportsbook_lines (player_id, line_date, market, line_value, book)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (player_id, market, book, line_date) DO UPDATE SET
			line_value = EXCLUDED.line_value,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		line.PlayerID, line.LineDate.Format("2006-01-02"), line.Market, line.LineValue, line.Book,
	).Scan(&line.ID, &line.CreatedAt, &line.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting line: %w", err)
	}

	return nil
}
