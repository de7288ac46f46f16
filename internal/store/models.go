package store

import (
	"database/sql"
	"time"
)

// DefaultBook labels a line whose source did not name one
const DefaultBook = "PrizePicks"

// Team represents an NBA franchise
type Team struct {
	TeamID       int            `json:"team_id" db:"team_id"`
	ExternalID   sql.NullString `json:"external_id,omitempty" db:"external_id"`
	Abbreviation string         `json:"abbreviation" db:"abbreviation"`
	FullName     string         `json:"full_name" db:"full_name"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// Player represents a rostered player. PlayerID is the stats provider's id.
type Player struct {
	PlayerID     int            `json:"player_id" db:"player_id"`
	FullName     string         `json:"full_name" db:"full_name"`
	TeamID       sql.NullInt32  `json:"team_id,omitempty" db:"team_id"`
	Position     sql.NullString `json:"position,omitempty" db:"position"`
	Height       sql.NullString `json:"height,omitempty" db:"height"`
	Weight       sql.NullInt32  `json:"weight,omitempty" db:"weight"`
	JerseyNumber sql.NullString `json:"jersey_number,omitempty" db:"jersey_number"`
	HeadshotURL  sql.NullString `json:"headshot_url,omitempty" db:"headshot_url"`
	IsActive     bool           `json:"is_active" db:"is_active"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`

	// Joined from teams, not a players column
	TeamAbbreviation sql.NullString `json:"team,omitempty" db:"-"`
}

// Game represents one scheduled or completed NBA game
type Game struct {
	GameID     int            `json:"game_id" db:"game_id"`
	ExternalID sql.NullString `json:"external_id,omitempty" db:"external_id"`
	GameDate   time.Time      `json:"game_date" db:"game_date"`
	Season     int            `json:"season" db:"season"`
	HomeTeamID int            `json:"home_team_id" db:"home_team_id"`
	AwayTeamID int            `json:"away_team_id" db:"away_team_id"`
	Status     string         `json:"status" db:"status"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}

// PlayerGameStats is one player's box score for one game. A NULL stat was not recorded.
type PlayerGameStats struct {
	ID       int             `json:"id" db:"id"`
	GameID   int             `json:"game_id" db:"game_id"`
	PlayerID int             `json:"player_id" db:"player_id"`
	TeamID   sql.NullInt32   `json:"team_id,omitempty" db:"team_id"`
	Minutes  sql.NullFloat64 `json:"minutes,omitempty" db:"minutes"`
	Points   sql.NullFloat64 `json:"points,omitempty" db:"points"`
	Rebounds sql.NullFloat64 `json:"rebounds,omitempty" db:"rebounds"`
	Assists  sql.NullFloat64 `json:"assists,omitempty" db:"assists"`

	// Joined from games and teams
	GameDate time.Time `json:"game_date" db:"-"`
	Opponent string    `json:"opponent" db:"-"`
}

// SportsbookLine is one book's prop line for a player, market and date
type SportsbookLine struct {
	ID        int       `json:"id" db:"id"`
	PlayerID  int       `json:"player_id" db:"player_id"`
	LineDate  time.Time `json:"line_date" db:"line_date"`
	Market    string    `json:"market" db:"market"`
	LineValue float64   `json:"line_value" db:"line_value"`
	Book      string    `json:"book" db:"book"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ScheduledPlayer is a player with a game on a given date and the team they face
type ScheduledPlayer struct {
	Player
	GameID   int    `json:"game_id"`
	Opponent string `json:"opponent"`
}
