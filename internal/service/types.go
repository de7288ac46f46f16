package service

import (
	"errors"

	"github.com/fortuna/propscope/internal/metrics"
)

// DateLayout is the wire format for every date in a response.
const DateLayout = "2006-01-02"

// ErrPlayerNotFound is returned when a player id is unknown to the data source.
var ErrPlayerNotFound = errors.New("player not found")

// PlayerIdentity is the part of a player every view shows
type PlayerIdentity struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"position"`
	ImageURL string `json:"image_url"`
}

// PlayerProfile adds the bio fields shown on the detail screen
type PlayerProfile struct {
	PlayerIdentity
	Height       *string `json:"height"`
	Weight       *int    `json:"weight"`
	JerseyNumber *string `json:"jersey_number"`
}

// SlatePlayer is a player with a game on the slate date
type SlatePlayer struct {
	PlayerIdentity
	Opponent string `json:"opponent"`
}

// MarketComparison is one book's line against the player's averages.
// Every average and comparison is rounded to one decimal; absent values stay nil.
type MarketComparison struct {
	Market        metrics.Market `json:"market"`
	LineValue     float64        `json:"line_value"`
	Book          string         `json:"book"`
	SeasonAvg     *float64       `json:"season_avg"`
	Last5Avg      *float64       `json:"last5_avg"`
	Last10Avg     *float64       `json:"last10_avg"`
	DeltaVsSeason *float64       `json:"delta_vs_season"`
	DeltaVsLast5  *float64       `json:"delta_vs_last5"`
	PctVsSeason   *float64       `json:"pct_vs_season"`
	PctVsLast5    *float64       `json:"pct_vs_last5"`
}

// SlateEntry is one player on the slate. Markets is empty, never nil, when no book covers them.
type SlateEntry struct {
	SlatePlayer
	Markets []MarketComparison `json:"markets"`
}

// Slate is every player with a game on Date
type Slate struct {
	Date    string       `json:"date"`
	Players []SlateEntry `json:"players"`
}

// GameLog is one game's raw box score, not averaged
type GameLog struct {
	Date                  string   `json:"date"`
	Opponent              string   `json:"opponent"`
	Minutes               *float64 `json:"minutes"`
	Points                *float64 `json:"points"`
	Rebounds              *float64 `json:"rebounds"`
	Assists               *float64 `json:"assists"`
	PointsReboundsAssists *float64 `json:"points_rebounds_assists"`
}

// PlayerDetail is the full profile for one player as of a date
type PlayerDetail struct {
	Player          PlayerProfile       `json:"player"`
	AsOf            string              `json:"as_of"`
	SeasonAverages  map[string]*float64 `json:"season_averages"`
	RollingAverages map[string]*float64 `json:"rolling_averages"`
	GameLogs        []GameLog           `json:"game_logs"`
	CurrentLines    []MarketComparison  `json:"current_lines"`
}
