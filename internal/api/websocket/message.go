package websocket

import "time"

// MessageTypeLinesUpdated tells clients to refetch the slate for a date
const MessageTypeLinesUpdated = "lines.updated"

// Message is the envelope for every server push
type Message struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// LinesUpdated names the date and players whose lines changed
type LinesUpdated struct {
	Date      string `json:"date"`
	PlayerIDs []int  `json:"player_ids"`
}
