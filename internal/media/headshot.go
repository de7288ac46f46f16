// Package media builds image references for players.
package media

import "fmt"

const headshotBase = "https://cdn.nba.com/headshots/nba/latest"

// Headshot sizes served by the NBA CDN.
const (
	SizeLarge = "1040x760"
	SizeSmall = "260x190"
)

// HeadshotURL returns the CDN headshot for a player id at the given size.
// An unrecognized size falls back to SizeLarge.
func HeadshotURL(playerID int, size string) string {
	if size != SizeSmall {
		size = SizeLarge
	}
	return fmt.Sprintf("%s/%s/%d.png", headshotBase, size, playerID)
}

// Resolve prefers a stored URL and builds the CDN one otherwise.
func Resolve(playerID int, stored string) string {
	if stored != "" {
		return stored
	}
	return HeadshotURL(playerID, SizeLarge)
}
