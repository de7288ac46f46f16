package board

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fortuna/propscope/internal/publisher"
	"github.com/fortuna/propscope/internal/store"
)

// Fetcher returns the HTML of a board page
type Fetcher interface {
	FetchBoard(ctx context.Context, url string) (string, error)
}

// PlayerLookup resolves a scraped name to a stored player
type PlayerLookup interface {
	FindByName(ctx context.Context, fullName, team string) (*store.Player, error)
}

// LinePublisher sends lines to the feed
type LinePublisher interface {
	PublishLines(ctx context.Context, events []publisher.LineEvent) error
}

// Ingester scrapes the board and publishes resolved lines
type Ingester struct {
	fetcher   Fetcher
	players   PlayerLookup
	publisher LinePublisher
	url       string
}

// NewIngester creates a board ingester for url
func NewIngester(fetcher Fetcher, players PlayerLookup, pub LinePublisher, url string) *Ingester {
	return &Ingester{
		fetcher:   fetcher,
		players:   players,
		publisher: pub,
		url:       url,
	}
}

// FetchLines scrapes the board and returns the lines for date whose player is known
func (i *Ingester) FetchLines(ctx context.Context, date time.Time) ([]publisher.LineEvent, error) {
	html, err := i.fetcher.FetchBoard(ctx, i.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch board: %w", err)
	}

	scraped, err := ParseBoard(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	events := make([]publisher.LineEvent, 0, len(scraped))
	unknown := 0
	for _, l := range scraped {
		p, err := i.players.FindByName(ctx, l.PlayerName, l.Team)
		if errors.Is(err, store.ErrNotFound) {
			unknown++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", l.PlayerName, err)
		}

		events = append(events, publisher.LineEvent{
			PlayerID:  p.PlayerID,
			Market:    string(l.Market),
			LineValue: l.Value,
			Book:      l.Book,
			Date:      date.Format("2006-01-02"),
		})
	}

	if unknown > 0 {
		log.Printf("  ⚠️  %d board rows named unknown players", unknown)
	}
	return events, nil
}

// Ingest scrapes the board for date and publishes the result
func (i *Ingester) Ingest(ctx context.Context, date time.Time) (int, error) {
	log.Printf("→ Scraping props board for %s", date.Format("2006-01-02"))

	events, err := i.FetchLines(ctx, date)
	if err != nil {
		return 0, err
	}

	if err := i.publisher.PublishLines(ctx, events); err != nil {
		return 0, err
	}

	log.Printf("✓ Published %d board lines", len(events))
	return len(events), nil
}
