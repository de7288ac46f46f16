package board

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fortuna/propscope/internal/publisher"
	"github.com/fortuna/propscope/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fileFetcher struct {
	path string
	err  error
}

func (f fileFetcher) FetchBoard(context.Context, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := os.ReadFile(f.path)
	return string(b), err
}

type rosterLookup map[string]int

func (r rosterLookup) FindByName(_ context.Context, name, _ string) (*store.Player, error) {
	id, ok := r[strings.ToLower(name)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &store.Player{PlayerID: id, FullName: name}, nil
}

type capturePublisher struct {
	events []publisher.LineEvent
}

func (c *capturePublisher) PublishLines(_ context.Context, events []publisher.LineEvent) error {
	c.events = append(c.events, events...)
	return nil
}

func TestIngest(t *testing.T) {
	roster := rosterLookup{"lebron james": 2544, "stephen curry": 201939}
	pub := &capturePublisher{}
	ing := NewIngester(fileFetcher{path: "testdata/board.html"}, roster, pub, "https://example.test/nba")

	date := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	n, err := ing.Ingest(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.Len(t, pub.events, 3)
	assert.Equal(t, publisher.LineEvent{PlayerID: 2544, Market: "points", LineValue: 27.5, Book: "PrizePicks", Date: "2025-01-10"}, pub.events[0])
	assert.Equal(t, "points_rebounds_assists", pub.events[1].Market)
	assert.Equal(t, 201939, pub.events[2].PlayerID)
}

func TestIngest_FetchError(t *testing.T) {
	pub := &capturePublisher{}
	ing := NewIngester(fileFetcher{err: errors.New("timeout")}, rosterLookup{}, pub, "https://example.test/nba")

	_, err := ing.Ingest(context.Background(), time.Now())
	require.Error(t, err)
	assert.Empty(t, pub.events)
}
