// Package feed consumes prop line updates from a Redis stream and stores them.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/fortuna/propscope/internal/metrics"
	"github.com/fortuna/propscope/internal/publisher"
	"github.com/fortuna/propscope/internal/store"
	"github.com/redis/go-redis/v9"
)

// LineWriter stores one line
type LineWriter interface {
	Upsert(ctx context.Context, line *store.SportsbookLine) error
}

// Notifier is told which players' lines changed for a date
type Notifier interface {
	NotifyLinesUpdated(date time.Time, playerIDs []int)
}

// Config holds stream consumer settings
type Config struct {
	Stream     string
	Group      string
	ConsumerID string
	BatchSize  int64
	Block      time.Duration
}

// DefaultConfig returns the settings used when none are given
func DefaultConfig() Config {
	return Config{
		Stream:     publisher.DefaultLinesStream,
		Group:      "propscope",
		ConsumerID: "propscope-1",
		BatchSize:  100,
		Block:      time.Second,
	}
}

// Consumer reads line events with a consumer group, upserts them and acks
type Consumer struct {
	redis  *redis.Client
	lines  LineWriter
	notify Notifier
	cfg    Config
}

// NewConsumer creates a consumer. notify may be nil.
func NewConsumer(client *redis.Client, lines LineWriter, notify Notifier, cfg Config) *Consumer {
	def := DefaultConfig()
	if cfg.Stream == "" {
		cfg.Stream = def.Stream
	}
	if cfg.Group == "" {
		cfg.Group = def.Group
	}
	if cfg.ConsumerID == "" {
		cfg.ConsumerID = def.ConsumerID
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.Block <= 0 {
		cfg.Block = def.Block
	}

	return &Consumer{
		redis:  client,
		lines:  lines,
		notify: notify,
		cfg:    cfg,
	}
}

// Start consumes until ctx is done
func (c *Consumer) Start(ctx context.Context) error {
	if err := c.createGroup(ctx); err != nil {
		return err
	}
	log.Printf("✓ Line feed consumer started (stream=%s group=%s)", c.cfg.Stream, c.cfg.Group)

	for {
		if ctx.Err() != nil {
			log.Println("→ Line feed consumer stopped")
			return nil
		}

		streams, err := c.redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.cfg.Group,
			Consumer: c.cfg.ConsumerID,
			Streams:  []string{c.cfg.Stream, ">"},
			Count:    c.cfg.BatchSize,
			Block:    c.cfg.Block,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			log.Printf("⚠️  Stream read error (%s): %v", c.cfg.Stream, err)
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}

		for _, s := range streams {
			acks := c.apply(ctx, s.Messages)
			if len(acks) == 0 {
				continue
			}
			if err := c.redis.XAck(ctx, c.cfg.Stream, c.cfg.Group, acks...).Err(); err != nil {
				log.Printf("⚠️  Failed to ack %d messages: %v", len(acks), err)
			}
		}
	}
}

func (c *Consumer) createGroup(ctx context.Context) error {
	err := c.redis.XGroupCreateMkStream(ctx, c.cfg.Stream, c.cfg.Group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("creating consumer group: %w", err)
	}
	return nil
}

// apply stores each message and returns the ids safe to ack. Malformed
// messages are acked so they are not redelivered; failed writes are not.
func (c *Consumer) apply(ctx context.Context, msgs []redis.XMessage) []string {
	acks := make([]string, 0, len(msgs))
	updated := make(map[time.Time]map[int]bool)

	for _, msg := range msgs {
		line, err := DecodeLine(msg.Values)
		if err != nil {
			log.Printf("⚠️  Dropping message %s: %v", msg.ID, err)
			acks = append(acks, msg.ID)
			continue
		}

		if err := c.lines.Upsert(ctx, line); err != nil {
			log.Printf("⚠️  Failed to store line from %s: %v", msg.ID, err)
			continue
		}

		acks = append(acks, msg.ID)
		if updated[line.LineDate] == nil {
			updated[line.LineDate] = make(map[int]bool)
		}
		updated[line.LineDate][line.PlayerID] = true
	}

	if c.notify != nil {
		for date, players := range updated {
			ids := make([]int, 0, len(players))
			for id := range players {
				ids = append(ids, id)
			}
			sort.Ints(ids)
			c.notify.NotifyLinesUpdated(date, ids)
		}
	}

	return acks
}

// DecodeLine validates a stream entry and converts it to a storable line.
// An unknown market is a data error here, not a programming error.
func DecodeLine(values map[string]interface{}) (*store.SportsbookLine, error) {
	data, ok := values["data"].(string)
	if !ok {
		return nil, errors.New("missing data field")
	}

	var ev publisher.LineEvent
	if err := json.Unmarshal([]byte(data), &ev); err != nil {
		return nil, fmt.Errorf("decoding line event: %w", err)
	}

	if ev.PlayerID <= 0 {
		return nil, fmt.Errorf("invalid player id %d", ev.PlayerID)
	}

	market, err := metrics.ParseMarket(ev.Market)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", ev.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", ev.Date, err)
	}

	book := strings.TrimSpace(ev.Book)
	if book == "" {
		book = store.DefaultBook
	}

	return &store.SportsbookLine{
		PlayerID:  ev.PlayerID,
		LineDate:  date,
		Market:    string(market),
		LineValue: ev.LineValue,
		Book:      book,
	}, nil
}
