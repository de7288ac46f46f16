package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fortuna/propscope/internal/store"
	"github.com/redis/go-redis/v9"
)

// DefaultLinesStream carries prop line updates for NBA players
const DefaultLinesStream = "props.lines.basketball_nba"

// LineEvent is the JSON body of one stream entry's "data" field
type LineEvent struct {
	PlayerID  int     `json:"player_id"`
	Market    string  `json:"market"`
	LineValue float64 `json:"line_value"`
	Book      string  `json:"book,omitempty"`
	Date      string  `json:"date"`
}

// NewLineEvent converts a stored line to its stream form
func NewLineEvent(l store.SportsbookLine) LineEvent {
	return LineEvent{
		PlayerID:  l.PlayerID,
		Market:    l.Market,
		LineValue: l.LineValue,
		Book:      l.Book,
		Date:      l.LineDate.Format("2006-01-02"),
	}
}

// RedisPublisher publishes line events to a Redis stream
type RedisPublisher struct {
	client *redis.Client
	stream string
}

// NewRedisPublisher connects to redisURL and publishes to stream
func NewRedisPublisher(redisURL, stream string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return NewRedisStreamPublisher(client, stream), nil
}

// NewRedisStreamPublisher creates a publisher from an existing client
func NewRedisStreamPublisher(client *redis.Client, stream string) *RedisPublisher {
	if stream == "" {
		stream = DefaultLinesStream
	}
	return &RedisPublisher{
		client: client,
		stream: stream,
	}
}

// Client returns the underlying Redis client
func (rp *RedisPublisher) Client() *redis.Client {
	return rp.client
}

// Close closes the Redis connection
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// PublishLines appends every event to the stream in one pipeline
func (rp *RedisPublisher) PublishLines(ctx context.Context, events []LineEvent) error {
	if len(events) == 0 {
		return nil
	}

	pipe := rp.client.Pipeline()
	for _, ev := range events {
		values, err := EncodeLine(ev)
		if err != nil {
			return err
		}
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: rp.stream,
			Values: values,
		})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publishing %d lines: %w", len(events), err)
	}
	return nil
}

// EncodeLine builds the stream entry fields for ev
func EncodeLine(ev LineEvent) (map[string]interface{}, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encoding line event: %w", err)
	}

	return map[string]interface{}{
		"data":      string(data),
		"timestamp": time.Now().Unix(),
	}, nil
}
