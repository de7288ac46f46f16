package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fortuna/propscope/internal/store"
)

// GameLister reports the games scheduled on a date
type GameLister interface {
	GetByDate(ctx context.Context, date time.Time) ([]*store.Game, error)
}

// LineIngester pulls lines for a date into the feed
type LineIngester interface {
	Ingest(ctx context.Context, date time.Time) (int, error)
}

// Orchestrator runs the periodic board scrape
type Orchestrator struct {
	games    GameLister
	ingester LineIngester
	config   *Config
	now      func() time.Time

	mu      sync.Mutex
	cancel  context.CancelFunc
	lastRun time.Time
	lastN   int
}

// Config holds scheduler configuration
type Config struct {
	ScrapeInterval time.Duration // Default: 15m
	MaxRetries     int           // Default: 3
	RetryDelay     time.Duration // Default: 5s
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		ScrapeInterval: 15 * time.Minute,
		MaxRetries:     3,
		RetryDelay:     5 * time.Second,
	}
}

// NewOrchestrator creates a scheduler for the given ingester
func NewOrchestrator(games GameLister, ingester LineIngester, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}
	if config.MaxRetries < 1 {
		config.MaxRetries = 1
	}

	return &Orchestrator{
		games:    games,
		ingester: ingester,
		config:   config,
		now:      time.Now,
	}
}

// Start scrapes immediately and then on every interval until ctx is done or Stop is called
func (o *Orchestrator) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	o.mu.Lock()
	o.cancel = cancel
	o.mu.Unlock()

	log.Printf("→ Board scrape scheduler started (interval: %v)", o.config.ScrapeInterval)

	ticker := time.NewTicker(o.config.ScrapeInterval)
	defer ticker.Stop()

	o.runLogged(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("→ Board scrape scheduler stopped")
			return
		case <-ticker.C:
			o.runLogged(ctx)
		}
	}
}

func (o *Orchestrator) runLogged(ctx context.Context) {
	if _, err := o.RunOnce(ctx); err != nil && ctx.Err() == nil {
		log.Printf("  ❌ Board scrape failed: %v", err)
	}
}

// RunOnce scrapes today's board if any game is scheduled, retrying on failure.
// It returns the number of lines published.
func (o *Orchestrator) RunOnce(ctx context.Context) (int, error) {
	today := o.now().UTC().Truncate(24 * time.Hour)

	games, err := o.games.GetByDate(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("listing games: %w", err)
	}
	if len(games) == 0 {
		log.Printf("  No games on %s, skipping board scrape", today.Format("2006-01-02"))
		return 0, nil
	}

	var n int
	for attempt := 1; attempt <= o.config.MaxRetries; attempt++ {
		n, err = o.ingester.Ingest(ctx, today)
		if err == nil {
			break
		}

		log.Printf("  ⚠️  Scrape attempt %d/%d failed: %v", attempt, o.config.MaxRetries, err)

		if attempt < o.config.MaxRetries {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(o.config.RetryDelay):
			}
		}
	}
	if err != nil {
		return 0, fmt.Errorf("all %d attempts failed: %w", o.config.MaxRetries, err)
	}

	o.mu.Lock()
	o.lastRun, o.lastN = o.now(), n
	o.mu.Unlock()
	return n, nil
}

// Stop cancels a running Start
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
	}
	log.Println("✓ Scheduler orchestrator stopped")
}

// GetStatus returns current scheduler status
func (o *Orchestrator) GetStatus() map[string]interface{} {
	o.mu.Lock()
	defer o.mu.Unlock()

	status := map[string]interface{}{
		"scrape_interval": o.config.ScrapeInterval.String(),
		"max_retries":     o.config.MaxRetries,
		"last_lines":      o.lastN,
	}
	if !o.lastRun.IsZero() {
		status["last_run"] = o.lastRun.Format(time.RFC3339)
	}
	return status
}
