package board

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	// UserAgent for board requests
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MinRequestInterval between two page loads
	MinRequestInterval = 2 * time.Second

	// BoardSelector is waited on before the page is captured
	BoardSelector = `table.props-board`
)

// Client renders a props board page in headless Chrome, with rate limiting
type Client struct {
	mu          sync.Mutex
	lastRequest time.Time
	interval    time.Duration

	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewClient starts a headless browser allocator
func NewClient() *Client {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Client{
		interval: MinRequestInterval,
		allocCtx: allocCtx,
		cancel:   cancel,
	}
}

// Close releases the browser
func (c *Client) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// FetchBoard returns the rendered HTML of the board at url
func (c *Client) FetchBoard(ctx context.Context, url string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.lastRequest.IsZero() {
		if wait := c.interval - time.Since(c.lastRequest); wait > 0 {
			log.Printf("Rate limiting: waiting %v before next request", wait)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
		}
	}

	html, err := c.fetch(ctx, url)
	c.lastRequest = time.Now()
	return html, err
}

func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	browserCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()

	// Propagate caller cancellation into the browser context.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var htmlContent string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(BoardSelector, chromedp.ByQuery),
		chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp error: %w", err)
	}

	if htmlContent == "" {
		return "", fmt.Errorf("empty HTML content returned")
	}
	return htmlContent, nil
}
