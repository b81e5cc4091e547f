package scrape

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	// UserAgent for requests
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MinRequestInterval to prevent rate limiting
	MinRequestInterval = 2 * time.Second

	pageLoadTimeout = 45 * time.Second
)

// PageFetcher retrieves the rendered HTML of a page. Implemented by Session
// for real scraping and by test doubles in package tests.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Session is a headless-browser page fetcher with rate limiting. A dead
// underlying browser surfaces as ErrSessionLost; Reset tears the browser
// down and starts a fresh one.
type Session struct {
	mu          sync.Mutex
	lastRequest time.Time
	interval    time.Duration

	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewSession starts a headless browser allocator
func NewSession() (*Session, error) {
	s := &Session{
		interval: MinRequestInterval,
	}
	s.start()
	return s, nil
}

func (s *Session) start() {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(UserAgent),
	)

	s.allocCtx, s.cancel = chromedp.NewExecAllocator(context.Background(), opts...)
}

// Close releases the browser
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Reset tears down the current browser and starts a fresh one. Used after a
// fetch fails with ErrSessionLost.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.start()
	log.Printf("[scrape] browser session restarted")
}

// Fetch navigates to url and returns the rendered page HTML, enforcing the
// minimum interval between requests.
func (s *Session) Fetch(ctx context.Context, url string) (string, error) {
	s.mu.Lock()
	if !s.lastRequest.IsZero() {
		elapsed := time.Since(s.lastRequest)
		if elapsed < s.interval {
			wait := s.interval - elapsed
			s.mu.Unlock()
			log.Printf("[scrape] rate limiting: waiting %v before next request", wait)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			s.mu.Lock()
		}
	}
	allocCtx := s.allocCtx
	s.lastRequest = time.Now()
	s.mu.Unlock()

	if allocCtx == nil {
		return "", ErrSessionLost
	}

	html, err := fetchPage(ctx, allocCtx, url)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if isSessionErr(err) {
			return "", fmt.Errorf("%w: %v", ErrSessionLost, err)
		}
		return "", err
	}
	return html, nil
}

func fetchPage(ctx context.Context, allocCtx context.Context, url string) (string, error) {
	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, pageLoadTimeout)
	defer cancel()

	// Honor caller cancellation on top of the page timeout.
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-browserCtx.Done():
		}
	}()

	var htmlContent string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.Sleep(1*time.Second), // Allow JS to render
		chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp error: %w", err)
	}

	if htmlContent == "" {
		return "", fmt.Errorf("empty HTML content returned for %s", url)
	}

	return htmlContent, nil
}

// isSessionErr reports whether an error means the browser process itself is
// gone, as opposed to a slow or broken page.
func isSessionErr(err error) bool {
	msg := err.Error()
	for _, marker := range []string{
		"chrome failed to start",
		"websocket url timeout",
		"context canceled",
		"connection refused",
		"browser closed",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
