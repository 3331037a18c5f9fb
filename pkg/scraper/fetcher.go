// Package scraper owns everything that touches the network or files on
// disk: the rate-limited HTTP fetcher, the league listing scraper and the
// squad-sheet PDF fallback.
package scraper

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const fetchAttempts = 3

// Client is a polite HTTP fetcher: requests are rate limited, carry a
// rotating browser user agent, and are retried with a growing pause on
// server errors and throttling responses. It satisfies the extraction
// core's Fetcher interface.
type Client struct {
	http       *http.Client
	limiter    *rate.Limiter
	userAgents []string
	uaIndex    atomic.Uint64
	retryDelay time.Duration
	log        *zap.SugaredLogger
}

// ClientConfig controls fetcher behaviour. Zero values get sane defaults.
type ClientConfig struct {
	Timeout        time.Duration
	RequestsPerMin int
	RetryDelay     time.Duration
	UserAgents     []string
	Logger         *zap.SugaredLogger
}

// NewClient builds a fetcher from cfg.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestsPerMin <= 0 {
		cfg.RequestsPerMin = 20
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 3 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	return &Client{
		http:       &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMin)/60.0), 1),
		userAgents: cfg.UserAgents,
		retryDelay: cfg.RetryDelay,
		log:        cfg.Logger,
	}
}

// Fetch downloads url and parses it into a document. Each attempt waits
// for the rate limiter first; 429 and 5xx responses are retried with a
// delay that grows per attempt.
func (c *Client) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "waiting for rate limiter")
		}

		doc, retryable, err := c.fetchOnce(ctx, url)
		if err == nil {
			return doc, nil
		}
		lastErr = err
		if !retryable {
			break
		}

		c.log.Warnw("fetch attempt failed", "url", url, "attempt", attempt, "error", err)
		if attempt < fetchAttempts {
			select {
			case <-time.After(c.retryDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, errors.Wrapf(lastErr, "fetching %s", url)
}

func (c *Client) fetchOnce(ctx context.Context, url string) (doc *goquery.Document, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, errors.Wrap(err, "building request")
	}
	req.Header.Set("User-Agent", c.nextUserAgent())
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, errors.Newf("status %d", resp.StatusCode)
	default:
		return nil, false, errors.Newf("status %d", resp.StatusCode)
	}

	doc, err = goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, false, errors.Wrap(err, "parsing response body")
	}
	return doc, false, nil
}

// nextUserAgent rotates through the configured agent list.
func (c *Client) nextUserAgent() string {
	if len(c.userAgents) == 0 {
		return "Mozilla/5.0 (compatible; scout-backend/1.0)"
	}
	i := c.uaIndex.Add(1)
	return c.userAgents[int(i-1)%len(c.userAgents)]
}
