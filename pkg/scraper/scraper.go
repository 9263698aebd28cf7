package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog/log"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultTimeout   = 10 * time.Second
)

var (
	ErrFetch   = errors.New("fetch failed")
	ErrNoPrice = errors.New("no price found on page")
)

// timeout <= 0 uses DefaultTimeout, an empty userAgent uses DefaultUserAgent.
func NewScraper(userAgent string, timeout time.Duration) Scraper {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	s := Scraper{
		colly: colly.NewCollector(
			colly.UserAgent(userAgent),
			// the same product page is fetched on every check
			colly.AllowURLRevisit(),
		),
	}
	s.colly.DisableCookies()
	s.colly.SetRequestTimeout(timeout)
	// only 4xx and 5xx count as failures, checked in Fetch
	s.colly.ParseHTTPErrorResponse = true

	return s
}

// Fetch downloads url and returns the raw markup. Network errors, timeouts and
// responses with status 400 or above are all reported as ErrFetch.
func (s Scraper) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFetch, url, err)
	}

	c := s.colly.Clone()

	var body []byte
	status := 0

	c.OnRequest(func(r *colly.Request) {
		log.Debug().Str("url", r.URL.String()).Msg("visiting")
	})

	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})

	c.OnError(func(r *colly.Response, err error) {
		status = r.StatusCode
		log.Debug().Err(err).Str("url", url).Int("status", r.StatusCode).Msg("request failed")
	})

	if err := c.Visit(url); err != nil {
		if status != 0 {
			return "", fmt.Errorf("%w: %s: status %d: %v", ErrFetch, url, status, err)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrFetch, url, err)
	}
	if status >= http.StatusBadRequest {
		log.Debug().Str("url", url).Int("status", status).Msg("request failed")
		return "", fmt.Errorf("%w: %s: status %d: %s", ErrFetch, url, status, http.StatusText(status))
	}

	log.Debug().Str("url", url).Int("status", status).Int("bytes", len(body)).Msg("fetched")
	return string(body), nil
}

// Fetcher returns the raw markup of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ScrapePrice fetches url with f and extracts its price. The error wraps
// ErrFetch or ErrNoPrice.
func ScrapePrice(ctx context.Context, f Fetcher, url string) (float64, error) {
	markup, err := f.Fetch(ctx, url)
	if err != nil {
		return 0, err
	}
	price, ok := Extract(markup, url)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoPrice, url)
	}
	return price, nil
}
