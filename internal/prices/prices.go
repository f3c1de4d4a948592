// Package prices enriches sessions with display prices scraped from the
// booking platform's per-session registration pages.
//
// Price lookups are best effort: a session whose page cannot be fetched, or
// whose page shows no price, simply stays unpriced. The build never fails
// over prices.
package prices

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/910cpr/ew2landers/internal/logger"
	"github.com/910cpr/ew2landers/internal/schedule"
)

// priceRe matches the first dollar amount on a registration page.
var priceRe = regexp.MustCompile(`\$\d+(?:\.\d{2})?`)

const (
	requestTimeout = 20 * time.Second
	// throttle spaces out registration-page requests; the booking platform
	// is a shared production system.
	throttle = 500 * time.Millisecond
)

// Enricher fills in session prices, consulting a TTL cache before hitting
// the network.
type Enricher struct {
	client *http.Client
	cache  *Cache
	sleep  func(time.Duration)
}

// NewEnricher creates an enricher around the given cache.
func NewEnricher(cache *Cache) *Enricher {
	return &Enricher{
		client: &http.Client{Timeout: requestTimeout},
		cache:  cache,
		sleep:  time.Sleep,
	}
}

// Enrich sets Price on every session it can price. Returns how many sessions
// got a price and how many lookups hit the network.
func (e *Enricher) Enrich(ctx context.Context, sessions []*schedule.Session) (priced, fetched int) {
	for _, sess := range sessions {
		if ctx.Err() != nil {
			return priced, fetched
		}

		if price, ok := e.cache.Get(sess.EnrollmentID); ok {
			if price != "" {
				sess.Price = price
				priced++
			}
			continue
		}

		price, err := e.scrape(ctx, sess.RegistrationURL)
		fetched++
		e.sleep(throttle)
		if err != nil {
			logger.Warn("price lookup failed", logger.Fields{
				"session": sess.EnrollmentID,
				"error":   err.Error(),
			})
			logger.IncrCounter("prices.lookup_failed")
			continue
		}

		// Cache misses too, so a page with no visible price is not
		// re-fetched every run.
		e.cache.Set(sess.EnrollmentID, price)
		if price != "" {
			sess.Price = price
			priced++
		}
	}
	return priced, fetched
}

// ApplyCached sets Price from cache entries only, with no network traffic.
// The build command uses this; the prices command refreshes the cache.
func ApplyCached(cache *Cache, sessions []*schedule.Session) int {
	priced := 0
	for _, sess := range sessions {
		if price, ok := cache.Get(sess.EnrollmentID); ok && price != "" {
			sess.Price = price
			priced++
		}
	}
	return priced
}

func (e *Enricher) scrape(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching registration page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading registration page: %w", err)
	}

	return priceRe.FindString(string(body)), nil
}
