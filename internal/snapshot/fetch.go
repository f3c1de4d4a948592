package snapshot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/910cpr/ew2landers/internal/logger"
)

const (
	// UserAgent identifies the scraper to the booking platform.
	UserAgent = "910cpr-ew2landers/1.0 (+https://www.910cpr.com)"
	// Timeout bounds a single fetch attempt.
	Timeout = 30 * time.Second
	// maxRetryTime bounds the whole retry loop during refresh.
	maxRetryTime = 2 * time.Minute
)

// Fetcher downloads a fresh schedule snapshot from the booking platform.
type Fetcher struct {
	client *http.Client
	url    string
}

// NewFetcher creates a fetcher for the given schedule URL.
func NewFetcher(url string) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: Timeout,
		},
		url: url,
	}
}

// Fetch downloads the schedule page, retrying transient failures with
// exponential backoff, and returns the raw markup.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	var body []byte

	operation := func() error {
		data, err := f.fetchOnce(ctx)
		if err != nil {
			logger.Warn("snapshot fetch attempt failed", logger.Fields{
				"url":   f.url,
				"error": err.Error(),
			})
			return err
		}
		body = data
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = maxRetryTime
	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, fmt.Errorf("fetching snapshot from %s: %w", f.url, err)
	}
	return body, nil
}

// FetchToFile downloads the schedule page and writes it to path, creating
// parent directories as needed.
func (f *Fetcher) FetchToFile(ctx context.Context, path string) error {
	body, err := f.Fetch(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	if err := os.WriteFile(path, body, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	logger.Info("saved schedule snapshot", logger.Fields{
		"url":   f.url,
		"path":  path,
		"bytes": len(body),
	})
	return nil
}

func (f *Fetcher) fetchOnce(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// Client errors will not heal on retry.
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	return io.ReadAll(resp.Body)
}
