package widget

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/910cpr/ew2landers/internal/feed"
	"github.com/910cpr/ew2landers/internal/logger"
)

// Loader fetches the schedule feed once and holds the resulting sessions
// plus display state. A loader that reached the populated or empty state
// keeps serving that data; Refresh only retries after an error.
type Loader struct {
	client *http.Client
	url    string

	mu       sync.Mutex
	state    State
	inFlight bool
	sessions []feed.Session
	lastErr  error
}

// NewLoader creates a loader for the given feed URL.
func NewLoader(url string) *Loader {
	return &Loader{
		client: &http.Client{Timeout: 15 * time.Second},
		url:    url,
		state:  StateLoading,
	}
}

// State returns the current display state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Sessions returns the loaded sessions. Nil until a load succeeds.
func (l *Loader) Sessions() []feed.Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sessions
}

// Err returns the error behind the error state, nil otherwise.
func (l *Loader) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// Load fetches the feed and settles the display state. Calling Load when a
// fetch is already in flight, or after data arrived, is a no-op.
func (l *Loader) Load(ctx context.Context) {
	l.mu.Lock()
	if l.inFlight || l.state == StatePopulated || l.state == StateEmpty {
		l.mu.Unlock()
		return
	}
	l.inFlight = true
	l.state = StateLoading
	l.mu.Unlock()

	sessions, err := l.fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.inFlight = false

	if err != nil {
		l.state = StateError
		l.lastErr = err
		logger.Warn("schedule feed load failed", logger.Fields{
			"url":   l.url,
			"error": err.Error(),
		})
		return
	}

	l.lastErr = nil
	l.sessions = sessions
	if len(sessions) == 0 {
		l.state = StateEmpty
	} else {
		l.state = StatePopulated
	}
}

// Refresh is the entry point hosts call when the active filter changes.
// If data never loaded (initial state or a failed fetch) it triggers the
// fetch; once the widget has data, or while a fetch is in flight, Refresh
// does nothing. The host re-applies filtering and re-renders either way.
func (l *Loader) Refresh(ctx context.Context) {
	l.Load(ctx)
}

func (l *Loader) fetch(ctx context.Context) ([]feed.Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating feed request: %w", err)
	}
	// Host pages cache aggressively; the widget wants the current feed.
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading feed body: %w", err)
	}

	return feed.DecodeSessions(data)
}
