package prices

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// DefaultTTL is how long a cached price stays fresh.
const DefaultTTL = 7 * 24 * time.Hour

// Cache holds scraped prices keyed by enrollment id, with per-entry cache
// times so stale prices age out.
type Cache struct {
	Prices   map[string]string    `json:"prices"`
	CachedAt map[string]time.Time `json:"cached_at"`
	TTL      time.Duration        `json:"-"`
}

// NewCache creates an empty cache with the default TTL.
func NewCache() *Cache {
	return &Cache{
		Prices:   make(map[string]string),
		CachedAt: make(map[string]time.Time),
		TTL:      DefaultTTL,
	}
}

// Get returns the cached price for an enrollment id. The second return is
// false when the entry is missing or expired; an expired entry is removed.
func (c *Cache) Get(enrollmentID int) (string, bool) {
	key := strconv.Itoa(enrollmentID)

	price, exists := c.Prices[key]
	if !exists {
		return "", false
	}

	cachedTime, hasTime := c.CachedAt[key]
	if !hasTime || time.Since(cachedTime) > c.TTL {
		delete(c.Prices, key)
		delete(c.CachedAt, key)
		return "", false
	}

	return price, true
}

// Set stores a price, which may be empty for "page shows no price".
func (c *Cache) Set(enrollmentID int, price string) {
	key := strconv.Itoa(enrollmentID)
	c.Prices[key] = price
	c.CachedAt[key] = time.Now()
}

// CleanExpired removes expired entries and returns how many were dropped.
func (c *Cache) CleanExpired() int {
	removed := 0
	now := time.Now()

	for key, cachedTime := range c.CachedAt {
		if now.Sub(cachedTime) > c.TTL {
			delete(c.Prices, key)
			delete(c.CachedAt, key)
			removed++
		}
	}

	return removed
}

// Size returns the number of cached entries.
func (c *Cache) Size() int {
	return len(c.Prices)
}

// LoadCache reads a cache file; a missing file yields an empty cache.
func LoadCache(path string) (*Cache, error) {
	cache := NewCache()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading price cache: %w", err)
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("parsing price cache: %w", err)
	}
	cache.TTL = DefaultTTL
	return cache, nil
}

// SaveCache writes the cache, creating parent directories as needed.
func SaveCache(path string, c *Cache) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling price cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating price cache directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing price cache: %w", err)
	}
	return nil
}
