package feed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/910cpr/ew2landers/internal/logger"
)

// Save writes the feed as indented JSON, creating parent directories as
// needed. The file is rewritten whole on every run.
func Save(path string, f *Feed) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling feed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating feed directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing feed: %w", err)
	}

	logger.Info("saved schedule feed", logger.Fields{
		"path":     path,
		"sessions": len(f.Sessions),
	})
	return nil
}

// Load reads a feed previously written by Save.
func Load(path string) (*Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feed: %w", err)
	}

	var f Feed
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}
	return &f, nil
}

// DecodeSessions extracts the session list from raw feed bytes. Two shapes
// are accepted: "sessions" as a top-level array, and "sessions" as an object
// wrapping a count plus the array under "sessions" or "items". Unknown
// shapes yield an error, never a panic.
func DecodeSessions(data []byte) ([]Session, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("parsing feed document: %w", err)
	}

	raw, ok := top["sessions"]
	if !ok {
		return nil, fmt.Errorf("feed document has no sessions field")
	}

	sessions, err := decodeSessionValue(raw)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func decodeSessionValue(raw json.RawMessage) ([]Session, error) {
	trimmed := firstByte(raw)

	if trimmed == '[' {
		var sessions []Session
		if err := json.Unmarshal(raw, &sessions); err != nil {
			return nil, fmt.Errorf("parsing session array: %w", err)
		}
		return sessions, nil
	}

	if trimmed == '{' {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, fmt.Errorf("parsing session wrapper: %w", err)
		}
		for _, key := range []string{"sessions", "items"} {
			if inner, ok := wrapper[key]; ok && firstByte(inner) == '[' {
				var sessions []Session
				if err := json.Unmarshal(inner, &sessions); err != nil {
					return nil, fmt.Errorf("parsing wrapped session array: %w", err)
				}
				return sessions, nil
			}
		}
		return nil, fmt.Errorf("session wrapper holds no array")
	}

	return nil, fmt.Errorf("unrecognized sessions shape")
}

func firstByte(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
