// Package json decodes the travel backend's wire payloads into wander
// domain types.
//
// Every successful response arrives wrapped in an envelope carrying a status
// code, a human-readable detail string, and the payload under "data". Chat
// endpoints are the exception: history and query replies are returned bare.
package json

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/wanderapp/wander"
)

// envelope is the backend's response wrapper.
type envelope struct {
	StatusCode int             `json:"status_code"`
	Detail     string          `json:"detail"`
	Data       json.RawMessage `json:"data"`
}

// DecodeDetail extracts the envelope's human-readable detail string.
func DecodeDetail(data []byte) (string, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", fmt.Errorf("unmarshal envelope: %w", err)
	}
	return env.Detail, nil
}

func unwrap(data []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("envelope has no data: %w", wander.ErrParse)
	}
	return env.Data, nil
}

// timeLayouts covers the backend's naive ISO-8601 timestamps alongside
// RFC 3339.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// parseTime parses a backend timestamp. Unparseable or absent values yield
// the zero time; timestamps are display metadata, never ordering keys.
func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
