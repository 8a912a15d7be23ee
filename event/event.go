// Package event models the timestamped match events that drive the
// extraction engine and handles reading them from commentary JSON files.
package event

import (
	"encoding/json"
	"fmt"
	"os"
)

// UnknownCategory is the canonical sentinel for events with a missing or
// empty category label.
const UnknownCategory = "unknown"

// Event is a single timestamped occurrence of interest in a match.
// RawStamp is the authoritative dedup/display key; Seconds is derived
// from it by parsing and is zero until Prepare runs.
type Event struct {
	RawStamp string
	Seconds  float64
	Category string
	Half     int
}

// file mirrors the commentary JSON structure.
type file struct {
	Comments []record `json:"comments"`
}

type record struct {
	TimeStamp    string `json:"time_stamp"`
	CommentsType string `json:"comments_type"`
	Half         int    `json:"half"`
}

// ReadFile loads events from a commentary JSON file. Records without a
// timestamp are dropped; a missing category maps to UnknownCategory.
// File order is preserved.
func ReadFile(path string) ([]Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read event file: %w", err)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse event file %s: %w", path, err)
	}

	events := make([]Event, 0, len(f.Comments))
	for _, c := range f.Comments {
		if c.TimeStamp == "" {
			continue
		}
		category := c.CommentsType
		if category == "" {
			category = UnknownCategory
		}
		events = append(events, Event{
			RawStamp: c.TimeStamp,
			Category: category,
			Half:     c.Half,
		})
	}
	return events, nil
}

// SplitByHalf partitions events into first-half and second-half lists,
// preserving order. Events whose half is outside {1,2} are excluded;
// their count is returned so callers can report the drop instead of
// losing records silently.
func SplitByHalf(events []Event) (half1, half2 []Event, dropped int) {
	for _, ev := range events {
		switch ev.Half {
		case 1:
			half1 = append(half1, ev)
		case 2:
			half2 = append(half2, ev)
		default:
			dropped++
		}
	}
	return half1, half2, dropped
}
