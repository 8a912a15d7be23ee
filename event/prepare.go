package event

import (
	"sort"

	"github.com/user/soccer-extract-cli/pkg/timeutil"
)

// dedupKey identifies a duplicate event record. Two records are
// duplicates only when half, raw timestamp and category all match;
// different categories at the same timestamp stay distinct events.
type dedupKey struct {
	half     int
	rawStamp string
	category string
}

// Dedupe collapses duplicate events, keeping the first occurrence of
// each (half, timestamp, category) triple in its original position.
func Dedupe(events []Event) []Event {
	seen := make(map[dedupKey]bool, len(events))
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		key := dedupKey{half: ev.Half, rawStamp: ev.RawStamp, category: ev.Category}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ev)
	}
	return out
}

// SortByTime orders events ascending by parsed seconds. The sort is
// stable: events at identical times keep their first-seen relative order.
func SortByTime(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Seconds < events[j].Seconds
	})
}

// Prepare turns one half's raw event records into the chronological
// processing order: dedupe, parse each timestamp, then stable-sort by
// time. Events whose timestamp fails to parse are returned separately
// so the caller can log and count them; they never reach extraction.
func Prepare(events []Event) (ready, malformed []Event) {
	deduped := Dedupe(events)

	ready = make([]Event, 0, len(deduped))
	for _, ev := range deduped {
		sec, err := timeutil.ParseStamp(ev.RawStamp)
		if err != nil {
			malformed = append(malformed, ev)
			continue
		}
		ev.Seconds = sec
		ready = append(ready, ev)
	}

	SortByTime(ready)
	return ready, malformed
}
