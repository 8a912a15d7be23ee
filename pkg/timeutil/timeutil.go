package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// stampPattern matches match-clock timestamps like "45:12" or "45+2:10".
// The optional "+N" part is the stoppage-time annotation; seconds are
// always exactly two digits.
var stampPattern = regexp.MustCompile(`^(\d+)(?:\+(\d+))?:(\d{2})$`)

// ParseError indicates a timestamp string that does not follow the
// match-clock format.
type ParseError struct {
	Stamp string
}

func (e *ParseError) Error() string {
	if e.Stamp == "" {
		return "empty timestamp"
	}
	return fmt.Sprintf("unrecognized time format: %q", e.Stamp)
}

// ParseStamp converts a match-clock timestamp into total seconds.
// "45:12" parses to 2712; "45+2:10" parses to 2830 (stoppage minutes
// fold additively into the base minute count). Minutes may exceed 59.
func ParseStamp(stamp string) (float64, error) {
	trimmed := strings.TrimSpace(stamp)
	if trimmed == "" {
		return 0, &ParseError{Stamp: stamp}
	}

	m := stampPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return 0, &ParseError{Stamp: stamp}
	}

	minutes, _ := strconv.Atoi(m[1])
	added := 0
	if m[2] != "" {
		added, _ = strconv.Atoi(m[2])
	}
	seconds, _ := strconv.Atoi(m[3])

	return float64((minutes+added)*60 + seconds), nil
}

// Tag formats seconds as a sortable, filesystem-safe label "MM-SS.sss"
// (e.g. 750.0 becomes "12-30.000"). Minutes are not wrapped, so labels
// past the hour stay unambiguous.
func Tag(seconds float64) string {
	m := int(seconds) / 60
	s := seconds - float64(60*m)
	return fmt.Sprintf("%02d-%06.3f", m, s)
}

// StampTag parses a match-clock timestamp and returns its canonical label.
func StampTag(stamp string) (string, error) {
	sec, err := ParseStamp(stamp)
	if err != nil {
		return "", err
	}
	return Tag(sec), nil
}
