package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/user/soccer-extract-cli/event"
)

// RoutingMode selects the output directory layout.
type RoutingMode string

const (
	// RouteFlat groups output by half: <match>/{first_half,second_half}/{clips,frames}.
	RouteFlat RoutingMode = "flat"
	// RouteCategorized groups output by event category:
	// <match>/{clips,frames}/<category>.
	RouteCategorized RoutingMode = "categorized"
)

// ParseRoutingMode validates a routing mode string.
func ParseRoutingMode(s string) (RoutingMode, error) {
	switch RoutingMode(s) {
	case RouteFlat, RouteCategorized:
		return RoutingMode(s), nil
	}
	return "", fmt.Errorf("unknown routing mode %q (want %q or %q)", s, RouteFlat, RouteCategorized)
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeChars   = regexp.MustCompile(`[^a-z0-9_-]`)
)

// SanitizeCategory turns a raw category label into a filesystem-safe
// directory name: lowercase, "&" becomes "and", whitespace runs become
// single underscores, everything outside [a-z0-9_-] is stripped. An
// empty label, or one that empties out, maps to the canonical
// "unknown" category regardless of input casing.
func SanitizeCategory(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "&", "and")
	s = whitespaceRun.ReplaceAllString(s, "_")
	s = unsafeChars.ReplaceAllString(s, "")
	if s == "" {
		return event.UnknownCategory
	}
	return s
}

// Router resolves the clip and frame output directories for each job
// under one match's output base, creating them on first use.
type Router struct {
	mode RoutingMode
	base string
	made map[string]bool
}

// NewRouter returns a Router writing under base with the given layout.
func NewRouter(mode RoutingMode, base string) *Router {
	return &Router{mode: mode, base: base, made: make(map[string]bool)}
}

// Mode returns the router's layout mode.
func (r *Router) Mode() RoutingMode { return r.mode }

// FileCategory returns the category segment to embed in output
// filenames: the sanitized label in categorized mode, empty in flat
// mode (where the half directory already disambiguates).
func (r *Router) FileCategory(rawCategory string) string {
	if r.mode == RouteCategorized {
		return SanitizeCategory(rawCategory)
	}
	return ""
}

// Route returns the clip and frame directories for an event, creating
// them idempotently on first reference.
func (r *Router) Route(half int, rawCategory string) (clipDir, frameDir string, err error) {
	switch r.mode {
	case RouteCategorized:
		category := SanitizeCategory(rawCategory)
		clipDir = filepath.Join(r.base, "clips", category)
		frameDir = filepath.Join(r.base, "frames", category)
	default:
		clipDir = filepath.Join(r.base, HalfName(half), "clips")
		frameDir = filepath.Join(r.base, HalfName(half), "frames")
	}

	for _, dir := range []string{clipDir, frameDir} {
		if r.made[dir] {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", "", fmt.Errorf("create output directory: %w", err)
		}
		r.made[dir] = true
	}
	return clipDir, frameDir, nil
}

// HalfName returns the directory name for a half number.
func HalfName(half int) string {
	if half == 2 {
		return "second_half"
	}
	return "first_half"
}
