// Package match resolves match folders by filename convention and
// drives the batch extraction across them.
package match

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Match binds one match folder to its commentary JSON and its two
// half videos.
type Match struct {
	Folder     string
	Name       string
	JSONPath   string
	Half1Video string
	Half2Video string
}

// ResolutionError indicates a match folder that cannot be processed:
// missing commentary JSON or a missing half video.
type ResolutionError struct {
	Folder string
	Reason string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("match %s: %s", filepath.Base(e.Folder), e.Reason)
}

// Discover returns the match folders directly under the project root,
// sorted by name. Only one level of subdirectories is considered.
func Discover(projectRoot string) ([]string, error) {
	entries, err := os.ReadDir(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("read project folder: %w", err)
	}

	var folders []string
	for _, e := range entries {
		if e.IsDir() {
			folders = append(folders, filepath.Join(projectRoot, e.Name()))
		}
	}
	sort.Strings(folders)
	return folders, nil
}

// Resolve locates the commentary JSON and the two half videos inside a
// match folder. Multiple JSON files produce a warning and the first
// (sorted) one wins; a missing JSON or half video fails the match.
// Returned warnings are for the caller to log.
func Resolve(folder string) (*Match, []string, error) {
	var warnings []string

	jsons, err := globSorted(folder, "*.json")
	if err != nil {
		return nil, nil, err
	}
	if len(jsons) == 0 {
		return nil, nil, &ResolutionError{Folder: folder, Reason: "no JSON file found"}
	}
	if len(jsons) > 1 {
		warnings = append(warnings, fmt.Sprintf("multiple JSON files found, using %s", filepath.Base(jsons[0])))
	}

	half1, err := globSorted(folder, "*_1.mkv")
	if err != nil {
		return nil, nil, err
	}
	if len(half1) == 0 {
		return nil, nil, &ResolutionError{Folder: folder, Reason: "no first half video (*_1.mkv) found"}
	}

	half2, err := globSorted(folder, "*_2.mkv")
	if err != nil {
		return nil, nil, err
	}
	if len(half2) == 0 {
		return nil, nil, &ResolutionError{Folder: folder, Reason: "no second half video (*_2.mkv) found"}
	}

	return &Match{
		Folder:     folder,
		Name:       filepath.Base(strings.TrimSuffix(folder, string(filepath.Separator))),
		JSONPath:   jsons[0],
		Half1Video: half1[0],
		Half2Video: half2[0],
	}, warnings, nil
}

func globSorted(folder, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(folder, pattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
