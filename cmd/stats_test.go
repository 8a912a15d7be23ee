package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountFilesPerSubdir(t *testing.T) {
	root := t.TempDir()
	clips := filepath.Join(root, "clips")

	require.NoError(t, os.MkdirAll(filepath.Join(clips, "goal"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(clips, "card"), 0o755))
	for _, name := range []string{"a.mp4", "b.mp4", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(clips, "goal", name), []byte("x"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(clips, "card", "c.MP4"), []byte("x"), 0o644))
	// Loose files directly under the root are not counted.
	require.NoError(t, os.WriteFile(filepath.Join(clips, "loose.mp4"), []byte("x"), 0o644))

	counts, err := countFilesPerSubdir(clips, clipExts)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"goal": 2, "card": 1}, counts)
}

func TestCountFilesPerSubdirMissingRoot(t *testing.T) {
	counts, err := countFilesPerSubdir(filepath.Join(t.TempDir(), "nope"), clipExts)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestLabelUnion(t *testing.T) {
	labels := labelUnion(map[string]int{"goal": 1, "card": 2}, map[string]int{"corner": 3, "goal": 4})
	assert.Equal(t, []string{"card", "corner", "goal"}, labels)
}
