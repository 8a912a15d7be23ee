package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "runs.db")
	conn, err := Open(path)
	require.NoError(t, err)
	defer conn.Close()

	assert.FileExists(t, path)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	conn, err := Open(path)
	require.NoError(t, err)
	conn.Close()

	// Reopening runs migrations again without error.
	conn, err = Open(path)
	require.NoError(t, err)
	conn.Close()
}

func TestRunLifecycle(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, InsertRun(conn, "run-1", "/data/matches", "/data/out", "flat"))

	require.NoError(t, InsertClipJob(conn, ClipJob{
		RunID:         "run-1",
		MatchName:     "match_a",
		Half:          1,
		Category:      "goal",
		Tag:           "12-30.000",
		StartSec:      735,
		EndSec:        765,
		FramesWritten: 750,
		StillsWritten: 31,
		Status:        JobStatusOK,
	}))
	require.NoError(t, InsertClipJob(conn, ClipJob{
		RunID:     "run-1",
		MatchName: "match_a",
		Half:      2,
		Tag:       "50-00.000",
		Status:    JobStatusSkipped,
		Error:     "sink open: unsupported codec",
	}))

	require.NoError(t, FinishRun(conn, "run-1", 1, 0, 1, 1, 750, 31))

	runs, err := ListRuns(conn)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	r := runs[0]
	assert.Equal(t, "run-1", r.ID)
	assert.Equal(t, 1, r.MatchesProcessed)
	assert.Equal(t, 750, r.FramesWritten)
	assert.NotNil(t, r.FinishedAt)

	jobs, err := ListRunJobs(conn, "run-1")
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, JobStatusOK, jobs[0].Status)
	assert.Equal(t, 31, jobs[0].StillsWritten)
	assert.Equal(t, JobStatusSkipped, jobs[1].Status)
	assert.NotEmpty(t, jobs[1].Error)
}

func TestListRunsEmpty(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer conn.Close()

	runs, err := ListRuns(conn)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
