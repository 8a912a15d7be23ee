package db

import "time"

// Run represents a row in the runs table: one batch extraction run.
type Run struct {
	ID               string
	ProjectFolder    string
	OutputRoot       string
	RoutingMode      string
	StartedAt        time.Time
	FinishedAt       *time.Time
	MatchesProcessed int
	MatchesFailed    int
	EventsSkipped    int
	ClipsWritten     int
	FramesWritten    int
	StillsWritten    int
}

// Job status values.
const (
	JobStatusOK        = "ok"
	JobStatusTruncated = "truncated"
	JobStatusSkipped   = "skipped"
)

// ClipJob represents a row in the clip_jobs table: one clip extraction
// outcome within a run.
type ClipJob struct {
	ID            int64
	RunID         string
	MatchName     string
	Half          int
	Category      string
	Tag           string
	StartSec      float64
	EndSec        float64
	FramesWritten int
	StillsWritten int
	Status        string
	Error         string
	CreatedAt     time.Time
}
