package db

import (
	"database/sql"
	"time"
)

// InsertRun records the start of a batch run.
func InsertRun(conn *sql.DB, id, projectFolder, outputRoot, routingMode string) error {
	_, err := conn.Exec(`
		INSERT INTO runs (id, project_folder, output_root, routing_mode)
		VALUES (?, ?, ?, ?)
	`, id, projectFolder, outputRoot, routingMode)
	return err
}

// FinishRun stamps a run finished and stores its totals.
func FinishRun(conn *sql.DB, id string, matchesProcessed, matchesFailed, eventsSkipped, clipsWritten, framesWritten, stillsWritten int) error {
	_, err := conn.Exec(`
		UPDATE runs
		SET finished_at = ?,
			matches_processed = ?,
			matches_failed = ?,
			events_skipped = ?,
			clips_written = ?,
			frames_written = ?,
			stills_written = ?
		WHERE id = ?
	`, time.Now(), matchesProcessed, matchesFailed, eventsSkipped, clipsWritten, framesWritten, stillsWritten, id)
	return err
}

// InsertClipJob records one clip extraction outcome.
func InsertClipJob(conn *sql.DB, job ClipJob) error {
	_, err := conn.Exec(`
		INSERT INTO clip_jobs (run_id, match_name, half, category, tag, start_sec, end_sec, frames_written, stills_written, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, job.RunID, job.MatchName, job.Half, job.Category, job.Tag, job.StartSec, job.EndSec,
		job.FramesWritten, job.StillsWritten, job.Status, job.Error)
	return err
}

// ListRuns returns all recorded runs, most recent first.
func ListRuns(conn *sql.DB) ([]Run, error) {
	rows, err := conn.Query(`
		SELECT id, project_folder, output_root, routing_mode, started_at, finished_at,
			matches_processed, matches_failed, events_skipped, clips_written, frames_written, stills_written
		FROM runs
		ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var finished sql.NullTime
		if err := rows.Scan(&r.ID, &r.ProjectFolder, &r.OutputRoot, &r.RoutingMode, &r.StartedAt, &finished,
			&r.MatchesProcessed, &r.MatchesFailed, &r.EventsSkipped, &r.ClipsWritten, &r.FramesWritten, &r.StillsWritten); err != nil {
			return nil, err
		}
		if finished.Valid {
			t := finished.Time
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListRunJobs returns the clip jobs of one run in insertion order.
func ListRunJobs(conn *sql.DB, runID string) ([]ClipJob, error) {
	rows, err := conn.Query(`
		SELECT id, run_id, match_name, half, category, tag, start_sec, end_sec,
			frames_written, stills_written, status, error, created_at
		FROM clip_jobs
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []ClipJob
	for rows.Next() {
		var j ClipJob
		if err := rows.Scan(&j.ID, &j.RunID, &j.MatchName, &j.Half, &j.Category, &j.Tag, &j.StartSec, &j.EndSec,
			&j.FramesWritten, &j.StillsWritten, &j.Status, &j.Error, &j.CreatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}
