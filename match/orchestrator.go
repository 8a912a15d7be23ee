package match

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/soccer-extract-cli/config"
	"github.com/user/soccer-extract-cli/db"
	"github.com/user/soccer-extract-cli/event"
	"github.com/user/soccer-extract-cli/extract"
	"github.com/user/soccer-extract-cli/video"
)

// Summary holds the batch-wide totals reported at the end of a run.
type Summary struct {
	RunID            string
	MatchesProcessed int
	MatchesFailed    int
	HalvesFailed     int
	EventsSkipped    int
	DroppedEvents    int
	ClipsWritten     int
	FramesWritten    int
	StillsWritten    int
}

// Orchestrator discovers match folders and runs two independent half
// extractions per match. A failure in one match never aborts the
// batch; it is logged and the next match proceeds.
type Orchestrator struct {
	Cfg   config.Config
	Codec video.Codec
	Log   *zap.Logger

	// Ledger, when non-nil, records the run and every clip job.
	Ledger *sql.DB
}

// Run processes every match folder under projectRoot.
func (o *Orchestrator) Run(projectRoot string) (Summary, error) {
	var sum Summary

	folders, err := Discover(projectRoot)
	if err != nil {
		return sum, err
	}
	if len(folders) == 0 {
		return sum, fmt.Errorf("no match folders found in %s", projectRoot)
	}

	sum.RunID = uuid.NewString()
	if o.Ledger != nil {
		if err := db.InsertRun(o.Ledger, sum.RunID, projectRoot, o.Cfg.OutputRoot, o.Cfg.RoutingMode); err != nil {
			o.Log.Warn("cannot record run", zap.Error(err))
		}
	}

	o.Log.Info("batch started",
		zap.String("run_id", sum.RunID),
		zap.Int("matches", len(folders)),
		zap.String("output_root", o.Cfg.OutputRoot),
		zap.String("routing_mode", o.Cfg.RoutingMode),
	)

	for _, folder := range folders {
		if err := o.processMatch(folder, &sum); err != nil {
			// Contain the failure at the match boundary.
			o.Log.Error("match failed",
				zap.String("match", filepath.Base(folder)),
				zap.Error(err),
				zap.Stack("stack"),
			)
			sum.MatchesFailed++
			continue
		}
		sum.MatchesProcessed++
	}

	if o.Ledger != nil {
		if err := db.FinishRun(o.Ledger, sum.RunID, sum.MatchesProcessed, sum.MatchesFailed,
			sum.EventsSkipped, sum.ClipsWritten, sum.FramesWritten, sum.StillsWritten); err != nil {
			o.Log.Warn("cannot finish run record", zap.Error(err))
		}
	}

	o.Log.Info("batch finished",
		zap.Int("matches_processed", sum.MatchesProcessed),
		zap.Int("matches_failed", sum.MatchesFailed),
		zap.Int("events_skipped", sum.EventsSkipped),
		zap.Int("clips_written", sum.ClipsWritten),
	)
	return sum, nil
}

func (o *Orchestrator) processMatch(folder string, sum *Summary) error {
	log := o.Log.With(zap.String("match", filepath.Base(folder)))

	m, warnings, err := Resolve(folder)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Warn(w)
	}
	log.Info("match resolved",
		zap.String("json", filepath.Base(m.JSONPath)),
		zap.String("half1", filepath.Base(m.Half1Video)),
		zap.String("half2", filepath.Base(m.Half2Video)),
	)

	events, err := event.ReadFile(m.JSONPath)
	if err != nil {
		return err
	}

	half1, half2, dropped := event.SplitByHalf(events)
	if dropped > 0 {
		log.Warn("events with half outside {1,2} excluded", zap.Int("count", dropped))
		sum.DroppedEvents += dropped
	}
	log.Info("events split", zap.Int("half1", len(half1)), zap.Int("half2", len(half2)))

	matchOut := filepath.Join(o.Cfg.OutputRoot, m.Name)
	router := extract.NewRouter(extract.RoutingMode(o.Cfg.RoutingMode), matchOut)

	processor := &extract.HalfProcessor{
		Codec:  o.Codec,
		Opts:   extract.Options{BeforeSec: o.Cfg.BeforeSec, AfterSec: o.Cfg.AfterSec, CadenceSec: o.Cfg.CadenceSec},
		Router: router,
		Log:    log,
	}

	o.runHalf(processor, m, 1, m.Half1Video, half1, sum, log)
	o.runHalf(processor, m, 2, m.Half2Video, half2, sum, log)

	return nil
}

// runHalf drives one half and folds its summary into the batch totals.
// A half that cannot run (video open failure) is logged and does not
// fail the match.
func (o *Orchestrator) runHalf(p *extract.HalfProcessor, m *Match, half int, videoPath string, events []event.Event, sum *Summary, log *zap.Logger) {
	if len(events) == 0 {
		log.Info("no events for half", zap.Int("half", half))
		return
	}

	p.OnJob = func(job extract.Job, res extract.Result) {
		o.recordJob(m.Name, half, sum.RunID, job, res, log)
	}

	halfSum, err := p.Process(videoPath, events, half)
	// Partial totals still count even when the half aborts midway.
	sum.EventsSkipped += halfSum.EventsSkipped
	sum.ClipsWritten += halfSum.ClipsWritten
	sum.FramesWritten += halfSum.FramesWritten
	sum.StillsWritten += halfSum.StillsWritten

	if err != nil {
		log.Error("half aborted", zap.Int("half", half), zap.Error(err))
		sum.HalvesFailed++
	}
}

func (o *Orchestrator) recordJob(matchName string, half int, runID string, job extract.Job, res extract.Result, log *zap.Logger) {
	if o.Ledger == nil {
		return
	}

	status := db.JobStatusOK
	switch {
	case res.Skipped:
		status = db.JobStatusSkipped
	case res.Truncated:
		status = db.JobStatusTruncated
	}

	rec := db.ClipJob{
		RunID:         runID,
		MatchName:     matchName,
		Half:          half,
		Category:      extract.SanitizeCategory(job.Event.Category),
		Tag:           job.Tag,
		StartSec:      job.Window.StartSec,
		EndSec:        job.Window.EndSec,
		FramesWritten: res.FramesWritten,
		StillsWritten: res.StillsWritten,
		Status:        status,
		Error:         res.Reason,
	}
	if err := db.InsertClipJob(o.Ledger, rec); err != nil {
		log.Warn("cannot record clip job", zap.Error(err))
	}
}
