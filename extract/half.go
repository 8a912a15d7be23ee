package extract

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/user/soccer-extract-cli/event"
	"github.com/user/soccer-extract-cli/pkg/timeutil"
	"github.com/user/soccer-extract-cli/video"
)

// Options holds the window and sampling parameters for a run.
type Options struct {
	BeforeSec  float64
	AfterSec   float64
	CadenceSec float64
}

// HalfSummary accumulates per-half outcome totals.
type HalfSummary struct {
	EventsProcessed int
	EventsSkipped   int
	ClipsWritten    int
	FramesWritten   int
	StillsWritten   int
}

// HalfProcessor binds one video source to one half's event list and
// drives a job per event. A bad record skips that event only; a video
// that cannot be opened aborts the half.
type HalfProcessor struct {
	Codec  video.Codec
	Opts   Options
	Router *Router
	Log    *zap.Logger

	// OnJob, when set, observes every completed job (used for the run
	// ledger). It must not mutate the job.
	OnJob func(job Job, res Result)
}

// Process opens the half's video and extracts a clip plus sampled
// stills for every event, in chronological order. The source is fully
// released before Process returns.
func (p *HalfProcessor) Process(videoPath string, events []event.Event, half int) (HalfSummary, error) {
	var sum HalfSummary

	src, err := p.Codec.Open(videoPath)
	if err != nil {
		return sum, fmt.Errorf("open %s: %w", filepath.Base(videoPath), err)
	}
	defer src.Close()

	meta := src.Meta()
	log := p.Log.With(zap.String("video", filepath.Base(videoPath)), zap.Int("half", half))
	log.Info("video opened",
		zap.Float64("fps", meta.FPS),
		zap.Int("total_frames", meta.TotalFrames),
		zap.Float64("duration_sec", meta.DurationSec),
		zap.Int("width", meta.Width),
		zap.Int("height", meta.Height),
	)

	ready, malformed := event.Prepare(events)
	for _, ev := range malformed {
		log.Warn("skipping bad timestamp", zap.String("stamp", ev.RawStamp), zap.String("category", ev.Category))
		sum.EventsSkipped++
	}
	log.Info("events prepared", zap.Int("unique", len(ready)), zap.Int("malformed", len(malformed)))

	writer := &Writer{Codec: p.Codec, Log: log}

	for _, ev := range ready {
		window := ComputeWindow(ev.Seconds, p.Opts.BeforeSec, p.Opts.AfterSec, meta.DurationSec, meta.FPS)
		tag := timeutil.Tag(ev.Seconds)

		if !window.Valid() {
			log.Warn("skipping event: no valid frame range", zap.String("tag", tag))
			sum.EventsSkipped++
			continue
		}

		clipDir, frameDir, err := p.Router.Route(half, ev.Category)
		if err != nil {
			log.Warn("skipping event: cannot route output", zap.String("tag", tag), zap.Error(err))
			sum.EventsSkipped++
			continue
		}

		fileCat := p.Router.FileCategory(ev.Category)
		job := Job{
			Event:    ev,
			Window:   window,
			Samples:  SampleFrames(window, p.Opts.CadenceSec, meta.FPS),
			Tag:      tag,
			Category: fileCat,
			ClipPath: filepath.Join(clipDir, ClipName(fileCat, tag, window.StartSec, window.EndSec)),
			FrameDir: frameDir,
		}

		res := writer.Run(src, job)
		if p.OnJob != nil {
			p.OnJob(job, res)
		}

		if res.Skipped {
			sum.EventsSkipped++
			continue
		}
		sum.EventsProcessed++
		if res.ClipWritten {
			sum.ClipsWritten++
		}
		sum.FramesWritten += res.FramesWritten
		sum.StillsWritten += res.StillsWritten
	}

	return sum, nil
}
