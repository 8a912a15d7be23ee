package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/user/soccer-extract-cli/event"
	"github.com/user/soccer-extract-cli/pkg/timeutil"
	"github.com/user/soccer-extract-cli/video"
)

// Job is the unit of work for one event: its window, its sample set and
// its resolved output targets. Jobs are built by the half processor and
// consumed once by the writer.
type Job struct {
	Event    event.Event
	Window   Window
	Samples  map[int]struct{}
	Tag      string
	Category string // sanitized; empty omits the category filename segment
	ClipPath string
	FrameDir string
}

// Result reports the outcome of one job.
type Result struct {
	ClipWritten   bool
	FramesWritten int
	StillsWritten int
	Truncated     bool
	Skipped       bool
	Reason        string
}

// ClipName builds the clip filename. The clamped start/end seconds are
// embedded to millisecond precision so jobs for different events never
// collide even when their tags coincide.
func ClipName(category, tag string, startSec, endSec float64) string {
	base := "clip"
	if category != "" {
		base += "_" + category
	}
	return fmt.Sprintf("%s_%s_%08.3fs_to_%08.3fs.mp4", base, tag, startSec, endSec)
}

// StillName builds a still-frame filename from the frame's absolute
// timestamp label.
func StillName(category, tag, label string) string {
	base := "frame"
	if category != "" {
		base += "_" + category
	}
	return fmt.Sprintf("%s_%s_t%s.png", base, tag, label)
}

// Writer runs extraction jobs against an opened video source.
type Writer struct {
	Codec video.Codec
	Log   *zap.Logger
}

// Run scans the job's window frame by frame: every frame read is
// appended to the clip; frames in the sample set are additionally
// persisted as stills. An early read failure truncates the job and is
// reported with the actual frame count, not as an error. A sink that
// cannot be opened abandons the job with a warning and leaves no
// partial clip behind.
func (w *Writer) Run(src video.Source, job Job) Result {
	meta := src.Meta()
	log := w.Log.With(zap.String("tag", job.Tag), zap.String("clip", filepath.Base(job.ClipPath)))

	sink, err := w.Codec.CreateClip(job.ClipPath, meta)
	if err != nil {
		log.Warn("cannot open clip sink, skipping job", zap.Error(err))
		_ = os.Remove(job.ClipPath)
		return Result{Skipped: true, Reason: fmt.Sprintf("sink open: %v", err)}
	}

	reader, err := src.OpenAt(job.Window.StartFrame)
	if err != nil {
		log.Warn("cannot seek source, skipping job", zap.Error(err))
		_ = sink.Close()
		_ = os.Remove(job.ClipPath)
		return Result{Skipped: true, Reason: fmt.Sprintf("seek: %v", err)}
	}
	defer reader.Close()

	var res Result
	for idx := job.Window.StartFrame; idx < job.Window.EndFrame; idx++ {
		frame, err := reader.Next()
		if err != nil {
			if err != io.EOF {
				log.Warn("frame read failed, truncating job", zap.Int("frame", idx), zap.Error(err))
			}
			res.Truncated = true
			break
		}

		if err := sink.Append(frame); err != nil {
			log.Warn("clip append failed, truncating job", zap.Int("frame", idx), zap.Error(err))
			res.Truncated = true
			break
		}
		res.FramesWritten++

		if _, ok := job.Samples[idx]; ok {
			label := timeutil.Tag(float64(idx) / meta.FPS)
			stillPath := filepath.Join(job.FrameDir, StillName(job.Category, job.Tag, label))
			if err := w.Codec.SaveStill(stillPath, frame, meta); err != nil {
				log.Warn("still write failed", zap.String("still", filepath.Base(stillPath)), zap.Error(err))
			} else {
				res.StillsWritten++
			}
		}
	}

	if err := sink.Close(); err != nil {
		log.Warn("clip finalize failed", zap.Error(err))
	}
	res.ClipWritten = true

	log.Info("job done",
		zap.Int("frames_written", res.FramesWritten),
		zap.Int("stills_written", res.StillsWritten),
		zap.Bool("truncated", res.Truncated),
	)
	return res
}
