// Package extract implements the event-window extraction engine: it
// turns timestamped match events into bounded clip and still-frame
// writes against a frame-indexed video source.
package extract

import "math"

// Window is the clamped extraction span around one event, in both
// seconds and frame indices. Frames are half-open: [StartFrame, EndFrame).
type Window struct {
	StartSec   float64
	EndSec     float64
	StartFrame int
	EndFrame   int
}

// Valid reports whether the window covers at least one frame. A window
// that collapses after clamping is skipped, not treated as an error.
func (w Window) Valid() bool {
	return w.EndFrame > w.StartFrame
}

// ComputeWindow clamps [eventSec-beforeSec, eventSec+afterSec] to the
// video bounds and converts both edges to frame indices by rounding.
// Events near the start or end of the video produce shorter windows by
// design. The rounding can be off by up to half a frame period; that
// slack is accepted and not compensated for.
func ComputeWindow(eventSec, beforeSec, afterSec, durationSec, fps float64) Window {
	start := math.Max(0, eventSec-beforeSec)
	end := math.Min(durationSec, eventSec+afterSec)

	return Window{
		StartSec:   start,
		EndSec:     end,
		StartFrame: int(math.Round(start * fps)),
		EndFrame:   int(math.Round(end * fps)),
	}
}

// SampleFrames returns the set of absolute frame indices to persist as
// still images: one every cadenceSec starting at the window start,
// through the window length inclusive. The result is consumed as a
// membership test while scanning frames sequentially; rounding
// collisions at high cadence simply collapse into fewer entries.
func SampleFrames(w Window, cadenceSec, fps float64) map[int]struct{} {
	samples := make(map[int]struct{})
	if cadenceSec <= 0 {
		return samples
	}

	length := w.EndSec - w.StartSec
	for k := 0; ; k++ {
		offset := float64(k) * cadenceSec
		if offset > length {
			break
		}
		idx := int(math.Round((w.StartSec + offset) * fps))
		samples[idx] = struct{}{}
	}
	return samples
}
