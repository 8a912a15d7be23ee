// Package video provides the frame-level codec boundary for the
// extraction engine: probing a video's metadata, reading raw frames
// sequentially from an arbitrary frame index, appending frames to an
// output clip, and persisting single frames as still images.
//
// The engine depends only on the interfaces here; the ffmpeg-backed
// implementation lives in ffmpeg.go.
package video

// Metadata describes an opened video source. DurationSec is always
// TotalFrames/FPS when FPS > 0, and 0 otherwise.
type Metadata struct {
	FPS         float64
	TotalFrames int
	DurationSec float64
	Width       int
	Height      int
}

// FrameSize returns the byte length of one raw RGB24 frame.
func (m Metadata) FrameSize() int {
	return m.Width * m.Height * 3
}

// Source is an opened, seekable, frame-indexed video. A source is owned
// by a single half run: each extraction window seeks once via OpenAt and
// then reads strictly forward.
type Source interface {
	Meta() Metadata
	// OpenAt positions a reader at the given absolute frame index.
	OpenAt(frame int) (FrameReader, error)
	Close() error
}

// FrameReader reads consecutive raw frames. Next returns io.EOF once the
// source is exhausted; any other error means a decode failure.
type FrameReader interface {
	Next() ([]byte, error)
	Close() error
}

// ClipSink receives the frames of one output clip. Close finalizes the
// clip file; a clip is only valid after a clean Close.
type ClipSink interface {
	Append(frame []byte) error
	Close() error
}

// Codec is the external collaborator providing decode and encode
// primitives. The engine never touches container or pixel formats
// beyond this interface.
type Codec interface {
	Open(path string) (Source, error)
	CreateClip(path string, meta Metadata) (ClipSink, error)
	SaveStill(path string, frame []byte, meta Metadata) error
}
