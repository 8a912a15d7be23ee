package video

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// FFmpeg implements Codec by shelling out to ffmpeg and ffprobe.
// Clips are decoded to and encoded from rawvideo RGB24 over pipes, so
// the engine sees an exact frame-indexed stream in both directions.
type FFmpeg struct {
	FFmpegCmd  string
	FFprobeCmd string
}

// NewFFmpeg returns a Codec using the ffmpeg/ffprobe binaries on PATH.
func NewFFmpeg() *FFmpeg {
	return &FFmpeg{FFmpegCmd: "ffmpeg", FFprobeCmd: "ffprobe"}
}

type probeOutput struct {
	Streams []struct {
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		FrameRate string `json:"r_frame_rate"`
		NbFrames  string `json:"nb_frames"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Open probes the video and returns a seekable frame source.
func (f *FFmpeg) Open(path string) (Source, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open video: %w", err)
	}

	cmd := exec.Command(f.FFprobeCmd,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate,nb_frames",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w: %s", path, err, stderr.String())
	}

	meta, err := ParseProbe(out)
	if err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	return &ffmpegSource{codec: f, path: path, meta: meta}, nil
}

// ParseProbe decodes ffprobe JSON output into Metadata. Matroska files
// often omit nb_frames, in which case the frame count is derived from
// the container duration; the stored duration is then recomputed from
// the frame count so DurationSec == TotalFrames/FPS always holds.
func ParseProbe(data []byte) (Metadata, error) {
	var probe probeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return Metadata{}, fmt.Errorf("parse probe output: %w", err)
	}
	if len(probe.Streams) == 0 {
		return Metadata{}, fmt.Errorf("no video stream found")
	}

	s := probe.Streams[0]
	fps, err := parseRate(s.FrameRate)
	if err != nil {
		return Metadata{}, err
	}

	frames := 0
	if s.NbFrames != "" {
		frames, _ = strconv.Atoi(s.NbFrames)
	}
	if frames <= 0 && probe.Format.Duration != "" {
		dur, err := strconv.ParseFloat(strings.TrimSpace(probe.Format.Duration), 64)
		if err != nil {
			return Metadata{}, fmt.Errorf("parse duration %q: %w", probe.Format.Duration, err)
		}
		frames = int(math.Round(dur * fps))
	}

	meta := Metadata{
		FPS:         fps,
		TotalFrames: frames,
		Width:       s.Width,
		Height:      s.Height,
	}
	if fps > 0 {
		meta.DurationSec = float64(frames) / fps
	}
	return meta, nil
}

// parseRate parses an ffprobe rational like "30000/1001" or "25/1".
func parseRate(rate string) (float64, error) {
	num, den, found := strings.Cut(strings.TrimSpace(rate), "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("parse frame rate %q: %w", rate, err)
	}
	if !found {
		return n, nil
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, fmt.Errorf("parse frame rate %q: bad denominator", rate)
	}
	return n / d, nil
}

type ffmpegSource struct {
	codec *FFmpeg
	path  string
	meta  Metadata
}

func (s *ffmpegSource) Meta() Metadata { return s.meta }

// OpenAt starts a decode positioned at the given frame. ffmpeg seeks to
// the surrounding keyframe and discards up to the requested offset, so
// the first frame read corresponds to the requested index.
func (s *ffmpegSource) OpenAt(frame int) (FrameReader, error) {
	if s.meta.FPS <= 0 {
		return nil, fmt.Errorf("source %s has no frame rate", s.path)
	}
	offset := float64(frame) / s.meta.FPS

	cmd := exec.Command(s.codec.FFmpegCmd,
		"-nostdin",
		"-v", "error",
		"-accurate_seek",
		"-ss", fmt.Sprintf("%.6f", offset),
		"-i", s.path,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"pipe:1",
	)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("decode pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start decoder: %w", err)
	}

	return &pipeReader{cmd: cmd, out: stdout, frameSize: s.meta.FrameSize()}, nil
}

func (s *ffmpegSource) Close() error { return nil }

type pipeReader struct {
	cmd       *exec.Cmd
	out       io.ReadCloser
	frameSize int
}

func (r *pipeReader) Next() ([]byte, error) {
	buf := make([]byte, r.frameSize)
	if _, err := io.ReadFull(r.out, buf); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, err
	}
	return buf, nil
}

func (r *pipeReader) Close() error {
	r.out.Close()
	if r.cmd.Process != nil {
		_ = r.cmd.Process.Kill()
	}
	_ = r.cmd.Wait()
	return nil
}

// CreateClip starts an encoder writing to path. The clip keeps the
// source resolution and frame rate; frames stream in over stdin.
func (f *FFmpeg) CreateClip(path string, meta Metadata) (ClipSink, error) {
	if meta.FPS <= 0 || meta.Width <= 0 || meta.Height <= 0 {
		return nil, fmt.Errorf("invalid clip metadata %+v", meta)
	}

	cmd := exec.Command(f.FFmpegCmd,
		"-y",
		"-v", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", meta.Width, meta.Height),
		"-r", fmt.Sprintf("%.6f", meta.FPS),
		"-i", "pipe:0",
		"-c:v", "libx264",
		"-preset", "fast",
		"-pix_fmt", "yuv420p",
		path,
	)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("encode pipe: %w", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start encoder: %w", err)
	}

	return &pipeSink{cmd: cmd, in: stdin, stderr: &stderr, path: path}, nil
}

type pipeSink struct {
	cmd    *exec.Cmd
	in     io.WriteCloser
	stderr *bytes.Buffer
	path   string
}

func (s *pipeSink) Append(frame []byte) error {
	if _, err := s.in.Write(frame); err != nil {
		return fmt.Errorf("append frame: %w", err)
	}
	return nil
}

func (s *pipeSink) Close() error {
	_ = s.in.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("finalize clip %s: %w: %s", s.path, err, s.stderr.String())
	}
	return nil
}
