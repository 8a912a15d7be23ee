package extract

import (
	"errors"
	"io"

	"github.com/user/soccer-extract-cli/video"
)

// fakeCodec is an in-memory stand-in for the ffmpeg collaborator.
type fakeCodec struct {
	source   *fakeSource
	openErr  error
	sinkErr  error
	stillErr error

	clips  map[string][][]byte // clip path -> appended frames
	stills map[string][]byte   // still path -> frame
}

func newFakeCodec(src *fakeSource) *fakeCodec {
	return &fakeCodec{
		source: src,
		clips:  make(map[string][][]byte),
		stills: make(map[string][]byte),
	}
}

func (c *fakeCodec) Open(path string) (video.Source, error) {
	if c.openErr != nil {
		return nil, c.openErr
	}
	return c.source, nil
}

func (c *fakeCodec) CreateClip(path string, meta video.Metadata) (video.ClipSink, error) {
	if c.sinkErr != nil {
		return nil, c.sinkErr
	}
	return &fakeSink{codec: c, path: path}, nil
}

func (c *fakeCodec) SaveStill(path string, frame []byte, meta video.Metadata) error {
	if c.stillErr != nil {
		return c.stillErr
	}
	c.stills[path] = frame
	return nil
}

// fakeSource serves synthetic frames whose first byte pair encodes the
// absolute frame index. Reads past `available` report EOF, modelling a
// source that is shorter than its metadata claims.
type fakeSource struct {
	meta      video.Metadata
	available int
	openAtErr error
	closed    bool
}

func (s *fakeSource) Meta() video.Metadata { return s.meta }

func (s *fakeSource) OpenAt(frame int) (video.FrameReader, error) {
	if s.openAtErr != nil {
		return nil, s.openAtErr
	}
	return &fakeReader{src: s, pos: frame}, nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

type fakeReader struct {
	src *fakeSource
	pos int
}

func (r *fakeReader) Next() ([]byte, error) {
	if r.pos >= r.src.available {
		return nil, io.EOF
	}
	frame := []byte{byte(r.pos), byte(r.pos >> 8)}
	r.pos++
	return frame, nil
}

func (r *fakeReader) Close() error { return nil }

type fakeSink struct {
	codec  *fakeCodec
	path   string
	closed bool
}

func (s *fakeSink) Append(frame []byte) error {
	if s.closed {
		return errors.New("append after close")
	}
	s.codec.clips[s.path] = append(s.codec.clips[s.path], frame)
	return nil
}

func (s *fakeSink) Close() error {
	s.closed = true
	return nil
}
