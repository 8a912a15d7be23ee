package match

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/soccer-extract-cli/config"
	"github.com/user/soccer-extract-cli/db"
	"github.com/user/soccer-extract-cli/video"
)

// stubCodec serves the same synthetic source for every video path.
type stubCodec struct {
	meta      video.Metadata
	available int
	stills    int
	clips     int
}

func (c *stubCodec) Open(path string) (video.Source, error) {
	return &stubSource{codec: c}, nil
}

func (c *stubCodec) CreateClip(path string, meta video.Metadata) (video.ClipSink, error) {
	c.clips++
	return &stubSink{}, nil
}

func (c *stubCodec) SaveStill(path string, frame []byte, meta video.Metadata) error {
	c.stills++
	return nil
}

type stubSource struct {
	codec *stubCodec
}

func (s *stubSource) Meta() video.Metadata { return s.codec.meta }

func (s *stubSource) OpenAt(frame int) (video.FrameReader, error) {
	return &stubReader{codec: s.codec, pos: frame}, nil
}

func (s *stubSource) Close() error { return nil }

type stubReader struct {
	codec *stubCodec
	pos   int
}

func (r *stubReader) Next() ([]byte, error) {
	if r.pos >= r.codec.available {
		return nil, io.EOF
	}
	r.pos++
	return []byte{0}, nil
}

func (r *stubReader) Close() error { return nil }

type stubSink struct{}

func (s *stubSink) Append(frame []byte) error { return nil }
func (s *stubSink) Close() error              { return nil }

func writeMatchFolder(t *testing.T, root, name, commentary string, withHalf2 bool) {
	t.Helper()
	folder := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(folder, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "commentary.json"), []byte(commentary), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(folder, name+"_1.mkv"), []byte("v"), 0o644))
	if withHalf2 {
		require.NoError(t, os.WriteFile(filepath.Join(folder, name+"_2.mkv"), []byte("v"), 0o644))
	}
}

func testConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.OutputRoot = filepath.Join(t.TempDir(), "out")
	return cfg
}

const commentary = `{
	"comments": [
		{"time_stamp": "12:00", "comments_type": "Goal", "half": 1},
		{"time_stamp": "50:30", "comments_type": "Card", "half": 2},
		{"time_stamp": "13:00", "comments_type": "Goal", "half": 7}
	]
}`

func TestOrchestratorBatch(t *testing.T) {
	root := t.TempDir()
	writeMatchFolder(t, root, "match_a", commentary, true)
	writeMatchFolder(t, root, "match_b", commentary, false) // missing second half video

	codec := &stubCodec{
		meta:      video.Metadata{FPS: 10, TotalFrames: 60000, DurationSec: 6000, Width: 2, Height: 1},
		available: 60000,
	}
	cfg := testConfig(t)

	o := &Orchestrator{Cfg: cfg, Codec: codec, Log: zap.NewNop()}
	sum, err := o.Run(root)
	require.NoError(t, err)

	// The broken match is skipped entirely; the batch continues.
	assert.Equal(t, 1, sum.MatchesProcessed)
	assert.Equal(t, 1, sum.MatchesFailed)
	assert.Equal(t, 2, sum.ClipsWritten)
	assert.Equal(t, 1, sum.DroppedEvents)
	assert.NotEmpty(t, sum.RunID)

	// Flat layout under <out>/<match>/<half>/{clips,frames}.
	assert.DirExists(t, filepath.Join(cfg.OutputRoot, "match_a", "first_half", "clips"))
	assert.DirExists(t, filepath.Join(cfg.OutputRoot, "match_a", "second_half", "frames"))
	assert.NoDirExists(t, filepath.Join(cfg.OutputRoot, "match_b"))
}

func TestOrchestratorCategorizedLayout(t *testing.T) {
	root := t.TempDir()
	writeMatchFolder(t, root, "match_a", commentary, true)

	codec := &stubCodec{
		meta:      video.Metadata{FPS: 10, TotalFrames: 60000, DurationSec: 6000, Width: 2, Height: 1},
		available: 60000,
	}
	cfg := testConfig(t)
	cfg.RoutingMode = "categorized"

	o := &Orchestrator{Cfg: cfg, Codec: codec, Log: zap.NewNop()}
	_, err := o.Run(root)
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(cfg.OutputRoot, "match_a", "clips", "goal"))
	assert.DirExists(t, filepath.Join(cfg.OutputRoot, "match_a", "clips", "card"))
}

func TestOrchestratorEmptyRoot(t *testing.T) {
	o := &Orchestrator{Cfg: testConfig(t), Codec: &stubCodec{}, Log: zap.NewNop()}
	_, err := o.Run(t.TempDir())
	assert.Error(t, err)
}

func TestOrchestratorLedger(t *testing.T) {
	root := t.TempDir()
	writeMatchFolder(t, root, "match_a", commentary, true)

	conn, err := db.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer conn.Close()

	codec := &stubCodec{
		meta:      video.Metadata{FPS: 10, TotalFrames: 60000, DurationSec: 6000, Width: 2, Height: 1},
		available: 60000,
	}

	o := &Orchestrator{Cfg: testConfig(t), Codec: codec, Log: zap.NewNop(), Ledger: conn}
	sum, err := o.Run(root)
	require.NoError(t, err)

	runs, err := db.ListRuns(conn)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, sum.RunID, runs[0].ID)
	assert.Equal(t, 1, runs[0].MatchesProcessed)
	assert.NotNil(t, runs[0].FinishedAt)

	jobs, err := db.ListRunJobs(conn, sum.RunID)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "goal", jobs[0].Category)
	assert.Equal(t, 1, jobs[0].Half)
	assert.Equal(t, db.JobStatusOK, jobs[0].Status)
	assert.Equal(t, "card", jobs[1].Category)
	assert.Equal(t, 2, jobs[1].Half)
}
