package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"audio-notes/internal/app/model"
	"audio-notes/internal/app/scanner"
)

type fakeNormalizer struct {
	fail     bool
	wavPaths []string
}

func (f *fakeNormalizer) Normalize(sourcePath string) (string, error) {
	if f.fail {
		return "", errors.New("ffmpeg exited with status 1")
	}
	wav := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + "_TEMP.wav"
	if err := os.WriteFile(wav, []byte("wav"), 0o644); err != nil {
		return "", err
	}
	f.wavPaths = append(f.wavPaths, wav)
	return wav, nil
}

type fakeTranscriber struct {
	result *model.TranscriptionResult
	err    error
	calls  int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (*model.TranscriptionResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeDAO struct {
	saved  []model.TranscriptRecord
	err    error
	events *[]string
}

func (f *fakeDAO) Save(record *model.TranscriptRecord) (int64, error) {
	if f.events != nil {
		*f.events = append(*f.events, "save")
	}
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, *record)
	return int64(len(f.saved)), nil
}

func (f *fakeDAO) Recent(limit int) ([]model.TranscriptRecord, error) { return f.saved, nil }
func (f *fakeDAO) All() ([]model.TranscriptRecord, error)            { return f.saved, nil }
func (f *fakeDAO) Close() error                                      { return nil }

type fakeArchiver struct {
	failures int
	events   *[]string
}

func (f *fakeArchiver) Archive(ctx context.Context, sourcePath, filename string) error {
	if f.events != nil {
		*f.events = append(*f.events, "archive")
	}
	if f.failures > 0 {
		f.failures--
		return errors.New("rename: permission denied")
	}
	return os.Rename(sourcePath, sourcePath+".archived")
}

type fakeNotifier struct {
	statuses []string
	details  []string
}

func (f *fakeNotifier) Notify(status, filename, details string) {
	f.statuses = append(f.statuses, status)
	f.details = append(f.details, details)
}

type fakeSidecar struct {
	written  map[string][]model.Segment
	fullText string
	err      error
}

func (f *fakeSidecar) Write(sourceName, fullText string, segments []model.Segment) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.written == nil {
		f.written = map[string][]model.Segment{}
	}
	f.written[sourceName] = segments
	f.fullText = fullText
	return sourceName + ".txt", nil
}

func newRecording(t *testing.T, dir, name string) model.SourceRecording {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("audio"), 0o644))
	return model.SourceRecording{Name: name, FullPath: path, ModTime: time.Now()}
}

func helloResult() *model.TranscriptionResult {
	return &model.TranscriptionResult{
		FullText: "hello world",
		Segments: []model.Segment{
			{StartMs: 0, EndMs: 1000, Text: "hello world", SpeakerID: 0},
			{StartMs: 1000, EndMs: 1200, Text: "  "},
			{StartMs: 1200, EndMs: 1300, Text: "<|NEUTRAL|>"},
		},
	}
}

func TestProcessFileSuccess(t *testing.T) {
	dir := t.TempDir()
	rec := newRecording(t, dir, "rec.m4a")

	norm := &fakeNormalizer{}
	dao := &fakeDAO{}
	arch := &fakeArchiver{}
	notif := &fakeNotifier{}
	side := &fakeSidecar{}

	p := New(scanner.New(dir, []string{".m4a"}), norm, &fakeTranscriber{result: helloResult()},
		dao, side, arch, notif, zap.NewNop())

	require.NoError(t, p.ProcessFile(context.Background(), rec))

	// Source was handed to the archiver and is gone from the watched dir.
	assert.NoFileExists(t, rec.FullPath)
	assert.FileExists(t, rec.FullPath+".archived")

	// One record, with the blank and token-only segments filtered out.
	require.Len(t, dao.saved, 1)
	assert.Equal(t, "rec.m4a", dao.saved[0].Filename)
	assert.Equal(t, "hello world", dao.saved[0].FullText)
	require.Len(t, dao.saved[0].Segments, 1)
	assert.Equal(t, "hello world", dao.saved[0].Segments[0].Text)

	// Sidecar got the same filtered view.
	assert.Len(t, side.written["rec.m4a"], 1)
	assert.Equal(t, "hello world", side.fullText)

	// Success callback with a text preview.
	require.Equal(t, []string{"success"}, notif.statuses)
	assert.Equal(t, "hello world", notif.details[0])

	// The normalized temp wav never outlives the attempt.
	require.Len(t, norm.wavPaths, 1)
	assert.NoFileExists(t, norm.wavPaths[0])
}

func TestProcessFilePersistsBeforeArchiving(t *testing.T) {
	dir := t.TempDir()
	rec := newRecording(t, dir, "rec.m4a")

	var events []string
	dao := &fakeDAO{events: &events}
	arch := &fakeArchiver{events: &events}

	p := New(scanner.New(dir, []string{".m4a"}), &fakeNormalizer{}, &fakeTranscriber{result: helloResult()},
		dao, &fakeSidecar{}, arch, &fakeNotifier{}, zap.NewNop())

	require.NoError(t, p.ProcessFile(context.Background(), rec))
	assert.Equal(t, []string{"save", "archive"}, events)
}

func TestProcessFilePersistFailureKeepsSource(t *testing.T) {
	dir := t.TempDir()
	rec := newRecording(t, dir, "rec.m4a")

	var events []string
	dao := &fakeDAO{events: &events, err: errors.New("database is locked")}
	arch := &fakeArchiver{events: &events}
	notif := &fakeNotifier{}

	p := New(scanner.New(dir, []string{".m4a"}), &fakeNormalizer{}, &fakeTranscriber{result: helloResult()},
		dao, &fakeSidecar{}, arch, notif, zap.NewNop())

	err := p.ProcessFile(context.Background(), rec)
	require.Error(t, err)
	assert.Equal(t, StagePersist, StageOf(err))

	// Nothing was archived; the source stays for the next cycle.
	assert.Equal(t, []string{"save"}, events)
	assert.FileExists(t, rec.FullPath)
	assert.Empty(t, notif.statuses)
}

func TestProcessFileArchiveFailureYieldsDuplicateRecord(t *testing.T) {
	dir := t.TempDir()
	rec := newRecording(t, dir, "rec.m4a")

	dao := &fakeDAO{}
	arch := &fakeArchiver{failures: 1}

	p := New(scanner.New(dir, []string{".m4a"}), &fakeNormalizer{}, &fakeTranscriber{result: helloResult()},
		dao, &fakeSidecar{}, arch, &fakeNotifier{}, zap.NewNop())

	err := p.ProcessFile(context.Background(), rec)
	require.Error(t, err)
	assert.Equal(t, StageArchive, StageOf(err))
	assert.FileExists(t, rec.FullPath)

	// Next cycle picks the same file up again and appends a second record.
	require.NoError(t, p.ProcessFile(context.Background(), rec))
	require.Len(t, dao.saved, 2)
	assert.Equal(t, dao.saved[0].Filename, dao.saved[1].Filename)
	assert.NoFileExists(t, rec.FullPath)
}

func TestProcessFileTranscribeFailureLeavesNoTrace(t *testing.T) {
	dir := t.TempDir()
	rec := newRecording(t, dir, "rec.m4a")

	norm := &fakeNormalizer{}
	dao := &fakeDAO{}
	side := &fakeSidecar{}

	p := New(scanner.New(dir, []string{".m4a"}), norm, &fakeTranscriber{err: errors.New("connection refused")},
		dao, side, &fakeArchiver{}, &fakeNotifier{}, zap.NewNop())

	err := p.ProcessFile(context.Background(), rec)
	require.Error(t, err)
	assert.Equal(t, StageTranscribe, StageOf(err))

	assert.FileExists(t, rec.FullPath)
	assert.Empty(t, dao.saved)
	assert.Empty(t, side.written)
	require.Len(t, norm.wavPaths, 1)
	assert.NoFileExists(t, norm.wavPaths[0], "temp wav must be removed on failure too")
}

func TestProcessFileSidecarFailureIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	rec := newRecording(t, dir, "rec.m4a")

	dao := &fakeDAO{}
	p := New(scanner.New(dir, []string{".m4a"}), &fakeNormalizer{}, &fakeTranscriber{result: helloResult()},
		dao, &fakeSidecar{err: errors.New("read-only filesystem")}, &fakeArchiver{}, &fakeNotifier{}, zap.NewNop())

	require.NoError(t, p.ProcessFile(context.Background(), rec))
	assert.Len(t, dao.saved, 1)
	assert.NoFileExists(t, rec.FullPath)
}

func TestRunCycleIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	bad := newRecording(t, dir, "bad.m4a")
	good := newRecording(t, dir, "good.m4a")

	now := time.Now()
	require.NoError(t, os.Chtimes(bad.FullPath, now.Add(-2*time.Hour), now.Add(-2*time.Hour)))
	require.NoError(t, os.Chtimes(good.FullPath, now.Add(-time.Hour), now.Add(-time.Hour)))

	// First transcription fails, the rest succeed.
	tr := &flakyTranscriber{failFirst: true, result: helloResult()}
	dao := &fakeDAO{}

	p := New(scanner.New(dir, []string{".m4a"}), &fakeNormalizer{}, tr,
		dao, &fakeSidecar{}, &fakeArchiver{}, &fakeNotifier{}, zap.NewNop())

	processed, err := p.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, 2, tr.calls, "failure on one file must not stop the cycle")

	require.Len(t, dao.saved, 1)
	assert.Equal(t, "good.m4a", dao.saved[0].Filename)
	assert.FileExists(t, bad.FullPath)
	assert.NoFileExists(t, good.FullPath)
}

func TestRunCycleScanFailure(t *testing.T) {
	p := New(scanner.New(filepath.Join(t.TempDir(), "gone"), []string{".m4a"}), &fakeNormalizer{},
		&fakeTranscriber{result: helloResult()}, &fakeDAO{}, &fakeSidecar{}, &fakeArchiver{},
		&fakeNotifier{}, zap.NewNop())

	_, err := p.RunCycle(context.Background())
	require.Error(t, err)
	assert.Equal(t, StageScan, StageOf(err))
}

func TestRunCycleEmptyDirectory(t *testing.T) {
	tr := &fakeTranscriber{result: helloResult()}
	p := New(scanner.New(t.TempDir(), []string{".m4a"}), &fakeNormalizer{}, tr,
		&fakeDAO{}, &fakeSidecar{}, &fakeArchiver{}, &fakeNotifier{}, zap.NewNop())

	for i := 0; i < 2; i++ {
		processed, err := p.RunCycle(context.Background())
		require.NoError(t, err)
		assert.Zero(t, processed)
	}
	assert.Zero(t, tr.calls)
}

type flakyTranscriber struct {
	failFirst bool
	result    *model.TranscriptionResult
	calls     int
}

func (f *flakyTranscriber) Transcribe(ctx context.Context, audioPath string) (*model.TranscriptionResult, error) {
	f.calls++
	if f.failFirst && f.calls == 1 {
		return nil, errors.New("connection refused")
	}
	return f.result, nil
}

type panickyTranscriber struct {
	calls int32
}

func (p *panickyTranscriber) Transcribe(ctx context.Context, audioPath string) (*model.TranscriptionResult, error) {
	atomic.AddInt32(&p.calls, 1)
	panic("nil segment dereference")
}

func TestSupervisorSurvivesPanics(t *testing.T) {
	dir := t.TempDir()
	newRecording(t, dir, "rec.m4a")

	tr := &panickyTranscriber{}
	p := New(scanner.New(dir, []string{".m4a"}), &fakeNormalizer{}, tr,
		&fakeDAO{}, &fakeSidecar{}, &fakeArchiver{}, &fakeNotifier{}, zap.NewNop())

	s := NewSupervisor(p, time.Millisecond, time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&tr.calls) >= 2
	}, 2*time.Second, 5*time.Millisecond, "loop must keep cycling after a panic")

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not stop on cancellation")
	}
}
