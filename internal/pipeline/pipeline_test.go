package pipeline

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iyashjayesh/captune-ai/models"
)

type fakeTranscoder struct {
	duration      float64
	probeErr      error
	extractErr    error
	extractCalled bool
}

func (f *fakeTranscoder) ProbeDuration(context.Context, models.MediaAsset) (float64, error) {
	return f.duration, f.probeErr
}

func (f *fakeTranscoder) ExtractAudio(_ context.Context, video models.MediaAsset) (models.MediaAsset, error) {
	f.extractCalled = true
	if f.extractErr != nil {
		return models.MediaAsset{}, f.extractErr
	}
	return models.MediaAsset{
		Data:     []byte("mp3-bytes"),
		Kind:     models.KindAudio,
		Format:   "mp3",
		FileName: "clip.mp3",
	}, nil
}

func (f *fakeTranscoder) EmbedSubtitles(_ context.Context, video models.MediaAsset, _ string, _ models.EmbedMode) (models.MediaAsset, error) {
	return video, nil
}

type fakeRecognizer struct {
	segments []models.RawSegment
	err      error
	called   bool
}

func (f *fakeRecognizer) Transcribe(context.Context, models.MediaAsset) ([]models.RawSegment, error) {
	f.called = true
	return f.segments, f.err
}

type fakeLimiter struct {
	quota     models.Quota
	checkErr  error
	recordErr error
	recorded  bool
}

func (f *fakeLimiter) Check(context.Context) (models.Quota, error) {
	return f.quota, f.checkErr
}

func (f *fakeLimiter) Record(context.Context) error {
	f.recorded = true
	return f.recordErr
}

type fakeProjects struct {
	created *models.Project
	err     error
	id      uuid.UUID
}

func (f *fakeProjects) Create(_ context.Context, p models.Project) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	f.created = &p
	f.id = uuid.New()
	return f.id, nil
}

type fakeStats struct {
	reported []float64
	err      error
}

func (f *fakeStats) Report(_ context.Context, seconds float64) error {
	f.reported = append(f.reported, seconds)
	return f.err
}

func testVideo() models.MediaAsset {
	return models.MediaAsset{
		Data:     []byte("mp4-bytes"),
		Kind:     models.KindVideo,
		Format:   "mp4",
		FileName: "talk.mp4",
	}
}

func newTestPipeline(transcoder *fakeTranscoder, recognizer *fakeRecognizer, limiter *fakeLimiter, projects *fakeProjects, st *fakeStats) *Pipeline {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Pipeline{
		Transcoder:  transcoder,
		Recognizer:  recognizer,
		Limiter:     limiter,
		Projects:    projects,
		Stats:       st,
		Log:         log,
		MaxDuration: 300,
	}
}

func TestRunHappyPath(t *testing.T) {
	transcoder := &fakeTranscoder{duration: 120}
	recognizer := &fakeRecognizer{segments: []models.RawSegment{
		{Text: "hi", Timestamp: [2]float64{0, 1.2}},
		{Text: "there", Timestamp: [2]float64{0.5, 1.9}},
	}}
	limiter := &fakeLimiter{quota: models.Quota{Remaining: 2, Total: 3}}
	projects := &fakeProjects{}
	st := &fakeStats{}

	result, err := newTestPipeline(transcoder, recognizer, limiter, projects, st).Run(context.Background(), testVideo())
	if err != nil {
		t.Fatal(err)
	}

	if !limiter.recorded {
		t.Error("attempt was not recorded with the rate limiter")
	}
	if result.ProjectID != projects.id {
		t.Error("result does not carry the created project id")
	}

	// Overlapping raw segments come out normalized.
	want := models.CaptionTimeline{
		{Text: "hi", Start: 0, End: 1.2},
		{Text: "there", Start: 1.2, End: 2.6},
	}
	if len(result.Timeline) != len(want) {
		t.Fatalf("timeline length %d, want %d", len(result.Timeline), len(want))
	}
	for i := range want {
		if result.Timeline[i] != want[i] {
			t.Errorf("chunk %d = %+v, want %+v", i, result.Timeline[i], want[i])
		}
	}

	if projects.created == nil {
		t.Fatal("no project was created")
	}
	p := projects.created
	if p.VideoFileName != "talk.mp4" || p.VideoFileSize != int64(len("mp4-bytes")) {
		t.Errorf("video metadata wrong: %+v", p)
	}
	if p.AudioFileName != "clip.mp3" || p.AudioFileSize != int64(len("mp3-bytes")) {
		t.Errorf("audio metadata wrong: %+v", p)
	}
	if p.VideoFileDuration != 120 {
		t.Errorf("duration = %v, want 120", p.VideoFileDuration)
	}
	if p.Transcription == "" {
		t.Error("transcription payload is empty")
	}

	if len(st.reported) != 1 || st.reported[0] != 120 {
		t.Errorf("stats reported %v, want [120]", st.reported)
	}
}

func TestRunHaltsWhenQuotaExhausted(t *testing.T) {
	transcoder := &fakeTranscoder{duration: 10}
	recognizer := &fakeRecognizer{}
	limiter := &fakeLimiter{quota: models.Quota{Remaining: 0, Total: 3}}

	_, err := newTestPipeline(transcoder, recognizer, limiter, &fakeProjects{}, &fakeStats{}).Run(context.Background(), testVideo())

	if !IsRateLimited(err) {
		t.Fatalf("want RateLimitError, got %v", err)
	}
	if transcoder.extractCalled {
		t.Error("transcoding started despite exhausted quota")
	}
	if recognizer.called {
		t.Error("transcription started despite exhausted quota")
	}
	if limiter.recorded {
		t.Error("attempt recorded despite exhausted quota")
	}
}

func TestRunHaltsWhenRecordRejected(t *testing.T) {
	transcoder := &fakeTranscoder{duration: 10}
	limiter := &fakeLimiter{
		quota:     models.Quota{Remaining: 1, Total: 3},
		recordErr: &models.RateLimitError{Message: "window closed"},
	}

	_, err := newTestPipeline(transcoder, &fakeRecognizer{}, limiter, &fakeProjects{}, &fakeStats{}).Run(context.Background(), testVideo())

	if !IsRateLimited(err) {
		t.Fatalf("want RateLimitError, got %v", err)
	}
	if transcoder.extractCalled {
		t.Error("transcoding started after rejected record")
	}
}

func TestRunRejectsOverlongVideo(t *testing.T) {
	transcoder := &fakeTranscoder{duration: 301}
	limiter := &fakeLimiter{quota: models.Quota{Remaining: 1, Total: 3}}

	_, err := newTestPipeline(transcoder, &fakeRecognizer{}, limiter, &fakeProjects{}, &fakeStats{}).Run(context.Background(), testVideo())

	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if transcoder.extractCalled {
		t.Error("audio extraction started for an over-limit video")
	}
}

func TestRunRejectsNonVideoAsset(t *testing.T) {
	limiter := &fakeLimiter{quota: models.Quota{Remaining: 1, Total: 3}}
	p := newTestPipeline(&fakeTranscoder{duration: 10}, &fakeRecognizer{}, limiter, &fakeProjects{}, &fakeStats{})

	audio := testVideo()
	audio.Kind = models.KindAudio
	_, err := p.Run(context.Background(), audio)

	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestRunPropagatesTranscriptionFailure(t *testing.T) {
	recognizer := &fakeRecognizer{err: &models.TranscriptionError{Transient: true, Message: "down"}}
	limiter := &fakeLimiter{quota: models.Quota{Remaining: 1, Total: 3}}
	projects := &fakeProjects{}

	_, err := newTestPipeline(&fakeTranscoder{duration: 10}, recognizer, limiter, projects, &fakeStats{}).Run(context.Background(), testVideo())

	var terr *models.TranscriptionError
	if !errors.As(err, &terr) {
		t.Fatalf("want TranscriptionError, got %v", err)
	}
	if projects.created != nil {
		t.Error("project persisted despite a failed run")
	}
}

func TestRunSurvivesStatsFailure(t *testing.T) {
	recognizer := &fakeRecognizer{segments: []models.RawSegment{{Text: "a", Timestamp: [2]float64{0, 1}}}}
	limiter := &fakeLimiter{quota: models.Quota{Remaining: 1, Total: 3}}
	st := &fakeStats{err: errors.New("stats service down")}

	result, err := newTestPipeline(&fakeTranscoder{duration: 10}, recognizer, limiter, &fakeProjects{}, st).Run(context.Background(), testVideo())
	if err != nil {
		t.Fatalf("stats failure must not fail the run: %v", err)
	}
	if len(result.Timeline) != 1 {
		t.Errorf("timeline lost: %+v", result.Timeline)
	}
}

func TestValidateUpload(t *testing.T) {
	if err := ValidateUpload("video/mp4", 1024, 2048); err != nil {
		t.Errorf("valid upload rejected: %v", err)
	}
	if err := ValidateUpload("audio/mpeg", 1024, 2048); err == nil {
		t.Error("non-video content type accepted")
	}
	if err := ValidateUpload("video/mp4", 4096, 2048); err == nil {
		t.Error("oversized upload accepted")
	}
}
