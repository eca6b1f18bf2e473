// Package pipeline runs the caption generation sequence for one video:
// rate-limit gate, duration check, audio extraction, transcription, timestamp
// normalization, project creation, stats reporting. Stages run strictly in
// order; stage N's output is fully materialized before stage N+1 starts.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iyashjayesh/captune-ai/internal/timeline"
	"github.com/iyashjayesh/captune-ai/models"
)

// Transcoder is the media engine port.
type Transcoder interface {
	ProbeDuration(ctx context.Context, asset models.MediaAsset) (float64, error)
	ExtractAudio(ctx context.Context, video models.MediaAsset) (models.MediaAsset, error)
	EmbedSubtitles(ctx context.Context, video models.MediaAsset, srtContent string, mode models.EmbedMode) (models.MediaAsset, error)
}

// Recognizer is the speech-to-text port.
type Recognizer interface {
	Transcribe(ctx context.Context, audio models.MediaAsset) ([]models.RawSegment, error)
}

// Limiter is the rate-limit collaborator port.
type Limiter interface {
	Check(ctx context.Context) (models.Quota, error)
	Record(ctx context.Context) error
}

// ProjectStore is the persistence collaborator port.
type ProjectStore interface {
	Create(ctx context.Context, project models.Project) (uuid.UUID, error)
}

// StatsReporter is the stats aggregation port.
type StatsReporter interface {
	Report(ctx context.Context, seconds float64) error
}

// Pipeline wires the ports together. MaxDuration is the ceiling (seconds) a
// video may run; the transcoder itself does not enforce it.
type Pipeline struct {
	Transcoder  Transcoder
	Recognizer  Recognizer
	Limiter     Limiter
	Projects    ProjectStore
	Stats       StatsReporter
	Log         *logrus.Logger
	MaxDuration float64
}

// Result carries everything a completed run produced.
type Result struct {
	ProjectID      uuid.UUID
	Timeline       models.CaptionTimeline
	VideoDuration  float64
	AudioFileName  string
	AudioFileSize  int64
	ProcessingTime float64
}

// Run executes one full pipeline run. Every stage failure is fail-stop: the
// run returns with no partial state persisted. Cancelling ctx abandons
// whichever stage is in flight.
func (p *Pipeline) Run(ctx context.Context, video models.MediaAsset) (*Result, error) {
	if video.Kind != models.KindVideo {
		return nil, models.NewValidationError("expected a video file, got %q", string(video.Kind))
	}
	if len(video.Data) == 0 {
		return nil, models.NewValidationError("uploaded file is empty")
	}

	// The gate comes first so an exhausted quota costs no transcode work.
	quota, err := p.Limiter.Check(ctx)
	if err != nil {
		return nil, err
	}
	if quota.Remaining <= 0 {
		return nil, &models.RateLimitError{Remaining: quota.Remaining, Total: quota.Total}
	}
	if err := p.Limiter.Record(ctx); err != nil {
		return nil, err
	}

	duration, err := p.Transcoder.ProbeDuration(ctx, video)
	if err != nil {
		return nil, err
	}
	if p.MaxDuration > 0 && duration > p.MaxDuration {
		return nil, models.NewValidationError(
			"video length %.1fs exceeds the %.0fs limit", duration, p.MaxDuration)
	}

	started := time.Now()

	audio, err := p.Transcoder.ExtractAudio(ctx, video)
	if err != nil {
		return nil, err
	}
	p.Log.WithField("video", video.FileName).Info("audio extraction complete")

	segments, err := p.Recognizer.Transcribe(ctx, audio)
	if err != nil {
		return nil, err
	}

	tl := timeline.Normalize(segments)
	processing := time.Since(started).Seconds()
	p.Log.WithFields(logrus.Fields{
		"video":    video.FileName,
		"chunks":   len(tl),
		"took_sec": processing,
	}).Info("transcription normalized")

	serialized, err := models.SerializeTimeline(tl)
	if err != nil {
		return nil, err
	}

	projectID, err := p.Projects.Create(ctx, models.Project{
		VideoFileName:     video.FileName,
		VideoFileSize:     video.Size(),
		VideoFileDuration: duration,
		AudioFileName:     audio.FileName,
		AudioFileSize:     audio.Size(),
		Transcription:     serialized,
		ProcessingTime:    processing,
	})
	if err != nil {
		return nil, err
	}

	// Stats are informational only; a failed report never fails the run.
	if err := p.Stats.Report(ctx, duration); err != nil {
		p.Log.WithError(err).Warn("stats report failed")
	}

	return &Result{
		ProjectID:      projectID,
		Timeline:       tl,
		VideoDuration:  duration,
		AudioFileName:  audio.FileName,
		AudioFileSize:  audio.Size(),
		ProcessingTime: processing,
	}, nil
}

// ValidateUpload applies the pre-pipeline input checks shared by the HTTP
// and CLI frontends: declared content type and size ceiling.
func ValidateUpload(contentType string, size int64, maxBytes int64) error {
	if !strings.HasPrefix(contentType, "video/") {
		return models.NewValidationError("invalid file type %q, expected a video", contentType)
	}
	if maxBytes > 0 && size > maxBytes {
		return models.NewValidationError("file size %d exceeds the %d byte limit", size, maxBytes)
	}
	return nil
}

// IsRateLimited reports whether err is the expected quota-exhausted
// condition rather than a fault.
func IsRateLimited(err error) bool {
	var rl *models.RateLimitError
	return errors.As(err, &rl)
}
