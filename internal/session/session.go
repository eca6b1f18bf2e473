// Package session owns the editable caption timeline between the end of a
// pipeline run and export. One session owns one timeline; there is no
// multi-editor merge protocol.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iyashjayesh/captune-ai/internal/timeline"
	"github.com/iyashjayesh/captune-ai/models"
)

// Saver persists the serialized timeline for a project. Implemented by the
// project store; faked in tests.
type Saver interface {
	UpdateTranscription(ctx context.Context, projectID uuid.UUID, transcription string) error
}

// Session holds the current timeline for one processed video and pushes
// edits through the validated editor. Successful edits schedule a debounced
// persistence write: rapid successive edits coalesce into a single write of
// the latest state after a quiet window, and a new edit supersedes any write
// still pending, so writes never reorder.
type Session struct {
	ID            uuid.UUID
	ProjectID     uuid.UUID
	Video         models.MediaAsset
	TrackDuration float64

	mu       sync.Mutex
	tl       models.CaptionTimeline
	timer    *time.Timer
	closed   bool
	debounce time.Duration
	saver    Saver
	log      *logrus.Logger
}

// New creates a session over a freshly normalized timeline.
func New(projectID uuid.UUID, video models.MediaAsset, trackDuration float64, tl models.CaptionTimeline, saver Saver, debounce time.Duration, log *logrus.Logger) *Session {
	if debounce <= 0 {
		debounce = time.Second
	}
	return &Session{
		ID:            uuid.New(),
		ProjectID:     projectID,
		Video:         video,
		TrackDuration: trackDuration,
		tl:            tl,
		debounce:      debounce,
		saver:         saver,
		log:           log,
	}
}

// Timeline returns a copy of the current timeline state.
func (s *Session) Timeline() models.CaptionTimeline {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tl.Clone()
}

// ApplyEdit moves one chunk boundary. A rejected edit leaves the timeline
// exactly as it was; an accepted one replaces the session state and schedules
// a save.
func (s *Session) ApplyEdit(index int, which timeline.Boundary, value float64) (models.CaptionTimeline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := timeline.SetBoundary(s.tl, index, which, value, s.TrackDuration)
	if err != nil {
		return nil, err
	}
	s.tl = updated
	s.scheduleSaveLocked()
	return updated.Clone(), nil
}

// scheduleSaveLocked arms the debounce timer, superseding any pending save.
// Caller holds s.mu.
func (s *Session) scheduleSaveLocked() {
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.save)
}

// save writes the current state. Runs on the timer goroutine after the quiet
// window; also used by Flush.
func (s *Session) save() {
	s.mu.Lock()
	current := s.tl.Clone()
	s.mu.Unlock()

	serialized, err := models.SerializeTimeline(current)
	if err != nil {
		s.log.WithError(err).Error("serialize timeline for save")
		return
	}
	if err := s.saver.UpdateTranscription(context.Background(), s.ProjectID, serialized); err != nil {
		s.log.WithError(err).WithField("project", s.ProjectID).Error("persist edited timeline")
	}
}

// Flush cancels any pending debounced write and saves immediately if one was
// pending.
func (s *Session) Flush() {
	s.mu.Lock()
	pending := s.timer != nil && s.timer.Stop()
	s.timer = nil
	s.mu.Unlock()

	if pending {
		s.save()
	}
}

// Close flushes pending work and stops the session from scheduling more.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.Flush()
}
