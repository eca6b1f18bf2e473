// Package jobs holds the background job types the worker pool executes and
// the tracker HTTP clients poll for their outcome.
package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iyashjayesh/captune-ai/internal/pipeline"
	"github.com/iyashjayesh/captune-ai/internal/session"
	"github.com/iyashjayesh/captune-ai/models"
)

// ProcessVideoJob runs the full caption pipeline for one uploaded video and,
// on success, opens an editing session over the normalized timeline.
type ProcessVideoJob struct {
	JobID    uuid.UUID
	Video    models.MediaAsset
	Pipeline *pipeline.Pipeline
	Sessions *session.Manager
	Saver    session.Saver
	Tracker  *Tracker
	Debounce time.Duration
	Timeout  time.Duration
	Log      *logrus.Logger
}

// Execute performs the run. The watchdog timeout bounds the transcode and
// network stages, which have no internal deadline of their own.
func (j *ProcessVideoJob) Execute(ctx context.Context) error {
	j.Tracker.SetProcessing(j.JobID)

	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	result, err := j.Pipeline.Run(ctx, j.Video)
	if err != nil {
		j.Tracker.SetFailed(j.JobID, err)
		return err
	}

	sess := session.New(result.ProjectID, j.Video, result.VideoDuration, result.Timeline, j.Saver, j.Debounce, j.Log)
	j.Sessions.Put(sess)
	j.Tracker.SetCompleted(j.JobID, sess.ID)
	return nil
}

// ID returns the job identifier used in logs and status lookups.
func (j *ProcessVideoJob) ID() string {
	return j.JobID.String()
}
