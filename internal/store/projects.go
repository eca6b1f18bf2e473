// Package store persists project records through the external persistence
// collaborator. Only metadata and the serialized transcription are stored;
// media bytes never leave the pipeline.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	supa "github.com/supabase-community/supabase-go"

	"github.com/iyashjayesh/captune-ai/models"
)

// ProjectStore wraps the collaborator's create / update-transcription
// operations. The schema is owned on the other side of this boundary.
type ProjectStore struct {
	DB  *supa.Client
	Log *logrus.Logger
}

func NewProjectStore(db *supa.Client, log *logrus.Logger) *ProjectStore {
	return &ProjectStore{DB: db, Log: log}
}

// Create inserts a new project record and returns its id.
func (s *ProjectStore) Create(ctx context.Context, project models.Project) (uuid.UUID, error) {
	project.ID = uuid.New()
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	bodyBytes, _, err := s.DB.From("projects").
		Insert(project, false, "", "representation", "").
		Execute()
	if err != nil {
		return uuid.Nil, fmt.Errorf("create project: %w", err)
	}

	var created []models.Project
	if err := json.Unmarshal(bodyBytes, &created); err != nil {
		return uuid.Nil, fmt.Errorf("create project: decode response: %w", err)
	}
	if len(created) == 0 {
		return uuid.Nil, fmt.Errorf("create project: empty response")
	}

	s.Log.WithFields(logrus.Fields{
		"project": created[0].ID,
		"video":   project.VideoFileName,
	}).Info("project created")
	return created[0].ID, nil
}

// UpdateTranscription replaces the stored transcription for a project. Used
// by the editing session's debounced saves.
func (s *ProjectStore) UpdateTranscription(ctx context.Context, projectID uuid.UUID, transcription string) error {
	update := map[string]interface{}{
		"transcription": transcription,
		"updated_at":    time.Now(),
	}

	_, count, err := s.DB.From("projects").
		Update(update, "", "exact").
		Eq("id", projectID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("update transcription: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("update transcription: project %s not found", projectID)
	}

	s.Log.WithField("project", projectID).Info("transcription saved")
	return nil
}
