package handlers

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/iyashjayesh/captune-ai/internal/ffmpeg"
	"github.com/iyashjayesh/captune-ai/internal/jobs"
	"github.com/iyashjayesh/captune-ai/internal/pipeline"
	"github.com/iyashjayesh/captune-ai/models"
	"github.com/iyashjayesh/captune-ai/utils"
)

// ProcessVideo accepts a video upload and starts a caption pipeline run in
// the background.
// POST /api/v1/videos/process
func (h *ApplicationHandler) ProcessVideo(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("missing video file: %v", err))
	}

	if err := pipeline.ValidateUpload(fileHeader.Header.Get("Content-Type"), fileHeader.Size, h.Config.MaxUploadBytes); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	f, err := fileHeader.Open()
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "could not open uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "could not read uploaded file")
	}

	video := models.MediaAsset{
		Data:     data,
		Kind:     models.KindVideo,
		Format:   ffmpeg.FileExtension(fileHeader.Filename),
		FileName: fileHeader.Filename,
	}

	jobID := uuid.New()
	h.Jobs.Register(jobID)
	job := &jobs.ProcessVideoJob{
		JobID:    jobID,
		Video:    video,
		Pipeline: h.Pipeline,
		Sessions: h.Sessions,
		Saver:    h.Saver,
		Tracker:  h.Jobs,
		Debounce: h.Config.DebounceWindow,
		Timeout:  h.Config.PipelineTimeout,
		Log:      h.Logger,
	}
	if !h.Dispatcher.Submit(job) {
		return utils.RespondWithError(c, fiber.StatusServiceUnavailable, "server is busy, try again shortly")
	}

	h.Logger.WithFields(map[string]interface{}{
		"job":   jobID,
		"video": video.FileName,
		"bytes": video.Size(),
	}).Info("pipeline run submitted")
	return utils.RespondWithJSON(c, fiber.StatusAccepted, fiber.Map{"job_id": jobID})
}

// GetJob reports the state of a submitted pipeline run.
// GET /api/v1/jobs/:id
func (h *ApplicationHandler) GetJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "invalid job ID format")
	}

	status, ok := h.Jobs.Get(jobID)
	if !ok {
		return utils.RespondWithError(c, fiber.StatusNotFound, "job not found")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, status)
}
