package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/iyashjayesh/captune-ai/config"
	"github.com/iyashjayesh/captune-ai/internal/jobs"
	"github.com/iyashjayesh/captune-ai/internal/pipeline"
	"github.com/iyashjayesh/captune-ai/internal/session"
	"github.com/iyashjayesh/captune-ai/internal/worker"
	"github.com/iyashjayesh/captune-ai/models"
)

var validate = validator.New()

// ApplicationHandler holds the shared dependencies for all HTTP handlers.
type ApplicationHandler struct {
	Config     *config.Config
	Pipeline   *pipeline.Pipeline
	Transcoder pipeline.Transcoder
	Limiter    pipeline.Limiter
	Sessions   *session.Manager
	Saver      session.Saver
	Jobs       *jobs.Tracker
	Dispatcher *worker.Dispatcher
	Logger     *logrus.Logger
}

// NewApplicationHandler wires the handler dependency struct.
func NewApplicationHandler(cfg *config.Config, p *pipeline.Pipeline, transcoder pipeline.Transcoder, limiter pipeline.Limiter, sessions *session.Manager, saver session.Saver, tracker *jobs.Tracker, dispatcher *worker.Dispatcher, logger *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		Config:     cfg,
		Pipeline:   p,
		Transcoder: transcoder,
		Limiter:    limiter,
		Sessions:   sessions,
		Saver:      saver,
		Jobs:       tracker,
		Dispatcher: dispatcher,
		Logger:     logger,
	}
}

// statusForError maps the domain error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	var (
		validation    *models.ValidationError
		edit          *models.EditError
		rateLimit     *models.RateLimitError
		transcription *models.TranscriptionError
		transcode     *models.TranscodeError
	)
	switch {
	case errors.As(err, &validation):
		return fiber.StatusBadRequest
	case errors.As(err, &edit):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &rateLimit):
		return fiber.StatusTooManyRequests
	case errors.As(err, &transcription):
		return fiber.StatusBadGateway
	case errors.As(err, &transcode):
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}
