package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/iyashjayesh/captune-ai/internal/session"
	"github.com/iyashjayesh/captune-ai/internal/timeline"
	"github.com/iyashjayesh/captune-ai/utils"
)

var errInvalidSessionID = errors.New("invalid session ID format")

// EditCaptionPayload moves one boundary of one caption chunk.
type EditCaptionPayload struct {
	Which string   `json:"which" validate:"required,oneof=start end"`
	Value *float64 `json:"value" validate:"required"`
}

func (h *ApplicationHandler) sessionFromParams(c *fiber.Ctx) (*session.Session, error) {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, errInvalidSessionID
	}
	sess, ok := h.Sessions.Get(sessionID)
	if !ok {
		return nil, session.ErrNotFound
	}
	return sess, nil
}

// sessionErrorStatus maps sessionFromParams failures onto HTTP statuses.
func sessionErrorStatus(err error) int {
	if errors.Is(err, session.ErrNotFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusBadRequest
}

// GetSession returns the session's current timeline.
// GET /api/v1/sessions/:id
func (h *ApplicationHandler) GetSession(c *fiber.Ctx) error {
	sess, err := h.sessionFromParams(c)
	if err != nil {
		return utils.RespondWithError(c, sessionErrorStatus(err), err.Error())
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"session_id":     sess.ID,
		"project_id":     sess.ProjectID,
		"video_file":     sess.Video.FileName,
		"track_duration": sess.TrackDuration,
		"timeline":       sess.Timeline(),
	})
}

// EditCaption applies one validated boundary edit to the session timeline.
// The edit either fully succeeds or is rejected with the reason; the
// timeline is never left partially changed.
// PATCH /api/v1/sessions/:id/chunks/:index
func (h *ApplicationHandler) EditCaption(c *fiber.Ctx) error {
	sess, err := h.sessionFromParams(c)
	if err != nil {
		return utils.RespondWithError(c, sessionErrorStatus(err), err.Error())
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "invalid chunk index")
	}

	var payload EditCaptionPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("cannot parse JSON: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	updated, err := sess.ApplyEdit(index, timeline.Boundary(payload.Which), *payload.Value)
	if err != nil {
		return utils.RespondWithError(c, statusForError(err), err.Error())
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"session_id": sess.ID,
		"timeline":   updated,
	})
}
