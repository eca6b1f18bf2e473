package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/iyashjayesh/captune-ai/internal/ffmpeg"
	"github.com/iyashjayesh/captune-ai/internal/subtitle"
	"github.com/iyashjayesh/captune-ai/models"
	"github.com/iyashjayesh/captune-ai/utils"
)

// ExportPayload selects the export artifact. Mode "srt" is pure formatting;
// "video" re-muxes the source through the transcoder, optionally burning the
// subtitles into the pixels.
type ExportPayload struct {
	Mode string `json:"mode" validate:"required,oneof=srt video"`
	Burn bool   `json:"burn"`
}

// ExportSession renders the session's current timeline into the requested
// artifact. Always the state at this moment, including every accepted edit.
// POST /api/v1/sessions/:id/export
func (h *ApplicationHandler) ExportSession(c *fiber.Ctx) error {
	sess, err := h.sessionFromParams(c)
	if err != nil {
		return utils.RespondWithError(c, sessionErrorStatus(err), err.Error())
	}

	var payload ExportPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("cannot parse JSON: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	srtContent := subtitle.Format(sess.Timeline())

	if payload.Mode == "srt" {
		name := "captioned_" + ffmpeg.ReplaceExtension(sess.Video.FileName, "srt")
		c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
		return c.Status(fiber.StatusOK).SendString(srtContent)
	}

	mode := models.EmbedSoft
	if payload.Burn {
		mode = models.EmbedBurn
	}
	captioned, err := h.Transcoder.EmbedSubtitles(c.Context(), sess.Video, srtContent, mode)
	if err != nil {
		h.Logger.WithError(err).WithField("session", sess.ID).Error("video export failed")
		return utils.RespondWithError(c, statusForError(err), err.Error())
	}

	c.Set(fiber.HeaderContentType, "video/mp4")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", captioned.FileName))
	return c.Status(fiber.StatusOK).Send(captioned.Data)
}
