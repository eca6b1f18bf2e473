// Package ffmpeg wraps the ffmpeg/ffprobe binaries as the pipeline's media
// transcoder: audio extraction for transcription and subtitle embedding for
// export.
package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/iyashjayesh/captune-ai/models"
)

// ffprobeOutput captures the slice of ffprobe's JSON output we care about.
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Transcoder shells out to ffmpeg/ffprobe. One Transcoder is created at
// startup and reused across runs; each call gets its own workspace directory
// that is removed before the call returns, so repeated exports in one session
// never accumulate intermediate files.
//
// No timeout is applied here. Transcode time grows with video length, so the
// caller owns the deadline through ctx.
type Transcoder struct {
	FFmpegPath  string
	FFprobePath string
	Log         *logrus.Logger
}

// New returns a Transcoder using the given binary paths, defaulting to
// "ffmpeg"/"ffprobe" on PATH.
func New(ffmpegPath, ffprobePath string, log *logrus.Logger) *Transcoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Transcoder{FFmpegPath: ffmpegPath, FFprobePath: ffprobePath, Log: log}
}

// ExtractAudio converts a video asset into an mp3 audio asset.
func (t *Transcoder) ExtractAudio(ctx context.Context, video models.MediaAsset) (models.MediaAsset, error) {
	ws, err := newWorkspace()
	if err != nil {
		return models.MediaAsset{}, &models.TranscodeError{Op: "extract-audio", Err: err}
	}
	defer ws.Cleanup()

	input, err := ws.WriteFile("input."+inputFormat(video), video.Data)
	if err != nil {
		return models.MediaAsset{}, &models.TranscodeError{Op: "extract-audio", Err: err}
	}
	output := ws.Path("output.mp3")

	if stderr, err := t.runFFmpeg(ctx, "-y", "-i", input, output); err != nil {
		return models.MediaAsset{}, &models.TranscodeError{Op: "extract-audio", Stderr: stderr, Err: err}
	}

	data, err := os.ReadFile(output)
	if err != nil {
		return models.MediaAsset{}, &models.TranscodeError{Op: "extract-audio", Err: err}
	}

	audio := models.MediaAsset{
		Data:     data,
		Kind:     models.KindAudio,
		Format:   "mp3",
		FileName: ReplaceExtension(video.FileName, "mp3"),
	}
	t.Log.WithFields(logrus.Fields{
		"input":  video.FileName,
		"output": audio.FileName,
		"bytes":  audio.Size(),
	}).Info("extracted audio track")
	return audio, nil
}

// EmbedSubtitles attaches srtContent to the video. EmbedSoft muxes the
// subtitles in as a mov_text stream with picture and audio stream-copied;
// EmbedBurn renders them into the pixels, which re-encodes the video.
func (t *Transcoder) EmbedSubtitles(ctx context.Context, video models.MediaAsset, srtContent string, mode models.EmbedMode) (models.MediaAsset, error) {
	ws, err := newWorkspace()
	if err != nil {
		return models.MediaAsset{}, &models.TranscodeError{Op: "embed-subtitles", Err: err}
	}
	defer ws.Cleanup()

	input, err := ws.WriteFile("input."+inputFormat(video), video.Data)
	if err != nil {
		return models.MediaAsset{}, &models.TranscodeError{Op: "embed-subtitles", Err: err}
	}
	subPath, err := ws.WriteFile("subtitles.srt", []byte(srtContent))
	if err != nil {
		return models.MediaAsset{}, &models.TranscodeError{Op: "embed-subtitles", Err: err}
	}
	output := ws.Path("output.mp4")

	var args []string
	switch mode {
	case models.EmbedBurn:
		filter := fmt.Sprintf("subtitles='%s':force_style='FontSize=24,FontName=Arial'", subPath)
		args = []string{"-y", "-i", input, "-vf", filter, "-c:a", "copy", output}
	default:
		args = []string{"-y", "-i", input, "-i", subPath, "-c", "copy", "-c:s", "mov_text", output}
	}

	if stderr, err := t.runFFmpeg(ctx, args...); err != nil {
		return models.MediaAsset{}, &models.TranscodeError{Op: "embed-subtitles", Stderr: stderr, Err: err}
	}

	data, err := os.ReadFile(output)
	if err != nil {
		return models.MediaAsset{}, &models.TranscodeError{Op: "embed-subtitles", Err: err}
	}

	captioned := models.MediaAsset{
		Data:     data,
		Kind:     models.KindVideo,
		Format:   "mp4",
		FileName: "captioned_" + video.FileName,
	}
	t.Log.WithFields(logrus.Fields{
		"input":  video.FileName,
		"output": captioned.FileName,
		"mode":   string(mode),
	}).Info("embedded subtitles")
	return captioned, nil
}

// ProbeDuration returns the asset's duration in seconds via ffprobe.
func (t *Transcoder) ProbeDuration(ctx context.Context, asset models.MediaAsset) (float64, error) {
	ws, err := newWorkspace()
	if err != nil {
		return 0, &models.TranscodeError{Op: "probe", Err: err}
	}
	defer ws.Cleanup()

	input, err := ws.WriteFile("input."+inputFormat(asset), asset.Data)
	if err != nil {
		return 0, &models.TranscodeError{Op: "probe", Err: err}
	}

	cmd := exec.CommandContext(ctx, t.FFprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		input,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return 0, &models.TranscodeError{Op: "probe", Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}

	var probed ffprobeOutput
	if err := json.Unmarshal(stdout.Bytes(), &probed); err != nil {
		return 0, &models.TranscodeError{Op: "probe", Err: fmt.Errorf("unmarshal ffprobe output: %w", err)}
	}
	if probed.Format.Duration == "" {
		return 0, &models.TranscodeError{Op: "probe", Err: fmt.Errorf("no duration in ffprobe output")}
	}

	seconds, err := strconv.ParseFloat(probed.Format.Duration, 64)
	if err != nil {
		return 0, &models.TranscodeError{Op: "probe", Err: fmt.Errorf("parse duration %q: %w", probed.Format.Duration, err)}
	}
	return seconds, nil
}

// runFFmpeg runs ffmpeg with args, returning captured stderr on failure.
func (t *Transcoder) runFFmpeg(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, t.FFmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return tail(stderr.String(), 2000), err
	}
	return "", nil
}

// tail keeps the last n bytes of s; ffmpeg puts the actual failure there.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func inputFormat(a models.MediaAsset) string {
	if a.Format != "" {
		return a.Format
	}
	if ext := FileExtension(a.FileName); ext != "" {
		return ext
	}
	// ffmpeg sniffs the container regardless, the extension is just a hint.
	return "bin"
}

// FileExtension returns the extension of name without the dot, or "".
func FileExtension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return name[idx+1:]
}

// ReplaceExtension swaps name's extension for ext (no dot).
func ReplaceExtension(name, ext string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return name + "." + ext
	}
	return name[:idx] + "." + ext
}
