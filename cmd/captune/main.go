// Command captune runs the caption pipeline once against a local video file
// and writes the resulting subtitle file (and optionally a captioned video)
// next to it. Collaborator services are skipped: offline runs are not rate
// limited and nothing is persisted.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/iyashjayesh/captune-ai/config"
	"github.com/iyashjayesh/captune-ai/internal/ffmpeg"
	"github.com/iyashjayesh/captune-ai/internal/pipeline"
	"github.com/iyashjayesh/captune-ai/internal/subtitle"
	"github.com/iyashjayesh/captune-ai/internal/transcribe"
	"github.com/iyashjayesh/captune-ai/models"
)

// Offline stand-ins for the collaborator ports.
type (
	noopLimiter  struct{}
	noopProjects struct{}
	noopStats    struct{}
)

func (noopLimiter) Check(context.Context) (models.Quota, error) {
	return models.Quota{Remaining: 1, Total: 1}, nil
}
func (noopLimiter) Record(context.Context) error { return nil }

func (noopProjects) Create(context.Context, models.Project) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (noopStats) Report(context.Context, float64) error { return nil }

func main() {
	var (
		outDir      string
		exportVideo bool
		burn        bool
	)

	root := &cobra.Command{
		Use:   "captune <video-file>",
		Short: "Generate timestamped captions for a short video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], outDir, exportVideo, burn)
		},
	}
	root.Flags().StringVarP(&outDir, "out", "o", ".", "directory for exported files")
	root.Flags().BoolVar(&exportVideo, "video", false, "also export a captioned video")
	root.Flags().BoolVar(&burn, "burn", false, "burn subtitles into the pixels instead of soft-embedding")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, inputPath, outDir string, exportVideo, burn bool) error {
	cfg := config.Load()
	log := config.NewLogger()

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	fileName := filepath.Base(inputPath)
	video := models.MediaAsset{
		Data:     data,
		Kind:     models.KindVideo,
		Format:   ffmpeg.FileExtension(fileName),
		FileName: fileName,
	}

	transcoder := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath, log)
	pipe := &pipeline.Pipeline{
		Transcoder:  transcoder,
		Recognizer:  transcribe.NewClient(cfg.TranscribeURL, cfg.TranscribeToken, cfg.TranscribeTimeout, log),
		Limiter:     noopLimiter{},
		Projects:    noopProjects{},
		Stats:       noopStats{},
		Log:         log,
		MaxDuration: cfg.MaxVideoDuration,
	}

	result, err := pipe.Run(ctx, video)
	if err != nil {
		return err
	}

	srtContent := subtitle.Format(result.Timeline)
	srtPath := filepath.Join(outDir, "captioned_"+ffmpeg.ReplaceExtension(fileName, "srt"))
	if err := os.WriteFile(srtPath, []byte(srtContent), 0o644); err != nil {
		return fmt.Errorf("write subtitles: %w", err)
	}
	fmt.Printf("wrote %s (%d captions)\n", srtPath, len(result.Timeline))

	if !exportVideo {
		return nil
	}

	mode := models.EmbedSoft
	if burn {
		mode = models.EmbedBurn
	}
	captioned, err := transcoder.EmbedSubtitles(ctx, video, srtContent, mode)
	if err != nil {
		return err
	}
	videoPath := filepath.Join(outDir, captioned.FileName)
	if err := os.WriteFile(videoPath, captioned.Data, 0o644); err != nil {
		return fmt.Errorf("write video: %w", err)
	}
	fmt.Printf("wrote %s\n", videoPath)
	return nil
}
