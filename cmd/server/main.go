package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/iyashjayesh/captune-ai/config"
	"github.com/iyashjayesh/captune-ai/handlers"
	"github.com/iyashjayesh/captune-ai/internal/ffmpeg"
	"github.com/iyashjayesh/captune-ai/internal/jobs"
	"github.com/iyashjayesh/captune-ai/internal/pipeline"
	"github.com/iyashjayesh/captune-ai/internal/ratelimit"
	"github.com/iyashjayesh/captune-ai/internal/session"
	"github.com/iyashjayesh/captune-ai/internal/stats"
	"github.com/iyashjayesh/captune-ai/internal/store"
	"github.com/iyashjayesh/captune-ai/internal/transcribe"
	"github.com/iyashjayesh/captune-ai/internal/worker"
)

func main() {
	cfg := config.Load()
	log := config.NewLogger()

	db, err := config.NewSupabase(cfg)
	if err != nil {
		log.Fatalf("failed to initialize persistence client: %v", err)
	}

	transcoder := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath, log)
	recognizer := transcribe.NewClient(cfg.TranscribeURL, cfg.TranscribeToken, cfg.TranscribeTimeout, log)
	limiter := ratelimit.NewClient(cfg.RateLimitURL)
	projects := store.NewProjectStore(db, log)

	pipe := &pipeline.Pipeline{
		Transcoder:  transcoder,
		Recognizer:  recognizer,
		Limiter:     limiter,
		Projects:    projects,
		Stats:       stats.NewClient(cfg.StatsURL),
		Log:         log,
		MaxDuration: cfg.MaxVideoDuration,
	}

	sessions := session.NewManager()
	tracker := jobs.NewTracker()
	dispatcher := worker.NewDispatcher(cfg.Workers, cfg.JobQueueSize, log)
	defer dispatcher.Stop()

	h := handlers.NewApplicationHandler(cfg, pipe, transcoder, limiter, sessions, projects, tracker, dispatcher, log)

	app := fiber.New(fiber.Config{
		// Leave the multipart framing some headroom over the video ceiling.
		BodyLimit: int(cfg.MaxUploadBytes) + 1024*1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(fiberlogger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "caption service is healthy",
		})
	})

	apiV1 := app.Group("/api/v1")

	apiV1.Get("/rate-limit", h.GetRateLimit)
	apiV1.Post("/videos/process", h.ProcessVideo)
	apiV1.Get("/jobs/:id", h.GetJob)

	sessionRoutes := apiV1.Group("/sessions/:id")
	sessionRoutes.Get("", h.GetSession)
	sessionRoutes.Patch("/chunks/:index", h.EditCaption)
	sessionRoutes.Post("/export", h.ExportSession)

	log.Infof("starting caption service on %s", cfg.ServerAddr)
	log.Fatal(app.Listen(cfg.ServerAddr))
}
