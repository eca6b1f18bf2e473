// Package config loads service configuration from the environment (with an
// optional .env file) and owns the shared client initializers.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration.
type Config struct {
	ServerAddr string

	FFmpegPath  string
	FFprobePath string

	TranscribeURL     string
	TranscribeToken   string
	TranscribeTimeout time.Duration

	RateLimitURL string
	StatsURL     string

	SupabaseURL string
	SupabaseKey string

	MaxVideoDuration float64 // seconds
	MaxUploadBytes   int64

	DebounceWindow  time.Duration
	Workers         int
	JobQueueSize    int
	PipelineTimeout time.Duration
}

// Load reads .env if present and assembles the configuration. Every setting
// has a usable default except the collaborator endpoints and credentials.
func Load() *Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),

		FFmpegPath:  getEnv("FFMPEG_PATH", "ffmpeg"),
		FFprobePath: getEnv("FFPROBE_PATH", "ffprobe"),

		TranscribeURL:     getEnv("TRANSCRIBE_URL", ""),
		TranscribeToken:   getEnv("TRANSCRIBE_TOKEN", ""),
		TranscribeTimeout: getDuration("TRANSCRIBE_TIMEOUT", 60*time.Second),

		RateLimitURL: getEnv("RATE_LIMIT_URL", ""),
		StatsURL:     getEnv("STATS_URL", ""),

		SupabaseURL: getEnv("SUPABASE_URL", ""),
		SupabaseKey: getEnv("SUPABASE_SERVICE_KEY", ""),

		MaxVideoDuration: getFloat("MAX_VIDEO_DURATION_SEC", 300),
		MaxUploadBytes:   getInt64("MAX_UPLOAD_BYTES", 50*1024*1024),

		DebounceWindow:  getDuration("EDIT_DEBOUNCE_WINDOW", time.Second),
		Workers:         getInt("PIPELINE_WORKERS", 2),
		JobQueueSize:    getInt("JOB_QUEUE_SIZE", 16),
		PipelineTimeout: getDuration("PIPELINE_TIMEOUT", 10*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
