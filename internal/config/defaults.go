package config

import "time"

// Pipeline default configuration constants
const (
	// Window and concurrency defaults
	DefaultWindowSeconds = 300
	DefaultConcurrency   = 10

	// Upper bounds accepted by validation
	MaxConcurrency   = 100
	MaxWindowSeconds = 3600
	MaxCallTimeout   = 30 * time.Minute

	// External tools
	DefaultFFmpegPath  = "ffmpeg"
	DefaultFFprobePath = "ffprobe"

	// OpenAI models
	DefaultTranscriptionModel = "whisper-1"
	DefaultSummaryModel       = "gpt-4o"

	// Server defaults
	DefaultHost           = "0.0.0.0"
	DefaultHTTPPort       = "3000"
	DefaultUploadDir      = "/tmp/uploads"
	DefaultArchiveDir     = "/tmp"
	DefaultMaxUploadBytes = 200 * 1024 * 1024
	DefaultSystemPrompt   = "systemPrompt.txt"

	// Storage defaults
	DefaultDatabaseDriver = "sqlite3"
	DefaultDatabaseDSN    = "data/minutes.db"
)

// DefaultHTTPPortFromEnv returns PORT from the environment or DefaultHTTPPort
func DefaultHTTPPortFromEnv() string {
	return getEnvOrDefault("PORT", DefaultHTTPPort)
}
