package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"meeting-minutes/internal/api/server"
	"meeting-minutes/internal/app/api"
	"meeting-minutes/internal/app/api/openai"
	"meeting-minutes/internal/app/api/openai/chat"
	"meeting-minutes/internal/app/api/openai/whisper"
	"meeting-minutes/internal/app/audio"
	"meeting-minutes/internal/app/config"
	"meeting-minutes/internal/app/converter"
	"meeting-minutes/internal/app/repository"
	"meeting-minutes/internal/app/repository/pg"
	"meeting-minutes/internal/app/repository/sqlite"
	"meeting-minutes/internal/app/storage"
	envconfig "meeting-minutes/internal/config"
)

const bucketCheckTimeout = 10 * time.Second

// provideOpenAIClient fails when no API key is configured
func provideOpenAIClient(cfg *config.Config, keys *envconfig.APIKeys) (*goopenai.Client, error) {
	if err := envconfig.RequireAPIKeys(keys); err != nil {
		return nil, err
	}
	return openai.NewClient(keys.OpenAI, cfg.OpenAI.BaseURL), nil
}

// provideRemoteTranscriber with openai's remote speech-to-text service
func provideRemoteTranscriber(client *goopenai.Client, cfg *config.Config) api.Transcriber {
	return whisper.NewRemoteTranscriber(client, cfg.OpenAI.TranscriptionModel)
}

func provideSummarizer(client *goopenai.Client, cfg *config.Config, logger *zap.Logger) (*chat.Summarizer, error) {
	return chat.NewSummarizer(client, cfg.OpenAI.SummaryModel, cfg.OpenAI.SystemPromptPath, logger)
}

func provideAudioEngine(cfg *config.Config, logger *zap.Logger) *audio.Engine {
	var opts []audio.EngineOption
	if cfg.Pipeline.WorkDir != "" {
		opts = append(opts, audio.WithWorkDir(cfg.Pipeline.WorkDir))
	}
	return audio.NewEngine(cfg.Pipeline.FFmpegPath, cfg.Pipeline.FFprobePath, logger, opts...)
}

func provideConverterOptions(cfg *config.Config, observer converter.Observer) converter.Options {
	return converter.Options{
		WindowSeconds:  cfg.Pipeline.WindowSeconds,
		Concurrency:    cfg.Pipeline.Concurrency,
		SegmentTimeout: cfg.Pipeline.SegmentTimeout(),
		Observer:       observer,
	}
}

func provideMetrics() *converter.Metrics {
	return converter.NewMetrics("minutes")
}

func provideMetricsObserver(metrics *converter.Metrics) converter.Observer {
	return metrics
}

func provideMetricsHandler(metrics *converter.Metrics) http.Handler {
	return metrics.Handler()
}

// provideArchive selects the MinIO bucket when one is configured, the
// local archive directory otherwise
func provideArchive(cfg *config.Config, logger *zap.Logger) (storage.Archive, error) {
	m := cfg.Storage.Minio
	if m == nil {
		return storage.NewLocalArchive(cfg.Storage.ArchiveDir, logger), nil
	}

	archive, err := storage.NewMinioArchive(storage.MinioOptions{
		Endpoint:  m.Endpoint,
		AccessKey: m.AccessKey,
		SecretKey: m.SecretKey,
		Bucket:    m.Bucket,
		Region:    m.Region,
		UseSSL:    m.UseSSL,
	}, logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), bucketCheckTimeout)
	defer cancel()
	if err := archive.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return archive, nil
}

// provideJobDAO opens the configured job store and creates its schema
func provideJobDAO(cfg *config.Config, logger *zap.Logger) (repository.JobDAO, func(), error) {
	var (
		dao repository.JobDAO
		err error
	)
	switch cfg.Database.Driver {
	case "postgres":
		dao, err = pg.NewPostgresDB(cfg.Database.DSN)
	case "sqlite3":
		dao, err = sqlite.NewSQLiteDB(cfg.Database.DSN)
	default:
		err = fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	if err := dao.EnsureSchema(context.Background()); err != nil {
		_ = dao.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := dao.Close(); err != nil {
			logger.Warn("Failed to close job store", zap.Error(err))
		}
	}
	return dao, cleanup, nil
}

func provideServerConfig(cfg *config.Config) server.Config {
	return server.Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    5 * time.Minute,
		WriteTimeout:   30 * time.Minute,
		IdleTimeout:    2 * time.Minute,
		Environment:    cfg.Server.Environment,
		UploadDir:      cfg.Server.UploadDir,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		StaticDir:      cfg.Server.StaticDir,
	}
}
