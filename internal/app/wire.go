//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"
	"meeting-minutes/internal/api/server"
	v1routes "meeting-minutes/internal/api/v1/routes"
	"meeting-minutes/internal/api/v1/services"
	"meeting-minutes/internal/app/api/openai/chat"
	"meeting-minutes/internal/app/audio"
	"meeting-minutes/internal/app/config"
	"meeting-minutes/internal/app/contextfile"
	"meeting-minutes/internal/app/converter"
	envconfig "meeting-minutes/internal/config"
)

var converterSet = wire.NewSet(
	provideOpenAIClient,
	provideRemoteTranscriber,
	provideAudioEngine,
	provideConverterOptions,
	converter.NewConverter,
	wire.Bind(new(converter.Prober), new(*audio.Engine)),
	wire.Bind(new(converter.Extractor), new(*audio.Engine)),
	wire.Bind(new(converter.ArtifactStore), new(*audio.Engine)),
)

var minutesSet = wire.NewSet(
	converterSet,
	provideSummarizer,
	provideArchive,
	provideJobDAO,
	contextfile.NewReader,
	services.NewMinutesService,
	wire.Bind(new(services.AudioTranscriber), new(*converter.Converter)),
	wire.Bind(new(services.Mp3Converter), new(*audio.Engine)),
	wire.Bind(new(services.ReportSummarizer), new(*chat.Summarizer)),
	wire.Bind(new(services.ContextReader), new(*contextfile.Reader)),
	wire.Bind(new(services.MinutesService), new(*services.MinutesServiceImpl)),
)

// InitializeConverter builds the chunked transcription pipeline
func InitializeConverter(cfg *config.Config, keys *envconfig.APIKeys, observer converter.Observer, logger *zap.Logger) (*converter.Converter, error) {
	wire.Build(converterSet)
	return &converter.Converter{}, nil
}

// InitializeMinutesService builds the transcribe, summarize and archive flow
func InitializeMinutesService(cfg *config.Config, keys *envconfig.APIKeys, observer converter.Observer, logger *zap.Logger) (services.MinutesService, func(), error) {
	wire.Build(minutesSet)
	return nil, nil, nil
}

// InitializeServer builds the HTTP API with pipeline metrics
func InitializeServer(cfg *config.Config, keys *envconfig.APIKeys, logger *zap.Logger) (*server.Server, func(), error) {
	wire.Build(
		minutesSet,
		provideMetrics,
		provideMetricsObserver,
		provideMetricsHandler,
		services.NewJobService,
		wire.Bind(new(services.JobService), new(*services.JobServiceImpl)),
		wire.Struct(new(v1routes.ServiceContainer), "*"),
		provideServerConfig,
		server.NewServer,
	)
	return &server.Server{}, nil, nil
}
