package converter

import (
	"context"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"meeting-minutes/internal/app/api"
	"meeting-minutes/internal/app/logging"
	"meeting-minutes/internal/config"
)

// Prober reports the whole-second duration of an audio source.
type Prober interface {
	ProbeDuration(ctx context.Context, path string) (int, error)
}

// Options tune a Converter. Zero values fall back to the defaults of the
// pipeline configuration.
type Options struct {
	WindowSeconds  int
	Concurrency    int
	SegmentTimeout time.Duration
	Observer       Observer
}

// Result describes a finished transcription job.
type Result struct {
	Transcript    string
	DurationSec   int
	SegmentCount  int
	ProcessingDur time.Duration
}

// Converter turns one long recording into a single transcript by splitting
// it into fixed windows and transcribing them concurrently.
type Converter struct {
	prober    Prober
	scheduler *Scheduler
	window    int
	observer  Observer
	logger    *zap.Logger
}

// NewConverter wires a converter. Window and concurrency must be positive
// after defaults are applied.
func NewConverter(prober Prober, extractor Extractor, store ArtifactStore, transcriber api.Transcriber,
	opts Options, logger *zap.Logger) *Converter {
	if opts.WindowSeconds == 0 {
		opts.WindowSeconds = config.DefaultWindowSeconds
	}
	if opts.Concurrency == 0 {
		opts.Concurrency = config.DefaultConcurrency
	}
	if opts.Observer == nil {
		opts.Observer = NopObserver{}
	}
	logger = logging.OrNop(logger)

	return &Converter{
		prober:    prober,
		scheduler: NewScheduler(extractor, transcriber, store, opts.Concurrency, opts.SegmentTimeout, opts.Observer, logger),
		window:    opts.WindowSeconds,
		observer:  opts.Observer,
		logger:    logger,
	}
}

// TranscribeLongAudio returns the transcript of the recording at path.
func (c *Converter) TranscribeLongAudio(ctx context.Context, path string) (string, error) {
	result, err := c.Transcribe(ctx, path)
	if err != nil {
		return "", err
	}
	return result.Transcript, nil
}

// Transcribe runs the full pipeline and reports job statistics along with the
// transcript. A zero-length recording yields an empty transcript and no
// transcription calls.
func (c *Converter) Transcribe(ctx context.Context, path string) (*Result, error) {
	start := time.Now()
	name := filepath.Base(path)

	total, err := c.prober.ProbeDuration(ctx, path)
	if err != nil {
		c.logger.Error("Error probing audio duration", zap.String("file", name), zap.Error(err))
		return nil, err
	}

	segments := PlanSegments(total, c.window)
	c.logger.Info("Planned segments",
		zap.String("file", name),
		zap.Int("duration_sec", total),
		zap.Int("window_sec", c.window),
		zap.Int("segments", len(segments)),
		zap.Int("concurrency", c.scheduler.Limit()))
	c.observer.JobPlanned(path, len(segments))

	result := &Result{DurationSec: total, SegmentCount: len(segments)}
	if len(segments) == 0 {
		result.ProcessingDur = time.Since(start)
		return result, nil
	}

	parts, err := c.scheduler.Run(ctx, path, segments)
	if err != nil {
		c.logger.Error("Transcription job failed", zap.String("file", name), zap.Error(err))
		return nil, err
	}

	result.Transcript = AssembleTranscript(parts, len(segments))
	result.ProcessingDur = time.Since(start)
	c.logger.Info("Transcription job finished",
		zap.String("file", name),
		zap.Int("segments", len(segments)),
		zap.Duration("elapsed", result.ProcessingDur))
	return result, nil
}
