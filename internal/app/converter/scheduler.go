package converter

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"meeting-minutes/internal/app/api"
	apperrors "meeting-minutes/internal/app/errors"
	"meeting-minutes/internal/app/logging"
	"meeting-minutes/internal/app/model"
)

// Extractor materializes one segment of source as a standalone audio artifact.
type Extractor interface {
	ExtractSegment(ctx context.Context, source string, segment model.SegmentDescriptor) (string, error)
}

// ArtifactStore deletes transient segment artifacts.
type ArtifactStore interface {
	Remove(path string) error
}

// Scheduler drives segments through extract, transcribe and cleanup with at
// most limit segment pipelines in flight.
//
// Failure policy: the first segment error is the job's error. Once it is
// recorded no further segments are started, but pipelines already running
// are left to finish and clean up their artifacts before Run returns. Run
// never returns a partial result.
type Scheduler struct {
	extractor      Extractor
	transcriber    api.Transcriber
	store          ArtifactStore
	limit          int
	segmentTimeout time.Duration
	observer       Observer
	logger         *zap.Logger
}

// NewScheduler creates a scheduler. segmentTimeout bounds each extraction and
// each transcription call separately; zero disables it.
func NewScheduler(extractor Extractor, transcriber api.Transcriber, store ArtifactStore, limit int,
	segmentTimeout time.Duration, observer Observer, logger *zap.Logger) *Scheduler {
	if limit <= 0 {
		panic("converter: concurrency limit must be positive")
	}
	if observer == nil {
		observer = NopObserver{}
	}
	return &Scheduler{
		extractor:      extractor,
		transcriber:    transcriber,
		store:          store,
		limit:          limit,
		segmentTimeout: segmentTimeout,
		observer:       observer,
		logger:         logging.OrNop(logger),
	}
}

// Limit returns the maximum number of concurrently running segment pipelines.
func (s *Scheduler) Limit() int {
	return s.limit
}

// failure records the first error of a job and closes done when it does.
type failure struct {
	once sync.Once
	err  error
	done chan struct{}
}

func (f *failure) record(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Run processes segments of source and returns one PartialTranscript per
// segment in completion order.
func (s *Scheduler) Run(ctx context.Context, source string, segments []model.SegmentDescriptor) ([]model.PartialTranscript, error) {
	if len(segments) == 0 {
		return nil, nil
	}

	gate := make(chan struct{}, s.limit)
	results := make(chan model.PartialTranscript, len(segments))
	failed := &failure{done: make(chan struct{})}
	var wg sync.WaitGroup

launch:
	for _, segment := range segments {
		select {
		case gate <- struct{}{}:
		case <-failed.done:
			break launch
		case <-ctx.Done():
			failed.record(apperrors.Wrap(ctx.Err(), "transcription cancelled"))
			break launch
		}

		// a slot and a failure can become ready together; a recorded failure wins
		select {
		case <-failed.done:
			<-gate
			break launch
		default:
		}
		if err := ctx.Err(); err != nil {
			<-gate
			failed.record(apperrors.Wrap(err, "transcription cancelled"))
			break launch
		}

		wg.Add(1)
		go func(segment model.SegmentDescriptor) {
			defer wg.Done()
			defer func() { <-gate }()

			text, err := s.process(ctx, source, segment)
			if err != nil {
				failed.record(err)
				return
			}
			results <- model.PartialTranscript{Index: segment.Index, Text: text}
		}(segment)
	}

	wg.Wait()
	close(results)

	select {
	case <-failed.done:
		return nil, failed.err
	default:
	}

	parts := make([]model.PartialTranscript, 0, len(segments))
	for part := range results {
		parts = append(parts, part)
	}
	return parts, nil
}

// process runs one segment pipeline. The artifact is deleted before it returns.
func (s *Scheduler) process(ctx context.Context, source string, segment model.SegmentDescriptor) (text string, err error) {
	start := time.Now()
	s.observer.SegmentStarted(segment.Index)
	defer func() {
		s.observer.SegmentFinished(segment.Index, time.Since(start), err)
	}()

	artifact, err := s.extract(ctx, source, segment)
	if err != nil {
		s.logger.Error("Error creating chunk", zap.Int("index", segment.Index), zap.Error(err))
		return "", err
	}
	defer s.cleanup(artifact)

	text, err = s.transcribe(ctx, segment.Index, artifact)
	if err != nil {
		s.logger.Error("Transcription error", zap.Int("index", segment.Index),
			zap.String("chunk", filepath.Base(artifact)), zap.Error(err))
		return "", err
	}
	return text, nil
}

func (s *Scheduler) extract(ctx context.Context, source string, segment model.SegmentDescriptor) (string, error) {
	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	artifact, err := s.extractor.ExtractSegment(callCtx, source, segment)
	if err == nil {
		return artifact, nil
	}

	var extractionErr *apperrors.ExtractionError
	if errors.As(err, &extractionErr) {
		return "", err
	}
	return "", &apperrors.ExtractionError{Index: segment.Index, Cause: err}
}

func (s *Scheduler) transcribe(ctx context.Context, index int, artifact string) (string, error) {
	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	s.logger.Info("Transcribing chunk", zap.Int("index", index), zap.String("chunk", filepath.Base(artifact)))
	text, err := s.transcriber.Transcript(callCtx, artifact)
	if err != nil {
		return "", &apperrors.TranscriptionError{Index: index, Cause: err}
	}
	return text, nil
}

func (s *Scheduler) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.segmentTimeout > 0 {
		return context.WithTimeout(ctx, s.segmentTimeout)
	}
	return context.WithCancel(ctx)
}

// cleanup deletes an artifact; failures are logged and never change the outcome.
func (s *Scheduler) cleanup(artifact string) {
	if err := s.store.Remove(artifact); err != nil {
		s.logger.Warn("Error deleting chunk file", zap.String("chunk", filepath.Base(artifact)), zap.Error(err))
		return
	}
	s.logger.Info("Deleted chunk file", zap.String("chunk", filepath.Base(artifact)))
}
