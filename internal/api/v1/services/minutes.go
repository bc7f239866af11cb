package services

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"meeting-minutes/internal/api/errors"
	"meeting-minutes/internal/api/v1/dto"
	"meeting-minutes/internal/app/api/openai/chat"
	"meeting-minutes/internal/app/converter"
	"meeting-minutes/internal/app/logging"
	"meeting-minutes/internal/app/model"
	"meeting-minutes/internal/app/repository"
	"meeting-minutes/internal/app/storage"
	"meeting-minutes/internal/app/util/files"
)

// AudioTranscriber runs the chunked transcription pipeline over one file.
type AudioTranscriber interface {
	Transcribe(ctx context.Context, path string) (*converter.Result, error)
}

// Mp3Converter re-encodes a whole recording to mp3.
type Mp3Converter interface {
	ConvertToMp3(ctx context.Context, input, output string) (string, error)
}

// ReportSummarizer writes the meeting report for a transcript.
type ReportSummarizer interface {
	Summarize(ctx context.Context, req chat.SummaryRequest) (string, error)
}

// ContextReader extracts the text of an uploaded context document.
type ContextReader interface {
	Read(path string) string
}

// needsMp3 lists upload types the transcoder re-encodes before transcription.
var needsMp3 = map[string]bool{
	"audio/x-m4a": true,
	"audio/webm":  true,
}

func needsConversion(req *dto.MinutesRequest) bool {
	if needsMp3[req.AudioMimeType] {
		return true
	}
	switch strings.ToLower(filepath.Ext(req.AudioPath)) {
	case ".m4a", ".webm":
		return true
	}
	return false
}

// MinutesServiceImpl implements MinutesService
type MinutesServiceImpl struct {
	transcriber AudioTranscriber
	mp3         Mp3Converter
	artifacts   converter.ArtifactStore
	summarizer  ReportSummarizer
	contexts    ContextReader
	archive     storage.Archive
	jobs        repository.JobDAO
	logger      *zap.Logger
	now         func() time.Time
}

// NewMinutesService creates a new minutes service
func NewMinutesService(
	transcriber AudioTranscriber,
	mp3 Mp3Converter,
	artifacts converter.ArtifactStore,
	summarizer ReportSummarizer,
	contexts ContextReader,
	archive storage.Archive,
	jobs repository.JobDAO,
	logger *zap.Logger,
) *MinutesServiceImpl {
	return &MinutesServiceImpl{
		transcriber: transcriber,
		mp3:         mp3,
		artifacts:   artifacts,
		summarizer:  summarizer,
		contexts:    contexts,
		archive:     archive,
		jobs:        jobs,
		logger:      logging.OrNop(logger),
		now:         time.Now,
	}
}

// Process converts, transcribes and summarizes an upload, archives the
// summary and records the job. Files created here are removed before it
// returns; the uploaded files themselves belong to the caller.
func (s *MinutesServiceImpl) Process(ctx context.Context, req *dto.MinutesRequest) (*dto.MinutesResponse, error) {
	job := &model.Job{
		ID:       uuid.New().String(),
		FileName: req.OriginalName,
	}
	if job.FileName == "" {
		job.FileName = filepath.Base(req.AudioPath)
	}

	response, err := s.process(ctx, req, job)
	if err != nil {
		job.HasError = 1
		job.ErrorMessage = err.Error()
		s.logger.Error("Processing error", zap.String("job_id", job.ID), zap.Error(err))
	}
	s.record(ctx, job)

	if err != nil {
		return nil, errors.NewProcessingError(err)
	}
	return response, nil
}

func (s *MinutesServiceImpl) process(ctx context.Context, req *dto.MinutesRequest, job *model.Job) (*dto.MinutesResponse, error) {
	audioPath := req.AudioPath
	if needsConversion(req) {
		converted, err := s.mp3.ConvertToMp3(ctx, req.AudioPath, files.Mp3Path(req.AudioPath))
		if err != nil {
			return nil, err
		}
		defer s.removeFile(converted)
		audioPath = converted
	}

	result, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, err
	}
	job.AudioDuration = result.DurationSec
	job.SegmentCount = result.SegmentCount
	job.Transcript = result.Transcript

	contextText := ""
	if req.ContextPath != "" {
		contextText = s.contexts.Read(req.ContextPath)
	}

	summary, err := s.summarizer.Summarize(ctx, chat.SummaryRequest{
		Transcript:  result.Transcript,
		Instruction: req.Instruction,
		ContextText: contextText,
		GeneralInfo: req.GeneralInfo,
	})
	if err != nil {
		return nil, err
	}
	job.Summary = summary

	location, err := s.archive.Save(ctx, storage.SummaryName(s.now()), summary)
	if err != nil {
		return nil, err
	}
	job.SummaryPath = location
	s.logger.Info("Summary file created", zap.String("job_id", job.ID), zap.String("location", location))

	return &dto.MinutesResponse{
		Message:     "Processing completed successfully",
		Summary:     summary,
		SummaryPath: location,
		JobID:       job.ID,
	}, nil
}

// record stores the job; a failing store never fails the request.
func (s *MinutesServiceImpl) record(ctx context.Context, job *model.Job) {
	job.CreatedAt = s.now()
	if err := s.jobs.Create(context.WithoutCancel(ctx), job); err != nil {
		s.logger.Warn("Failed to record job", zap.String("job_id", job.ID), zap.Error(err))
	}
}

func (s *MinutesServiceImpl) removeFile(path string) {
	if err := s.artifacts.Remove(path); err != nil {
		s.logger.Error("File deletion error", zap.String("file", filepath.Base(path)), zap.Error(err))
		return
	}
	s.logger.Info("File deleted", zap.String("file", filepath.Base(path)))
}
