package services

import (
	"context"
	stderrors "errors"

	"meeting-minutes/internal/api/errors"
	"meeting-minutes/internal/api/v1/dto"
	apperrors "meeting-minutes/internal/app/errors"
	"meeting-minutes/internal/app/repository"
)

// JobServiceImpl implements JobService
type JobServiceImpl struct {
	repository repository.JobDAO
}

// NewJobService creates a new job service
func NewJobService(repository repository.JobDAO) *JobServiceImpl {
	return &JobServiceImpl{repository: repository}
}

// GetJob returns one job record
func (s *JobServiceImpl) GetJob(ctx context.Context, id string) (*dto.JobResponse, error) {
	job, err := s.repository.Get(ctx, id)
	if stderrors.Is(err, apperrors.ErrJobNotFound) {
		return nil, errors.NewNotFoundError("Job")
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.KindInternal, "Failed to load job")
	}

	response := dto.FromModel(job)
	return &response, nil
}

// ListJobs returns the most recent job records, newest first
func (s *JobServiceImpl) ListJobs(ctx context.Context, query dto.ListJobsQuery) (*dto.ListJobsResponse, error) {
	jobs, err := s.repository.ListRecent(ctx, query.Limit)
	if err != nil {
		return nil, errors.WrapError(err, errors.KindInternal, "Failed to list jobs")
	}

	response := &dto.ListJobsResponse{Jobs: make([]dto.JobResponse, 0, len(jobs))}
	for i := range jobs {
		item := dto.FromModel(&jobs[i])
		// lists omit the large text fields
		item.Transcript = ""
		item.Summary = ""
		response.Jobs = append(response.Jobs, item)
	}
	response.Count = len(response.Jobs)
	return response, nil
}
