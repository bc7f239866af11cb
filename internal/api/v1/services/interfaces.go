package services

import (
	"context"

	"meeting-minutes/internal/api/v1/dto"
)

// MinutesService turns an uploaded recording into a meeting report
type MinutesService interface {
	Process(ctx context.Context, req *dto.MinutesRequest) (*dto.MinutesResponse, error)
}

// JobService exposes stored job records
type JobService interface {
	GetJob(ctx context.Context, id string) (*dto.JobResponse, error)
	ListJobs(ctx context.Context, query dto.ListJobsQuery) (*dto.ListJobsResponse, error)
}
