package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"meeting-minutes/internal/api/v1/dto"
)

// MockServices contains all mock services for testing
type MockServices struct {
	MinutesService *MockMinutesService
	JobService     *MockJobService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	return &MockServices{
		MinutesService: NewMockMinutesService(t),
		JobService:     NewMockJobService(t),
	}
}

// MockMinutesService is a mock implementation of MinutesService
type MockMinutesService struct {
	mock.Mock
}

func NewMockMinutesService(t *testing.T) *MockMinutesService {
	m := &MockMinutesService{}
	m.Test(t)
	return m
}

func (m *MockMinutesService) Process(ctx context.Context, req *dto.MinutesRequest) (*dto.MinutesResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MinutesResponse), args.Error(1)
}

// MockJobService is a mock implementation of JobService
type MockJobService struct {
	mock.Mock
}

func NewMockJobService(t *testing.T) *MockJobService {
	m := &MockJobService{}
	m.Test(t)
	return m
}

func (m *MockJobService) GetJob(ctx context.Context, id string) (*dto.JobResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JobResponse), args.Error(1)
}

func (m *MockJobService) ListJobs(ctx context.Context, query dto.ListJobsQuery) (*dto.ListJobsResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJobsResponse), args.Error(1)
}
