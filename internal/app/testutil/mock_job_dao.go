package testutil

import (
	"context"
	"sort"
	"sync"

	apperrors "meeting-minutes/internal/app/errors"
	"meeting-minutes/internal/app/model"
)

// MockJobDAO is an in-memory implementation of repository.JobDAO.
type MockJobDAO struct {
	mu     sync.RWMutex
	jobs   map[string]model.Job
	closed bool

	// CreateErr, when set, is returned by Create.
	CreateErr error
}

func NewMockJobDAO() *MockJobDAO {
	return &MockJobDAO{jobs: make(map[string]model.Job)}
}

func (m *MockJobDAO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MockJobDAO) EnsureSchema(context.Context) error {
	return nil
}

func (m *MockJobDAO) Create(_ context.Context, job *model.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if m.closed {
		return apperrors.New("database is closed")
	}
	if _, exists := m.jobs[job.ID]; exists {
		return apperrors.Newf("job %s already exists", job.ID)
	}
	m.jobs[job.ID] = *job
	return nil
}

func (m *MockJobDAO) Get(_ context.Context, id string) (*model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, apperrors.NotFound("job", id)
	}
	return &job, nil
}

func (m *MockJobDAO) ListRecent(_ context.Context, limit int) ([]model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	jobs := make([]model.Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

// Count returns the number of stored jobs.
func (m *MockJobDAO) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.jobs)
}

// All returns every stored job, newest first.
func (m *MockJobDAO) All() []model.Job {
	jobs, _ := m.ListRecent(context.Background(), 0)
	return jobs
}
