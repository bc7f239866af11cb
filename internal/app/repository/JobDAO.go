package repository

import (
	"context"

	"meeting-minutes/internal/app/model"
)

// DefaultListLimit caps ListRecent when callers pass a non-positive limit.
const DefaultListLimit = 20

type JobDAO interface {
	Close() error

	// EnsureSchema creates the jobs table when it does not exist yet.
	EnsureSchema(ctx context.Context) error

	Create(ctx context.Context, job *model.Job) error

	// Get returns the job with id, or an error matching errors.ErrJobNotFound.
	Get(ctx context.Context, id string) (*model.Job, error)

	ListRecent(ctx context.Context, limit int) ([]model.Job, error)
}
