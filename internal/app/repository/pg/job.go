package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	apperrors "meeting-minutes/internal/app/errors"
	"meeting-minutes/internal/app/model"
	"meeting-minutes/internal/app/repository"
)

const createJobsTableSQL = `
CREATE TABLE IF NOT EXISTS jobs (
	id             UUID PRIMARY KEY,
	file_name      TEXT NOT NULL,
	audio_duration INTEGER NOT NULL DEFAULT 0,
	segment_count  INTEGER NOT NULL DEFAULT 0,
	transcript     TEXT NOT NULL DEFAULT '',
	summary        TEXT NOT NULL DEFAULT '',
	summary_path   TEXT NOT NULL DEFAULT '',
	has_error      INTEGER NOT NULL DEFAULT 0,
	error_message  TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs (created_at DESC)`

const jobColumns = `id, file_name, audio_duration, segment_count, transcript, summary, summary_path, has_error, error_message, created_at`

type PostgresDB struct {
	db *sql.DB
}

func NewPostgresDB(connectionString string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, err
	}
	return &PostgresDB{db: db}, nil
}

// NewPostgresDBWithConn wraps an existing connection pool.
func NewPostgresDBWithConn(db *sql.DB) *PostgresDB {
	return &PostgresDB{db: db}
}

func (pdb *PostgresDB) Close() error {
	return pdb.db.Close()
}

func (pdb *PostgresDB) EnsureSchema(ctx context.Context) error {
	if _, err := pdb.db.ExecContext(ctx, createJobsTableSQL); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

func (pdb *PostgresDB) Create(ctx context.Context, job *model.Job) error {
	insertSQL := `INSERT INTO jobs (` + jobColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := pdb.db.ExecContext(ctx, insertSQL, job.ID, job.FileName, job.AudioDuration, job.SegmentCount,
		job.Transcript, job.Summary, job.SummaryPath, job.HasError, job.ErrorMessage, job.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

func (pdb *PostgresDB) Get(ctx context.Context, id string) (*model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	var job model.Job
	err := pdb.db.QueryRowContext(ctx, query, id).Scan(&job.ID, &job.FileName, &job.AudioDuration, &job.SegmentCount,
		&job.Transcript, &job.Summary, &job.SummaryPath, &job.HasError, &job.ErrorMessage, &job.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("job", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &job, nil
}

func (pdb *PostgresDB) ListRecent(ctx context.Context, limit int) ([]model.Job, error) {
	if limit <= 0 {
		limit = repository.DefaultListLimit
	}

	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at DESC LIMIT $1`
	rows, err := pdb.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var job model.Job
		err = rows.Scan(&job.ID, &job.FileName, &job.AudioDuration, &job.SegmentCount,
			&job.Transcript, &job.Summary, &job.SummaryPath, &job.HasError, &job.ErrorMessage, &job.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return jobs, nil
}
