package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "meeting-minutes/internal/app/errors"
	"meeting-minutes/internal/app/model"
	"meeting-minutes/internal/app/repository"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(dbFilePath string) (*SQLiteDB, error) {
	db, err := Open(dbFilePath)
	if err != nil {
		return nil, err
	}
	return &SQLiteDB{db: db}, nil
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}

func (sdb *SQLiteDB) EnsureSchema(ctx context.Context) error {
	if _, err := sdb.db.ExecContext(ctx, createJobsTableSQL); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

func (sdb *SQLiteDB) Create(ctx context.Context, job *model.Job) error {
	insertSQL := `INSERT INTO jobs (id, file_name, audio_duration, segment_count, transcript, summary, summary_path, has_error, error_message, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	_, err := sdb.db.ExecContext(ctx, insertSQL, job.ID, job.FileName, job.AudioDuration, job.SegmentCount,
		job.Transcript, job.Summary, job.SummaryPath, job.HasError, job.ErrorMessage, job.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

func (sdb *SQLiteDB) Get(ctx context.Context, id string) (*model.Job, error) {
	query := `SELECT id, file_name, audio_duration, segment_count, transcript, summary, summary_path, has_error, error_message, created_at FROM jobs WHERE id = ?`

	var job model.Job
	err := sdb.db.QueryRowContext(ctx, query, id).Scan(&job.ID, &job.FileName, &job.AudioDuration, &job.SegmentCount,
		&job.Transcript, &job.Summary, &job.SummaryPath, &job.HasError, &job.ErrorMessage, &job.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("job", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &job, nil
}

func (sdb *SQLiteDB) ListRecent(ctx context.Context, limit int) ([]model.Job, error) {
	if limit <= 0 {
		limit = repository.DefaultListLimit
	}

	sqlStr := `
		SELECT id, file_name, audio_duration, segment_count, transcript, summary, summary_path, has_error, error_message, created_at
		FROM jobs
		ORDER BY created_at DESC
		LIMIT ?;`
	rows, err := sdb.db.QueryContext(ctx, sqlStr, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	jobs := make([]model.Job, 0)
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
