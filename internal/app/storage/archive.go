package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
	"meeting-minutes/internal/app/logging"
)

// Archive keeps generated summaries.
type Archive interface {
	// Save stores text under name and returns where it was written.
	Save(ctx context.Context, name string, text string) (string, error)
}

// SummaryName returns the archive name for a summary created at t.
func SummaryName(t time.Time) string {
	return fmt.Sprintf("summary-%d.txt", t.UnixMilli())
}

// LocalArchive writes summaries into a directory.
type LocalArchive struct {
	dir    string
	logger *zap.Logger
}

func NewLocalArchive(dir string, logger *zap.Logger) *LocalArchive {
	return &LocalArchive{dir: dir, logger: logging.OrNop(logger)}
}

func (a *LocalArchive) Save(_ context.Context, name string, text string) (string, error) {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("create archive directory: %w", err)
	}

	path := filepath.Join(a.dir, filepath.Base(name))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("failed to write summary: %w", err)
	}

	a.logger.Info("Summary saved", zap.String("path", path), zap.Int("bytes", len(text)))
	return path, nil
}

// MinioArchive uploads summaries to a bucket of an S3 compatible store.
type MinioArchive struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

// MinioOptions holds the connection settings of a MinioArchive.
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

func NewMinioArchive(opts MinioOptions, logger *zap.Logger) (*MinioArchive, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &MinioArchive{client: client, bucket: opts.Bucket, logger: logging.OrNop(logger)}, nil
}

// EnsureBucket creates the bucket when it does not exist.
func (a *MinioArchive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

func (a *MinioArchive) Save(ctx context.Context, name string, text string) (string, error) {
	key := "summaries/" + filepath.Base(name)
	data := []byte(text)

	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
		UserMetadata: map[string]string{
			"created-at": time.Now().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload summary to MinIO: %w", err)
	}

	location := fmt.Sprintf("minio://%s/%s", a.bucket, key)
	a.logger.Info("Summary archived", zap.String("location", location), zap.Int("bytes", len(data)))
	return location, nil
}
