package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSummaryName(t *testing.T) {
	at := time.UnixMilli(1709285400123)
	assert.Equal(t, "summary-1709285400123.txt", SummaryName(at))
}

func TestLocalArchive_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "archive")
	archive := NewLocalArchive(dir, zap.NewNop())

	path, err := archive.Save(context.Background(), "summary-1.txt", "<h1>Verslag</h1>")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "summary-1.txt"), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<h1>Verslag</h1>", string(content))
}

func TestLocalArchive_SaveStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	archive := NewLocalArchive(dir, nil)

	path, err := archive.Save(context.Background(), "../../etc/summary.txt", "x")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "summary.txt"), path)
}

func TestLocalArchive_SaveFailure(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := NewLocalArchive(file, nil).Save(context.Background(), "summary.txt", "x")
	assert.Error(t, err)
}

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
	status  int
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}
	if r.Method == http.MethodPut {
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = string(body)
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
	}
	w.WriteHeader(http.StatusOK)
}

func newTestMinioArchive(t *testing.T, handler http.Handler) *MinioArchive {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	require.NoError(t, err)

	archive, err := NewMinioArchive(MinioOptions{
		Endpoint:  u.Host,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "minutes",
		Region:    "us-east-1",
	}, zap.NewNop())
	require.NoError(t, err)
	return archive
}

func TestMinioArchive_Save(t *testing.T) {
	s3 := &fakeS3{objects: make(map[string]string)}
	archive := newTestMinioArchive(t, s3)

	location, err := archive.Save(context.Background(), "summary-42.txt", "verslag")
	require.NoError(t, err)

	assert.Equal(t, "minio://minutes/summaries/summary-42.txt", location)
	// the body may carry streaming signature framing around the payload
	assert.Contains(t, s3.objects["/minutes/summaries/summary-42.txt"], "verslag")
}

func TestMinioArchive_SaveFailure(t *testing.T) {
	archive := newTestMinioArchive(t, &fakeS3{objects: make(map[string]string), status: http.StatusForbidden})

	_, err := archive.Save(context.Background(), "summary-42.txt", "verslag")
	assert.ErrorContains(t, err, "failed to upload summary to MinIO")
}

func TestNewMinioArchive_InvalidEndpoint(t *testing.T) {
	_, err := NewMinioArchive(MinioOptions{Endpoint: "http://bad endpoint", Bucket: "b"}, nil)
	assert.Error(t, err)
}
