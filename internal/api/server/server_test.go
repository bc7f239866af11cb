package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"meeting-minutes/internal/api/v1/dto"
	v1routes "meeting-minutes/internal/api/v1/routes"
	"meeting-minutes/internal/app/testutil"
)

func newTestServer(t *testing.T, config Config, metrics http.Handler) (*Server, *testutil.MockServices) {
	t.Helper()
	ms := testutil.NewMockServices(t)
	container := &v1routes.ServiceContainer{
		MinutesService: ms.MinutesService,
		JobService:     ms.JobService,
	}
	config.UploadDir = t.TempDir()
	return NewServer(config, container, metrics, nil), ms
}

func TestServer_Routes(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "minutes_jobs_planned_total 0\n")
	})
	srv, ms := newTestServer(t, Config{Host: "127.0.0.1", Port: "0", Environment: "test"}, metrics)
	ms.JobService.On("ListJobs", mock.Anything, dto.ListJobsQuery{}).
		Return(&dto.ListJobsResponse{Jobs: []dto.JobResponse{}}, nil)

	tests := []struct {
		method         string
		path           string
		expectedStatus int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/api/v1/jobs", http.StatusOK},
		{http.MethodPost, "/upload", http.StatusBadRequest},
		{http.MethodPost, "/api/v1/minutes", http.StatusBadRequest},
		{http.MethodGet, "/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestServer_Info(t *testing.T) {
	srv, _ := newTestServer(t, Config{Host: "127.0.0.1", Port: "0"}, nil)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Meeting Minutes API", body["message"])

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_StaticDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>minutes</html>"), 0644))

	srv, _ := newTestServer(t, Config{Host: "127.0.0.1", Port: "0", StaticDir: dir}, nil)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "minutes")
}

func TestServer_StartAndShutdown(t *testing.T) {
	srv, _ := newTestServer(t, Config{Host: "127.0.0.1", Port: "0"}, nil)

	errCh, err := srv.Start()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	_, open := <-errCh
	assert.False(t, open)
}

func TestServer_StartFailsOnBadAddress(t *testing.T) {
	srv, _ := newTestServer(t, Config{Host: "256.256.256.256", Port: "1"}, nil)

	_, err := srv.Start()
	assert.Error(t, err)
}
