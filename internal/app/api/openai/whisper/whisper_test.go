package whisper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *openai.Client {
	config := openai.DefaultConfig("test-api-key")
	config.BaseURL = serverURL + "/v1"
	return openai.NewClientWithConfig(config)
}

// TestRemoteTranscriber_Transcript tests the RemoteTranscriber implementation
func TestRemoteTranscriber_Transcript(t *testing.T) {
	tests := []struct {
		name          string
		mockResponse  string
		mockStatus    int
		expectedText  string
		expectError   bool
		errorContains string
	}{
		{
			name:         "successful transcription",
			mockResponse: `{"text": "Goedemorgen allemaal, welkom bij het overleg"}`,
			mockStatus:   http.StatusOK,
			expectedText: "Goedemorgen allemaal, welkom bij het overleg",
		},
		{
			name:         "empty transcription for silence",
			mockResponse: `{"text": ""}`,
			mockStatus:   http.StatusOK,
			expectedText: "",
		},
		{
			name:         "transcription with line breaks",
			mockResponse: `{"text": "Line 1\nLine 2"}`,
			mockStatus:   http.StatusOK,
			expectedText: "Line 1\nLine 2",
		},
		{
			name:          "API error - unauthorized",
			mockResponse:  `{"error": {"message": "Invalid API key", "type": "invalid_request_error"}}`,
			mockStatus:    http.StatusUnauthorized,
			expectError:   true,
			errorContains: "401",
		},
		{
			name:          "API error - rate limit",
			mockResponse:  `{"error": {"message": "Rate limit exceeded", "type": "rate_limit_error"}}`,
			mockStatus:    http.StatusTooManyRequests,
			expectError:   true,
			errorContains: "429",
		},
		{
			name:          "network error",
			mockStatus:    0,
			expectError:   true,
			errorContains: "EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.mockStatus == 0 {
					// Close connection without writing anything to simulate network error
					if hijacker, ok := w.(http.Hijacker); ok {
						conn, _, _ := hijacker.Hijack()
						conn.Close()
						return
					}
				}

				assert.Equal(t, http.MethodPost, r.Method)
				assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")
				assert.NoError(t, r.ParseMultipartForm(32<<20))
				assert.Equal(t, "whisper-1", r.FormValue("model"))

				file, _, err := r.FormFile("file")
				if assert.NoError(t, err) {
					file.Close()
				}

				w.WriteHeader(tt.mockStatus)
				w.Write([]byte(tt.mockResponse))
			}))
			defer server.Close()

			rt := NewRemoteTranscriber(newTestClient(server.URL), "")

			result, err := rt.Transcript(context.Background(), createTempTestFile(t, "chunk_0.mp3"))

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.Contains(t, err.Error(), "createTranscription failed")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedText, result)
		})
	}
}

func TestRemoteTranscriber_CustomModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(32<<20))
		fmt.Fprintf(w, `{"text": %q}`, r.FormValue("model"))
	}))
	defer server.Close()

	rt := NewRemoteTranscriber(newTestClient(server.URL), "gpt-4o-transcribe")
	result, err := rt.Transcript(context.Background(), createTempTestFile(t, "chunk_1.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-transcribe", result)
}

// TestRemoteTranscriber_FileNotFound tests handling of non-existent files
func TestRemoteTranscriber_FileNotFound(t *testing.T) {
	rt := NewRemoteTranscriber(openai.NewClientWithConfig(openai.DefaultConfig("test-api-key")), "")

	_, err := rt.Transcript(context.Background(), "/non/existent/file.mp3")
	assert.Error(t, err)
}

// TestRemoteTranscriber_ContextDeadline turns a stalled call into an error
func TestRemoteTranscriber_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	rt := NewRemoteTranscriber(newTestClient(server.URL), "")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := rt.Transcript(ctx, createTempTestFile(t, "chunk_2.mp3"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "deadline exceeded") || strings.Contains(err.Error(), "canceled"))
	assert.Less(t, time.Since(start), 5*time.Second)
}

// TestRemoteTranscriber_ConcurrentRequests tests concurrent transcription requests
func TestRemoteTranscriber_ConcurrentRequests(t *testing.T) {
	var requestCount int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&requestCount, 1)
		fmt.Fprintf(w, `{"text": "Transcription %d"}`, n)
	}))
	defer server.Close()

	rt := NewRemoteTranscriber(newTestClient(server.URL), "")

	numRequests := 5
	results := make(chan string, numRequests)
	errs := make(chan error, numRequests)

	for i := 0; i < numRequests; i++ {
		path := createTempTestFile(t, fmt.Sprintf("chunk_%d.mp3", i))
		go func() {
			result, err := rt.Transcript(context.Background(), path)
			if err != nil {
				errs <- err
				return
			}
			results <- result
		}()
	}

	for i := 0; i < numRequests; i++ {
		select {
		case err := <-errs:
			t.Errorf("Unexpected error in concurrent request: %v", err)
		case result := <-results:
			assert.True(t, strings.HasPrefix(result, "Transcription "))
		case <-time.After(5 * time.Second):
			t.Fatal("Timeout waiting for concurrent requests")
		}
	}

	assert.Equal(t, int32(numRequests), atomic.LoadInt32(&requestCount))
}

// Helper function to create temporary test files
func createTempTestFile(t *testing.T, name string) string {
	t.Helper()

	tempFile := filepath.Join(t.TempDir(), name)

	// ID3 tag header is enough for the multipart upload
	err := os.WriteFile(tempFile, []byte{0x49, 0x44, 0x33, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 0644)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	return tempFile
}
