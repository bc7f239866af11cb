package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"
)

// MockTranscriber is a scripted implementation of the api.Transcriber interface.
// Latency is simulated without holding its lock, so concurrent calls overlap
// like real requests do.
type MockTranscriber struct {
	mu sync.Mutex

	DefaultLatency  time.Duration
	DefaultError    error
	DefaultResponse string

	CallCount   int
	CallHistory []TranscriptionCall
	ErrorMap    map[string]error
	ResponseMap map[string]string
	LatencyMap  map[string]time.Duration

	inFlight    int
	maxInFlight int
}

// TranscriptionCall represents a single transcription call for tracking
type TranscriptionCall struct {
	InputFilePath string
	Timestamp     time.Time
	Duration      time.Duration
	Response      string
	Error         error
}

// NewMockTranscriber creates a MockTranscriber that answers every artifact
// with "transcript of <base name>".
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{
		ErrorMap:    make(map[string]error),
		ResponseMap: make(map[string]string),
		LatencyMap:  make(map[string]time.Duration),
	}
}

// Transcript implements the api.Transcriber interface
func (m *MockTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	startTime := time.Now()

	m.mu.Lock()
	m.CallCount++
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	latency := m.DefaultLatency
	if custom, ok := m.LatencyMap[inputFilePath]; ok {
		latency = custom
	}
	err, hasErr := m.ErrorMap[inputFilePath]
	if !hasErr {
		err = m.DefaultError
	}
	response, hasResponse := m.ResponseMap[inputFilePath]
	if !hasResponse {
		response = m.DefaultResponse
		if response == "" {
			response = fmt.Sprintf("transcript of %s", filepath.Base(inputFilePath))
		}
	}
	m.mu.Unlock()

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			err = ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight--

	call := TranscriptionCall{
		InputFilePath: inputFilePath,
		Timestamp:     startTime,
		Duration:      time.Since(startTime),
	}
	if err != nil {
		call.Error = err
		m.CallHistory = append(m.CallHistory, call)
		return "", err
	}
	call.Response = response
	m.CallHistory = append(m.CallHistory, call)
	return response, nil
}

// WithDefaultLatency sets the default processing latency
func (m *MockTranscriber) WithDefaultLatency(latency time.Duration) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultLatency = latency
	return m
}

// WithDefaultError sets the default error to return
func (m *MockTranscriber) WithDefaultError(err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultError = err
	return m
}

// WithDefaultResponse sets the default response text
func (m *MockTranscriber) WithDefaultResponse(response string) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultResponse = response
	return m
}

// SetErrorForFile sets a specific error for a given file path
func (m *MockTranscriber) SetErrorForFile(filePath string, err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorMap[filePath] = err
	return m
}

// SetResponseForFile sets a specific response for a given file path
func (m *MockTranscriber) SetResponseForFile(filePath string, response string) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResponseMap[filePath] = response
	return m
}

// SetLatencyForFile sets a specific latency for a given file path
func (m *MockTranscriber) SetLatencyForFile(filePath string, latency time.Duration) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LatencyMap[filePath] = latency
	return m
}

// GetCallCount returns the number of Transcript calls made so far.
func (m *MockTranscriber) GetCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

// GetCallHistory returns a copy of the recorded calls in completion order.
func (m *MockTranscriber) GetCallHistory() []TranscriptionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	history := make([]TranscriptionCall, len(m.CallHistory))
	copy(history, m.CallHistory)
	return history
}

// CalledFiles returns the artifact paths passed to Transcript.
func (m *MockTranscriber) CalledFiles() []string {
	history := m.GetCallHistory()
	files := make([]string, 0, len(history))
	for _, call := range history {
		files = append(files, call.InputFilePath)
	}
	return files
}

// MaxInFlight returns the highest number of overlapping Transcript calls seen.
func (m *MockTranscriber) MaxInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}

// Reset clears all counters, history and configuration.
func (m *MockTranscriber) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultLatency = 0
	m.DefaultError = nil
	m.DefaultResponse = ""
	m.CallCount = 0
	m.CallHistory = nil
	m.ErrorMap = make(map[string]error)
	m.ResponseMap = make(map[string]string)
	m.LatencyMap = make(map[string]time.Duration)
	m.inFlight = 0
	m.maxInFlight = 0
}
