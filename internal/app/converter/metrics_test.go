package converter

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "meeting-minutes/internal/app/errors"
	fakes "meeting-minutes/internal/app/testutil"
)

func TestMetrics_ObserveSegments(t *testing.T) {
	metrics := NewMetrics("test")

	metrics.JobPlanned("meeting.mp3", 3)
	metrics.SegmentStarted(0)
	metrics.SegmentStarted(1)
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.SegmentsInFlight))

	metrics.SegmentFinished(0, time.Second, nil)
	metrics.SegmentFinished(1, time.Second, &apperrors.TranscriptionError{Index: 1, Cause: stderrors.New("boom")})
	metrics.SegmentStarted(2)
	metrics.SegmentFinished(2, time.Second, &apperrors.ExtractionError{Index: 2, Cause: stderrors.New("boom")})

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.JobsPlanned))
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.SegmentsPlanned))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.SegmentsInFlight))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.InFlightHighWater))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SegmentsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SegmentsTotal.WithLabelValues("transcription_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SegmentsTotal.WithLabelValues("extraction_error")))
}

func TestMetrics_WithScheduler(t *testing.T) {
	metrics := NewMetrics("")
	transcriber := fakes.NewMockTranscriber().WithDefaultLatency(10 * time.Millisecond)

	scheduler := NewScheduler(fakes.NewFakeExtractor(), transcriber, fakes.NewFakeStore(), 3, 0, metrics, nil)
	_, err := scheduler.Run(context.Background(), "meeting.mp3", segmentsOf(9))
	require.NoError(t, err)

	assert.Equal(t, 9.0, testutil.ToFloat64(metrics.SegmentsTotal.WithLabelValues("success")))
	assert.LessOrEqual(t, testutil.ToFloat64(metrics.InFlightHighWater), 3.0)
}

func TestMetrics_Handler(t *testing.T) {
	metrics := NewMetrics("minutes")
	metrics.JobPlanned("meeting.mp3", 4)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "minutes_segments_planned_total 4")
}

func TestSegmentOutcome(t *testing.T) {
	assert.Equal(t, "success", segmentOutcome(nil))
	assert.Equal(t, "error", segmentOutcome(stderrors.New("other")))
}
