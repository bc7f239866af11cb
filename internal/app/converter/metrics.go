package converter

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	apperrors "meeting-minutes/internal/app/errors"
)

// Metrics exposes pipeline activity to Prometheus and doubles as an Observer.
type Metrics struct {
	registry *prometheus.Registry

	JobsPlanned       prometheus.Counter
	SegmentsPlanned   prometheus.Counter
	SegmentsInFlight  prometheus.Gauge
	SegmentsTotal     *prometheus.CounterVec
	SegmentDuration   *prometheus.HistogramVec
	InFlightHighWater prometheus.Gauge

	mu       sync.Mutex
	inFlight int
	maxSeen  int
}

// NewMetrics creates a Metrics instance with all collectors registered on a
// private registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "minutes"
	}

	registry := prometheus.NewRegistry()

	jobsPlanned := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_planned_total",
		Help:      "Total number of transcription jobs that reached planning",
	})

	segmentsPlanned := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "segments_planned_total",
		Help:      "Total number of segments planned",
	})

	segmentsInFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "segments_in_flight",
		Help:      "Number of segment pipelines currently running",
	})

	segmentsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_total",
			Help:      "Total number of finished segment pipelines",
		},
		[]string{"outcome"},
	)

	segmentDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "segment_duration_seconds",
			Help:      "Segment pipeline duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"outcome"},
	)

	highWater := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "segments_in_flight_max",
		Help:      "Highest number of concurrently running segment pipelines observed",
	})

	registry.MustRegister(
		jobsPlanned,
		segmentsPlanned,
		segmentsInFlight,
		segmentsTotal,
		segmentDuration,
		highWater,
	)

	return &Metrics{
		registry:          registry,
		JobsPlanned:       jobsPlanned,
		SegmentsPlanned:   segmentsPlanned,
		SegmentsInFlight:  segmentsInFlight,
		SegmentsTotal:     segmentsTotal,
		SegmentDuration:   segmentDuration,
		InFlightHighWater: highWater,
	}
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the registry backing Handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) JobPlanned(_ string, segments int) {
	m.JobsPlanned.Inc()
	m.SegmentsPlanned.Add(float64(segments))
}

func (m *Metrics) SegmentStarted(int) {
	m.SegmentsInFlight.Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight++
	if m.inFlight > m.maxSeen {
		m.maxSeen = m.inFlight
		m.InFlightHighWater.Set(float64(m.maxSeen))
	}
}

func (m *Metrics) SegmentFinished(_ int, elapsed time.Duration, err error) {
	m.mu.Lock()
	m.inFlight--
	m.mu.Unlock()
	m.SegmentsInFlight.Dec()

	outcome := segmentOutcome(err)
	m.SegmentsTotal.WithLabelValues(outcome).Inc()
	m.SegmentDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func segmentOutcome(err error) string {
	var (
		extractionErr    *apperrors.ExtractionError
		transcriptionErr *apperrors.TranscriptionError
	)
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &extractionErr):
		return "extraction_error"
	case errors.As(err, &transcriptionErr):
		return "transcription_error"
	default:
		return "error"
	}
}
