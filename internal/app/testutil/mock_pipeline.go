package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"meeting-minutes/internal/app/model"
)

// ChunkPath is the artifact path FakeExtractor returns for a segment index.
func ChunkPath(index int) string {
	return fmt.Sprintf("chunk_%d.mp3", index)
}

// FakeProber reports a fixed duration or error.
type FakeProber struct {
	Duration int
	Err      error

	mu    sync.Mutex
	Paths []string
}

func (p *FakeProber) ProbeDuration(_ context.Context, path string) (int, error) {
	p.mu.Lock()
	p.Paths = append(p.Paths, path)
	p.mu.Unlock()

	if p.Err != nil {
		return 0, p.Err
	}
	return p.Duration, nil
}

// FakeExtractor records extracted segments and returns ChunkPath(index).
type FakeExtractor struct {
	mu sync.Mutex

	ErrorMap   map[int]error
	LatencyMap map[int]time.Duration
	Segments   []model.SegmentDescriptor
	Sources    []string
}

func NewFakeExtractor() *FakeExtractor {
	return &FakeExtractor{
		ErrorMap:   make(map[int]error),
		LatencyMap: make(map[int]time.Duration),
	}
}

// SetErrorForSegment makes extraction of index fail with err.
func (f *FakeExtractor) SetErrorForSegment(index int, err error) *FakeExtractor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ErrorMap[index] = err
	return f
}

// SetLatencyForSegment delays extraction of index.
func (f *FakeExtractor) SetLatencyForSegment(index int, latency time.Duration) *FakeExtractor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LatencyMap[index] = latency
	return f
}

func (f *FakeExtractor) ExtractSegment(ctx context.Context, source string, segment model.SegmentDescriptor) (string, error) {
	f.mu.Lock()
	f.Segments = append(f.Segments, segment)
	f.Sources = append(f.Sources, source)
	latency := f.LatencyMap[segment.Index]
	err := f.ErrorMap[segment.Index]
	f.mu.Unlock()

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	return ChunkPath(segment.Index), nil
}

// ExtractedIndices returns the indices of all extraction attempts, sorted.
func (f *FakeExtractor) ExtractedIndices() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	indices := make([]int, 0, len(f.Segments))
	for _, segment := range f.Segments {
		indices = append(indices, segment.Index)
	}
	sort.Ints(indices)
	return indices
}

// ExtractedSegments returns all extraction requests ordered by index.
func (f *FakeExtractor) ExtractedSegments() []model.SegmentDescriptor {
	f.mu.Lock()
	defer f.mu.Unlock()
	segments := make([]model.SegmentDescriptor, len(f.Segments))
	copy(segments, f.Segments)
	sort.Slice(segments, func(i, j int) bool {
		return segments[i].Index < segments[j].Index
	})
	return segments
}

// FakeStore records removals; Err makes every removal fail after recording it.
type FakeStore struct {
	mu      sync.Mutex
	Err     error
	removed []string
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (s *FakeStore) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, path)
	return s.Err
}

// Removed returns the removed paths, sorted.
func (s *FakeStore) Removed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := make([]string, len(s.removed))
	copy(removed, s.removed)
	sort.Strings(removed)
	return removed
}

// ConcurrencyTracker observes segment pipelines and records how many ran at
// once. It satisfies the pipeline observer interface.
type ConcurrencyTracker struct {
	mu       sync.Mutex
	current  int
	max      int
	started  []int
	finished map[int]error
	planned  int
}

func NewConcurrencyTracker() *ConcurrencyTracker {
	return &ConcurrencyTracker{finished: make(map[int]error)}
}

func (c *ConcurrencyTracker) JobPlanned(_ string, segments int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.planned = segments
}

func (c *ConcurrencyTracker) SegmentStarted(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current++
	if c.current > c.max {
		c.max = c.current
	}
	c.started = append(c.started, index)
}

func (c *ConcurrencyTracker) SegmentFinished(index int, _ time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current--
	c.finished[index] = err
}

// Max returns the highest number of concurrently running pipelines.
func (c *ConcurrencyTracker) Max() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.max
}

// Current returns the number of pipelines running right now.
func (c *ConcurrencyTracker) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Started returns segment indices in start order.
func (c *ConcurrencyTracker) Started() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	started := make([]int, len(c.started))
	copy(started, c.started)
	return started
}

// Finished returns the number of finished pipelines.
func (c *ConcurrencyTracker) Finished() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.finished)
}

// Planned returns the segment count of the last planned job.
func (c *ConcurrencyTracker) Planned() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.planned
}
