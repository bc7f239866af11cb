package converter

import (
	"meeting-minutes/internal/app/model"
)

// PlanSegments splits totalDuration seconds into consecutive windows of
// windowSize seconds. The last window is shorter when the duration is not a
// multiple of the window and is marked Final. A zero duration yields no
// segments.
func PlanSegments(totalDuration int, windowSize int) []model.SegmentDescriptor {
	if windowSize <= 0 {
		panic("converter: window size must be positive")
	}
	if totalDuration <= 0 {
		return nil
	}

	numSegments := (totalDuration + windowSize - 1) / windowSize
	segments := make([]model.SegmentDescriptor, 0, numSegments)
	for i := 0; i < numSegments; i++ {
		start := i * windowSize
		segments = append(segments, model.SegmentDescriptor{
			Index:       i,
			StartOffset: start,
			Duration:    min(windowSize, totalDuration-start),
			Final:       i == numSegments-1,
		})
	}
	return segments
}
