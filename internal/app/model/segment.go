package model

import "fmt"

// SegmentDescriptor is one planned time window of a source recording.
// Offsets and lengths are whole seconds. Final marks the last window of a
// plan; its extraction runs to the end of the source so the sub-second tail
// dropped by probing is still transcribed.
type SegmentDescriptor struct {
	Index       int
	StartOffset int
	Duration    int
	Final       bool
}

func (s SegmentDescriptor) String() string {
	return fmt.Sprintf("segment %d [start=%ds, duration=%ds]", s.Index, s.StartOffset, s.Duration)
}

// PartialTranscript is the recognized text of one segment.
type PartialTranscript struct {
	Index int
	Text  string
}
