package converter

import "time"

// Observer is notified about job and segment progress. Implementations must
// be safe for concurrent use; segment callbacks arrive from pool workers.
type Observer interface {
	JobPlanned(source string, segments int)
	SegmentStarted(index int)
	// SegmentFinished is called once per started segment, after its artifact
	// has been cleaned up.
	SegmentFinished(index int, elapsed time.Duration, err error)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) JobPlanned(string, int)                    {}
func (NopObserver) SegmentStarted(int)                        {}
func (NopObserver) SegmentFinished(int, time.Duration, error) {}

// Observers fans notifications out to several observers.
type Observers []Observer

func (o Observers) JobPlanned(source string, segments int) {
	for _, obs := range o {
		obs.JobPlanned(source, segments)
	}
}

func (o Observers) SegmentStarted(index int) {
	for _, obs := range o {
		obs.SegmentStarted(index)
	}
}

func (o Observers) SegmentFinished(index int, elapsed time.Duration, err error) {
	for _, obs := range o {
		obs.SegmentFinished(index, elapsed, err)
	}
}
