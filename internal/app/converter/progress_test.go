package converter

import (
	"bytes"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatProgressDescription(t *testing.T) {
	assert.Equal(t, "Transcribing segments (meeting.mp3)", FormatProgressDescription("Transcribing segments", "/tmp/uploads/meeting.mp3"))
	assert.Equal(t, "Transcribing segments", FormatProgressDescription("Transcribing segments", ""))
}

func TestShouldShowProgress(t *testing.T) {
	assert.True(t, ShouldShowProgress(true))
	assert.False(t, IsTTY(&bytes.Buffer{}))
	assert.False(t, IsTTY(nil))
}

func TestProgressObserver_Disabled(t *testing.T) {
	po := NewProgressObserver(ProgressConfig{Enabled: false})

	po.JobPlanned("meeting.mp3", 2)
	po.SegmentStarted(0)
	po.SegmentFinished(0, time.Millisecond, nil)
	po.SegmentFinished(1, time.Millisecond, stderrors.New("boom"))

	done := make(chan struct{})
	go func() {
		po.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close blocked on a disabled progress observer")
	}
}

func TestProgressObserver_Lifecycle(t *testing.T) {
	tests := []struct {
		name   string
		finish func(po *ProgressObserver)
	}{
		{
			name: "all_segments_succeed",
			finish: func(po *ProgressObserver) {
				po.SegmentFinished(0, time.Millisecond, nil)
				po.SegmentFinished(1, time.Millisecond, nil)
			},
		},
		{
			name: "segment_fails",
			finish: func(po *ProgressObserver) {
				po.SegmentFinished(0, time.Millisecond, stderrors.New("boom"))
			},
		},
		{
			name:   "job_cancelled_before_any_segment",
			finish: func(po *ProgressObserver) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			po := NewProgressObserver(ProgressConfig{Enabled: true, Writer: &buf})

			po.JobPlanned("meeting.mp3", 2)
			tt.finish(po)

			done := make(chan struct{})
			go func() {
				po.Close()
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(5 * time.Second):
				t.Fatal("Close did not return")
			}
		})
	}
}
