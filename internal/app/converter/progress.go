package converter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type ProgressConfig struct {
	Enabled bool
	Writer  io.Writer
}

type ProgressManager struct {
	container *mpb.Progress
	enabled   bool
	mu        sync.Mutex
}

type ProgressBar struct {
	bar     *mpb.Bar
	enabled bool
}

func NewProgressManager(config ProgressConfig) *ProgressManager {
	if !config.Enabled {
		return &ProgressManager{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
	)

	return &ProgressManager{
		container: container,
		enabled:   true,
	}
}

func (pm *ProgressManager) CreateBar(total int, description string) *ProgressBar {
	if !pm.enabled || pm.container == nil {
		return &ProgressBar{enabled: false}
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	bar := pm.container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
			decor.OnComplete(
				decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncWidth), " ✓ ",
			),
		),
	)

	return &ProgressBar{
		bar:     bar,
		enabled: true,
	}
}

// Increment advances the bar by one; elapsed feeds the ETA estimate.
func (pb *ProgressBar) Increment(elapsed time.Duration) {
	if pb.enabled && pb.bar != nil {
		pb.bar.EwmaIncrement(elapsed)
	}
}

// Abort stops the bar without completing it, leaving it on screen.
func (pb *ProgressBar) Abort() {
	if pb.enabled && pb.bar != nil {
		pb.bar.Abort(false)
	}
}

// Finished reports whether the bar completed or was aborted.
func (pb *ProgressBar) Finished() bool {
	if !pb.enabled || pb.bar == nil {
		return true
	}
	return pb.bar.Completed() || pb.bar.Aborted()
}

func (pb *ProgressBar) Complete() {
	if pb.enabled && pb.bar != nil {
		pb.bar.SetTotal(pb.bar.Current(), true)
	}
}

func (pm *ProgressManager) Wait() {
	if pm.enabled && pm.container != nil {
		pm.container.Wait()
	}
}

func (pm *ProgressManager) Shutdown() {
	if pm.enabled && pm.container != nil {
		pm.container.Shutdown()
	}
}

func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}

	return IsTTY(os.Stderr) || IsTTY(os.Stdout)
}

func FormatProgressDescription(action string, source string) string {
	if source != "" {
		return fmt.Sprintf("%s (%s)", action, filepath.Base(source))
	}
	return action
}

// ProgressObserver draws one bar per job that advances as segments finish.
// A failed segment aborts the bar.
type ProgressObserver struct {
	manager *ProgressManager

	mu  sync.Mutex
	bar *ProgressBar
}

func NewProgressObserver(config ProgressConfig) *ProgressObserver {
	return &ProgressObserver{
		manager: NewProgressManager(config),
		bar:     &ProgressBar{enabled: false},
	}
}

func (po *ProgressObserver) JobPlanned(source string, segments int) {
	if segments == 0 {
		return
	}
	bar := po.manager.CreateBar(segments, FormatProgressDescription("Transcribing segments", source))

	po.mu.Lock()
	po.bar = bar
	po.mu.Unlock()
}

func (po *ProgressObserver) SegmentStarted(int) {}

func (po *ProgressObserver) SegmentFinished(_ int, elapsed time.Duration, err error) {
	po.mu.Lock()
	bar := po.bar
	po.mu.Unlock()

	if err != nil {
		bar.Abort()
		return
	}
	bar.Increment(elapsed)
}

// Close aborts a bar left unfinished by a cancelled job and waits for the
// final render.
func (po *ProgressObserver) Close() {
	po.mu.Lock()
	bar := po.bar
	po.mu.Unlock()

	if !bar.Finished() {
		bar.Abort()
	}
	po.manager.Wait()
}
