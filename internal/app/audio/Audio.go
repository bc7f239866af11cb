package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	apperrors "meeting-minutes/internal/app/errors"
	"meeting-minutes/internal/app/logging"
	"meeting-minutes/internal/app/model"
	"meeting-minutes/internal/app/util/files"
)

// Segment artifacts are normalized for speech recognition.
const (
	SegmentChannels   = "1"
	SegmentSampleRate = "16000"
	SegmentCodec      = "libmp3lame"
	SegmentBitrate    = "64k"
)

// Engine wraps ffprobe and ffmpeg. It probes durations, cuts segment
// artifacts and removes them again.
type Engine struct {
	ffmpegPath  string
	ffprobePath string
	workDir     string
	runner      CommandRunner
	logger      *zap.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRunner replaces the os/exec command runner.
func WithRunner(r CommandRunner) EngineOption {
	return func(e *Engine) {
		e.runner = r
	}
}

// WithWorkDir places segment artifacts in dir instead of next to the source.
func WithWorkDir(dir string) EngineOption {
	return func(e *Engine) {
		e.workDir = dir
	}
}

func NewEngine(ffmpegPath, ffprobePath string, logger *zap.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		runner:      ExecRunner{},
		logger:      logging.OrNop(logger),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProbeDuration returns the duration of the audio at path in whole seconds,
// rounded down. ExtractSegment reads a Final segment to the end of the source,
// so the fractional tail is not lost.
func (e *Engine) ProbeDuration(ctx context.Context, path string) (int, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, &apperrors.ProbeError{Path: path, Cause: err}
	}

	stdout, stderr, err := e.runner.Run(ctx, e.ffprobePath,
		"-v", "error", "-print_format", "json", "-show_format", "-show_streams", path)
	if err != nil {
		return 0, &apperrors.ProbeError{Path: path, Cause: transcoderFailure(err, stderr)}
	}

	duration, err := parseProbeOutput(stdout)
	if err != nil {
		return 0, &apperrors.ProbeError{Path: path, Cause: err}
	}

	e.logger.Info("Probed audio duration", zap.String("file", filepath.Base(path)), zap.Int("seconds", duration))
	return duration, nil
}

func parseProbeOutput(output []byte) (int, error) {
	var probeOutput model.FFProbeOutput
	if err := json.Unmarshal(output, &probeOutput); err != nil {
		return 0, fmt.Errorf("invalid ffprobe output: %w", err)
	}
	if !probeOutput.HasAudio() {
		return 0, fmt.Errorf("no audio stream")
	}

	durationFloat, err := strconv.ParseFloat(strings.TrimSpace(probeOutput.Format.Duration), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", probeOutput.Format.Duration, err)
	}
	if durationFloat < 0 || math.IsNaN(durationFloat) || math.IsInf(durationFloat, 0) {
		return 0, fmt.Errorf("invalid duration %q", probeOutput.Format.Duration)
	}

	return int(math.Floor(durationFloat)), nil
}

// ArtifactPath returns where the artifact for segment index of source is written.
func (e *Engine) ArtifactPath(source string, index int) string {
	name := fmt.Sprintf("%s_chunk_%d.mp3", filepath.Base(source), index)
	if e.workDir != "" {
		return filepath.Join(e.workDir, name)
	}
	return filepath.Join(filepath.Dir(source), name)
}

// ExtractSegment cuts [StartOffset, StartOffset+Duration) out of source into a
// mono 16 kHz mp3 and returns the artifact path. A Final segment has no length
// limit and runs to the end of the source. A partially written artifact is
// removed when ffmpeg fails.
func (e *Engine) ExtractSegment(ctx context.Context, source string, segment model.SegmentDescriptor) (string, error) {
	output := e.ArtifactPath(source, segment.Index)

	e.logger.Info("Creating chunk",
		zap.Int("index", segment.Index),
		zap.Int("start", segment.StartOffset),
		zap.Int("duration", segment.Duration),
		zap.Bool("final", segment.Final),
		zap.String("chunk", filepath.Base(output)),
	)

	args := []string{"-y", "-v", "error", "-ss", strconv.Itoa(segment.StartOffset)}
	if !segment.Final {
		args = append(args, "-t", strconv.Itoa(segment.Duration))
	}
	args = append(args,
		"-i", source,
		"-vn",
		"-ac", SegmentChannels,
		"-ar", SegmentSampleRate,
		"-acodec", SegmentCodec,
		"-b:a", SegmentBitrate,
		output,
	)

	_, stderr, err := e.runner.Run(ctx, e.ffmpegPath, args...)
	if err != nil {
		os.Remove(output)
		return "", &apperrors.ExtractionError{
			Index:   segment.Index,
			Message: lastLine(stderr),
			Cause:   err,
		}
	}

	e.logger.Info("Chunk file created", zap.String("chunk", filepath.Base(output)))
	return output, nil
}

// ConvertToMp3 transcodes a whole file (m4a, webm) into mp3 at output.
func (e *Engine) ConvertToMp3(ctx context.Context, input, output string) (string, error) {
	if size, err := files.GetFileSize(input); err == nil {
		e.logger.Info("File size before MP3 conversion",
			zap.String("file", filepath.Base(input)), zap.Int64("bytes", size))
	} else {
		e.logger.Warn("Could not read file size", zap.String("file", filepath.Base(input)), zap.Error(err))
	}

	_, stderr, err := e.runner.Run(ctx, e.ffmpegPath, "-y", "-v", "error", "-i", input, "-vn", "-acodec", SegmentCodec, output)
	if err != nil {
		os.Remove(output)
		return "", &apperrors.ExtractionError{
			Index:   apperrors.WholeFile,
			Message: lastLine(stderr),
			Cause:   err,
		}
	}

	if size, err := files.GetFileSize(output); err == nil {
		e.logger.Info("File size after MP3 conversion",
			zap.String("file", filepath.Base(output)), zap.Int64("bytes", size))
	}
	return output, nil
}

// Remove deletes an artifact. Removing a missing file is reported as a
// StorageError like any other failure; callers decide whether to log it.
func (e *Engine) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return &apperrors.StorageError{Path: path, Cause: err}
	}
	return nil
}

func transcoderFailure(err error, stderr []byte) error {
	if msg := lastLine(stderr); msg != "" {
		return fmt.Errorf("%w: %s", err, msg)
	}
	return err
}

// lastLine returns the last non-empty line ffmpeg wrote, which holds the reason.
func lastLine(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
