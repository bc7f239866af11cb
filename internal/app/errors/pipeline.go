package errors

import (
	"fmt"
)

// WholeFile is the segment index used when an error concerns the complete
// source file rather than one segment of it.
const WholeFile = -1

// ProbeError reports that the duration of a source could not be determined.
// It is fatal to the job and happens before any segment work starts.
type ProbeError struct {
	Path  string
	Cause error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Path, e.Cause)
}

func (e *ProbeError) Unwrap() error {
	return e.Cause
}

// ExtractionError reports a transcoder failure for one segment.
type ExtractionError struct {
	Index   int
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	scope := fmt.Sprintf("segment %d", e.Index)
	if e.Index == WholeFile {
		scope = "whole file"
	}
	if e.Message != "" {
		return fmt.Sprintf("extract %s: %s: %v", scope, e.Message, e.Cause)
	}
	return fmt.Sprintf("extract %s: %v", scope, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// TranscriptionError reports a failed call to the speech-to-text service.
type TranscriptionError struct {
	Index int
	Cause error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcribe segment %d: %v", e.Index, e.Cause)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Cause
}

// StorageError reports a failed artifact cleanup. It is logged, never
// returned to the caller of a job.
type StorageError struct {
	Path  string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("delete %s: %v", e.Path, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}
