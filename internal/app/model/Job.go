package model

import "time"

// Job is the persisted record of one upload that went through the pipeline.
type Job struct {
	ID            string    `json:"id"`
	FileName      string    `json:"file_name"`
	AudioDuration int       `json:"audio_duration"`
	SegmentCount  int       `json:"segment_count"`
	Transcript    string    `json:"transcript"`
	Summary       string    `json:"summary"`
	SummaryPath   string    `json:"summary_path"`
	HasError      int       `json:"has_error"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
