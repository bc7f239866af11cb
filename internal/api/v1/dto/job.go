package dto

import (
	"time"

	"meeting-minutes/internal/app/model"
)

// JobResponse represents a stored job record
type JobResponse struct {
	ID            string    `json:"id"`
	FileName      string    `json:"file_name"`
	AudioDuration int       `json:"audio_duration"`
	SegmentCount  int       `json:"segment_count"`
	Transcript    string    `json:"transcript,omitempty"`
	Summary       string    `json:"summary,omitempty"`
	SummaryPath   string    `json:"summary_path,omitempty"`
	Status        string    `json:"status"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListJobsQuery represents query parameters for listing jobs
type ListJobsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ListJobsResponse represents a list of recent jobs
type ListJobsResponse struct {
	Jobs  []JobResponse `json:"jobs"`
	Count int           `json:"count"`
}

// FromModel converts a job record into its API representation.
func FromModel(job *model.Job) JobResponse {
	status := "completed"
	if job.HasError != 0 {
		status = "failed"
	}
	return JobResponse{
		ID:            job.ID,
		FileName:      job.FileName,
		AudioDuration: job.AudioDuration,
		SegmentCount:  job.SegmentCount,
		Transcript:    job.Transcript,
		Summary:       job.Summary,
		SummaryPath:   job.SummaryPath,
		Status:        status,
		Error:         job.ErrorMessage,
		CreatedAt:     job.CreatedAt,
	}
}
