package dto

// AllowedAudioTypes lists the accepted MIME types of the audio upload field.
var AllowedAudioTypes = []string{"audio/mpeg", "audio/wav", "audio/mp4", "audio/x-m4a", "audio/webm"}

// AllowedContextTypes lists the accepted MIME types of the context upload field.
var AllowedContextTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// UploadForm holds the text fields of POST /upload.
type UploadForm struct {
	Instruction string `form:"instruction" binding:"required"`
	GeneralInfo string `form:"generalInfo"`
}

// MinutesRequest describes one stored upload ready for processing.
type MinutesRequest struct {
	AudioPath     string
	AudioMimeType string
	OriginalName  string
	ContextPath   string
	Instruction   string
	GeneralInfo   string
}

// MinutesResponse is returned when a recording was transcribed and summarized.
type MinutesResponse struct {
	Message     string `json:"message"`
	Summary     string `json:"summary"`
	SummaryPath string `json:"summaryPath"`
	JobID       string `json:"jobId,omitempty"`
}
