package handlers

import (
	stderrors "errors"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"meeting-minutes/internal/api/errors"
	"meeting-minutes/internal/api/middleware"
	"meeting-minutes/internal/api/v1/dto"
	"meeting-minutes/internal/api/v1/services"
	"meeting-minutes/internal/app/logging"
	"meeting-minutes/internal/app/util/files"
)

const (
	audioField   = "audio"
	contextField = "context"
)

// MinutesHandler handles recording uploads
type MinutesHandler struct {
	service   services.MinutesService
	uploadDir string
	maxBytes  int64
	logger    *zap.Logger
	now       func() time.Time
}

// NewMinutesHandler creates a new minutes handler. Uploads are stored
// under uploadDir; a positive maxBytes caps the request body.
func NewMinutesHandler(service services.MinutesService, uploadDir string, maxBytes int64, logger *zap.Logger) *MinutesHandler {
	return &MinutesHandler{
		service:   service,
		uploadDir: uploadDir,
		maxBytes:  maxBytes,
		logger:    logging.OrNop(logger),
		now:       time.Now,
	}
}

// Upload handles POST /upload
// Accepts one "audio" file, an optional "context" document and the
// instruction and generalInfo fields, and answers with the meeting summary.
func (h *MinutesHandler) Upload(c *gin.Context) {
	h.logger.Info("Received upload request")

	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	}

	form, err := c.MultipartForm()
	if err != nil {
		middleware.HandleError(c, h.formError(err))
		return
	}
	defer func() { _ = form.RemoveAll() }()

	if err := checkFields(form); err != nil {
		middleware.HandleError(c, err)
		return
	}

	audioFiles := form.File[audioField]
	if len(audioFiles) == 0 {
		h.logger.Warn("No audio file uploaded")
		middleware.HandleError(c, errors.NewBadRequestError("No audio file uploaded"))
		return
	}
	audio := audioFiles[0]
	if err := h.checkType(audio, dto.AllowedAudioTypes); err != nil {
		middleware.HandleError(c, err)
		return
	}

	var contextFile *multipart.FileHeader
	if uploaded := form.File[contextField]; len(uploaded) > 0 {
		contextFile = uploaded[0]
		if err := h.checkType(contextFile, dto.AllowedContextTypes); err != nil {
			middleware.HandleError(c, err)
			return
		}
	}

	var fields dto.UploadForm
	if err := middleware.ValidateForm(c, &fields); err != nil {
		h.logger.Warn("Invalid upload form", zap.Error(err))
		middleware.HandleError(c, err)
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0755); err != nil {
		middleware.HandleError(c, errors.NewProcessingError(err))
		return
	}

	audioPath, err := h.store(c, audio)
	if err != nil {
		middleware.HandleError(c, errors.NewProcessingError(err))
		return
	}
	defer h.removeUpload(audioPath)

	req := &dto.MinutesRequest{
		AudioPath:     audioPath,
		AudioMimeType: audio.Header.Get("Content-Type"),
		OriginalName:  audio.Filename,
		Instruction:   fields.Instruction,
		GeneralInfo:   fields.GeneralInfo,
	}

	if contextFile != nil {
		contextPath, err := h.store(c, contextFile)
		if err != nil {
			middleware.HandleError(c, errors.NewProcessingError(err))
			return
		}
		defer h.removeUpload(contextPath)
		req.ContextPath = contextPath
	}

	response, err := h.service.Process(c.Request.Context(), req)
	if err != nil {
		var apiErr *errors.APIError
		if !stderrors.As(err, &apiErr) {
			err = errors.NewProcessingError(err)
		}
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MinutesHandler) formError(err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		h.logger.Warn("Upload too large", zap.Int64("limit", tooLarge.Limit))
		return &errors.APIError{
			Kind:    errors.KindTooLarge,
			Message: "File upload error",
			Details: "File too large",
		}
	case stderrors.Is(err, http.ErrNotMultipart):
		h.logger.Warn("No audio file uploaded")
		return errors.NewBadRequestError("No audio file uploaded")
	default:
		h.logger.Warn("Upload parse error", zap.Error(err))
		return errors.NewUploadError(err.Error())
	}
}

// checkFields rejects unknown file fields and more than one file per field.
func checkFields(form *multipart.Form) error {
	for field, files := range form.File {
		if field != audioField && field != contextField {
			return errors.NewUploadError("Unexpected field")
		}
		if len(files) > 1 {
			return errors.NewUploadError("Unexpected field")
		}
	}
	return nil
}

func (h *MinutesHandler) checkType(file *multipart.FileHeader, allowed []string) error {
	if !lo.Contains(allowed, file.Header.Get("Content-Type")) {
		h.logger.Warn("Rejected file", zap.String("file", file.Filename), zap.String("reason", "Invalid type"))
		return errors.NewUploadError("Invalid file type")
	}
	h.logger.Info("File accepted", zap.String("file", file.Filename))
	return nil
}

// store saves an uploaded file as <unix millis>-<sanitized original name>.
func (h *MinutesHandler) store(c *gin.Context, file *multipart.FileHeader) (string, error) {
	path := filepath.Join(h.uploadDir, files.UploadName(h.now(), file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}

func (h *MinutesHandler) removeUpload(path string) {
	if err := os.Remove(path); err != nil {
		h.logger.Error("File deletion error", zap.String("file", filepath.Base(path)), zap.Error(err))
		return
	}
	h.logger.Info("File deleted", zap.String("file", filepath.Base(path)))
}
