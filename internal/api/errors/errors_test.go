package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_HTTPStatus(t *testing.T) {
	tests := []struct {
		err    *APIError
		status int
	}{
		{NewValidationError("Validation failed", nil), http.StatusUnprocessableEntity},
		{NewBadRequestError("Instruction is required"), http.StatusBadRequest},
		{NewUploadError("Invalid file type"), http.StatusBadRequest},
		{NewNotFoundError("job"), http.StatusNotFound},
		{&APIError{Kind: KindTooLarge}, http.StatusRequestEntityTooLarge},
		{NewServiceUnavailableError("shutting down"), http.StatusServiceUnavailable},
		{NewInternalError("boom"), http.StatusInternalServerError},
		{NewProcessingError(stderrors.New("probe failed")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Kind)+"_"+tt.err.Message, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus())
		})
	}
}

func TestNewProcessingError(t *testing.T) {
	err := NewProcessingError(stderrors.New("transcribe segment 3: 429"))

	assert.Equal(t, "An error occurred during processing", err.Message)
	assert.Equal(t, "transcribe segment 3: 429", err.Details)
	assert.Equal(t, "An error occurred during processing: transcribe segment 3: 429", err.Error())
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, KindInternal, "ignored"))

	wrapped := WrapError(stderrors.New("disk full"), KindInternal, "Failed to store upload")
	assert.Equal(t, "disk full", wrapped.Details)

	orig := NewValidationError("Validation failed", map[string]string{"limit": "is too large"})
	wrapped = WrapError(orig, KindBadRequest, "Invalid query parameters")
	assert.Equal(t, map[string]string{"limit": "is too large"}, wrapped.Fields)
	assert.Equal(t, KindBadRequest, wrapped.Kind)
}
