package middleware

import (
	stderrors "errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"meeting-minutes/internal/api/errors"
)

// Validator interface for domain validation
type Validator interface {
	Validate() error
}

// ValidateForm binds multipart or urlencoded form fields and validates both
// struct tags and domain rules. Missing required fields are bad requests.
func ValidateForm(c *gin.Context, req interface{}) error {
	if err := c.ShouldBind(req); err != nil {
		var validationErrs validator.ValidationErrors
		if stderrors.As(err, &validationErrs) {
			fields := fieldErrors(validationErrs)
			return &errors.APIError{
				Kind:    errors.KindBadRequest,
				Message: firstRequiredMessage(validationErrs),
				Fields:  fields,
			}
		}
		return errors.NewUploadError(err.Error())
	}

	if validator, ok := req.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// ValidateQuery validates query parameters
func ValidateQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		apiErr := errors.NewBadRequestError("Invalid query parameters")

		var validationErrs validator.ValidationErrors
		if stderrors.As(err, &validationErrs) {
			apiErr.Fields = fieldErrors(validationErrs)
		}
		return apiErr
	}

	if validator, ok := req.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func fieldErrors(validationErrs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string)
	for _, fieldError := range validationErrs {
		field := strings.ToLower(fieldError.Field())

		switch fieldError.Tag() {
		case "required":
			fields[field] = "is required"
		case "min":
			fields[field] = "is too small"
		case "max":
			fields[field] = "is too large"
		case "json":
			fields[field] = "must be valid JSON"
		default:
			fields[field] = "is invalid"
		}
	}
	return fields
}

// firstRequiredMessage phrases the first failed field as "<Field> is required"
// when that was the failing rule.
func firstRequiredMessage(validationErrs validator.ValidationErrors) string {
	for _, fieldError := range validationErrs {
		if fieldError.Tag() == "required" {
			return fieldError.Field() + " is required"
		}
	}
	return "Validation failed"
}
