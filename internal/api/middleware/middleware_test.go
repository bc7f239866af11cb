package middleware

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"meeting-minutes/internal/api/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get("X-Request-ID")
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Body.String())
}

func TestStructuredLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(RequestID(), StructuredLogging(zap.New(core)))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/v1/jobs", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil))

	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/api/v1/jobs", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestErrorHandler(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	router := gin.New()
	router.Use(RequestID(), ErrorHandler(zap.New(core)))
	router.GET("/api-error", func(c *gin.Context) {
		panic(errors.NewNotFoundError("job"))
	})
	router.GET("/error", func(c *gin.Context) {
		panic(stderrors.New("converter: assembled 3 partial transcripts, expected 4"))
	})
	router.GET("/string", func(c *gin.Context) {
		panic("boom")
	})

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{path: "/api-error", status: http.StatusNotFound, message: "job not found"},
		{path: "/error", status: http.StatusInternalServerError, message: "Server error"},
		{path: "/string", status: http.StatusInternalServerError, message: "Server error"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, tt.message, body["error"])
			assert.NotEmpty(t, body["request_id"])
		})
	}
	assert.Equal(t, 2, logs.Len())
}

func TestHandleError(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/bad", func(c *gin.Context) {
		HandleError(c, errors.NewBadRequestError("Instruction is required"))
	})
	router.GET("/plain", func(c *gin.Context) {
		HandleError(c, stderrors.New("database is locked"))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bad", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Instruction is required", decode(t, rec)["error"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plain", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "database is locked", decode(t, rec)["error"])
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS(DefaultCORSConfig()))
	router.POST("/upload", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/upload", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
}

type sampleForm struct {
	Instruction string `form:"instruction" binding:"required"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func TestValidateForm(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		status  int
		message string
	}{
		{name: "valid", form: url.Values{"instruction": {"Maak notulen"}}},
		{name: "missing_required", form: url.Values{}, status: http.StatusBadRequest, message: "Instruction is required"},
		{name: "out_of_range", form: url.Values{"instruction": {"x"}, "limit": {"500"}}, status: http.StatusBadRequest, message: "Validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.POST("/", func(c *gin.Context) {
				var form sampleForm
				if err := ValidateForm(c, &form); err != nil {
					HandleError(c, err)
					return
				}
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if tt.status == 0 {
				assert.Equal(t, http.StatusOK, rec.Code)
				return
			}
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, decode(t, rec)["error"])
		})
	}
}

func TestValidateQuery(t *testing.T) {
	type query struct {
		Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
	}

	router := gin.New()
	router.GET("/", func(c *gin.Context) {
		var q query
		if err := ValidateQuery(c, &q); err != nil {
			HandleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"limit": q.Limit})
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?limit=5", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?limit=-1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "is too small", body["fields"].(map[string]interface{})["limit"])
}
