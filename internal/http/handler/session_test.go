package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"caterapi/internal/model"
	"caterapi/internal/service"
	serviceMocks "caterapi/internal/service/mocks"
)

func TestIssueSession(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSessionService)
		app := fiber.New()
		app.Post("/api/application-sessions", IssueSession(mockSvc))

		expires := time.Now().UTC().Add(2 * time.Hour)
		mockSvc.On("Issue", mock.Anything, mock.MatchedBy(func(in service.IssueSessionInput) bool {
			return in.FirstName == "Ada" && in.IP != ""
		})).Return(&model.ApplicationSession{Token: "tok", ExpiresAt: expires, MaxUploads: 3}, nil).Once()

		body := `{"first_name":"Ada","last_name":"Ng","email":"ada@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/api/application-sessions", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var got map[string]any
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, "tok", got["token"])
		assert.Equal(t, float64(3), got["max_uploads"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("rate limited", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSessionService)
		app := fiber.New()
		app.Post("/api/application-sessions", IssueSession(mockSvc))

		mockSvc.On("Issue", mock.Anything, mock.Anything).Return(nil, service.ErrRateLimited).Once()

		body := `{"first_name":"Ada","last_name":"Ng","email":"ada@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/api/application-sessions", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

		var payload errorPayload
		json.NewDecoder(resp.Body).Decode(&payload)
		assert.Equal(t, "RATE_LIMITED", payload.Error.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSessionService)
		app := fiber.New()
		app.Post("/api/application-sessions", IssueSession(mockSvc))

		mockSvc.On("Issue", mock.Anything, mock.Anything).
			Return(nil, service.ErrValidation).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/application-sessions", strings.NewReader(`{}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func multipartBody(t *testing.T, field, filename, content string, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	fw.Write([]byte(content))
	for k, v := range extra {
		w.WriteField(k, v)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestUploadSessionFile(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSessionService)
		app := fiber.New()
		app.Post("/api/application-sessions/:token/files", UploadSessionFile(mockSvc))

		mockSvc.On("Upload", mock.Anything, "tok", mock.MatchedBy(func(in service.UploadInput) bool {
			return in.Filename == "resume.pdf" && in.Category == model.FileCategoryResume
		})).Return(&model.ApplicationFile{ID: "file-1", Filename: "resume.pdf"}, nil).Once()

		body, ct := multipartBody(t, "file", "resume.pdf", "pdf-bytes", map[string]string{"category": "resume"})
		req := httptest.NewRequest(http.MethodPost, "/api/application-sessions/tok/files", body)
		req.Header.Set(fiber.HeaderContentType, ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing file", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSessionService)
		app := fiber.New()
		app.Post("/api/application-sessions/:token/files", UploadSessionFile(mockSvc))

		req := httptest.NewRequest(http.MethodPost, "/api/application-sessions/tok/files", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var payload errorPayload
		json.NewDecoder(resp.Body).Decode(&payload)
		assert.Equal(t, "FILE_REQUIRED", payload.Error.Code)
	})

	t.Run("expired session", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSessionService)
		app := fiber.New()
		app.Post("/api/application-sessions/:token/files", UploadSessionFile(mockSvc))

		mockSvc.On("Upload", mock.Anything, "tok", mock.Anything).
			Return(nil, service.ErrSessionExpired).Once()

		body, ct := multipartBody(t, "file", "resume.pdf", "pdf-bytes", map[string]string{"category": "resume"})
		req := httptest.NewRequest(http.MethodPost, "/api/application-sessions/tok/files", body)
		req.Header.Set(fiber.HeaderContentType, ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var payload errorPayload
		json.NewDecoder(resp.Body).Decode(&payload)
		assert.Equal(t, "SESSION_EXPIRED", payload.Error.Code)
	})

	t.Run("unknown session", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSessionService)
		app := fiber.New()
		app.Post("/api/application-sessions/:token/files", UploadSessionFile(mockSvc))

		mockSvc.On("Upload", mock.Anything, "missing", mock.Anything).
			Return(nil, service.ErrNotFound).Once()

		body, ct := multipartBody(t, "file", "resume.pdf", "pdf-bytes", nil)
		req := httptest.NewRequest(http.MethodPost, "/api/application-sessions/missing/files", body)
		req.Header.Set(fiber.HeaderContentType, ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCompleteSession(t *testing.T) {
	mockSvc := new(serviceMocks.MockSessionService)
	app := fiber.New()
	app.Post("/api/application-sessions/:token/complete", CompleteSession(mockSvc))

	t.Run("completed", func(t *testing.T) {
		mockSvc.On("Complete", mock.Anything, "tok").Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/application-sessions/tok/complete", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown token", func(t *testing.T) {
		mockSvc.On("Complete", mock.Anything, "missing").Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/application-sessions/missing/complete", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
