package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"caterapi/internal/model"
	"caterapi/internal/service"
	serviceMocks "caterapi/internal/service/mocks"
)

func testSuperAdmin() *model.User {
	return &model.User{ID: "super-1", AuthID: "auth-super-1", Type: model.UserTypeSuperAdmin}
}

func TestPreviewCleanup(t *testing.T) {
	t.Run("preview", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCleanupService)
		app := fiber.New()
		app.Get("/api/admin/cleanup", withActor(testAdmin()), PreviewCleanup(mockSvc))

		mockSvc.On("Preview", mock.Anything, mock.Anything, 30, true).Return(&service.CleanupReport{
			DryRun:        true,
			RetentionDays: 30,
			Cutoff:        time.Now().UTC().AddDate(0, 0, -30),
			Applications:  &service.CleanupTypeResult{Eligible: 12},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/admin/cleanup?retentionDays=30&includeReport=true", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got map[string]any
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, true, got["dry_run"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid retention", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCleanupService)
		app := fiber.New()
		app.Get("/api/admin/cleanup", withActor(testAdmin()), PreviewCleanup(mockSvc))

		req := httptest.NewRequest(http.MethodGet, "/api/admin/cleanup?retentionDays=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var payload errorPayload
		json.NewDecoder(resp.Body).Decode(&payload)
		assert.Equal(t, "INVALID_RETENTION", payload.Error.Code)
	})
}

func TestRunCleanup(t *testing.T) {
	t.Run("dry run by default", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCleanupService)
		app := fiber.New()
		app.Post("/api/admin/cleanup", withActor(testAdmin()), RunCleanup(mockSvc))

		mockSvc.On("Run", mock.Anything, mock.Anything, mock.MatchedBy(func(req service.CleanupRequest) bool {
			return req.DryRun == nil && !req.Force
		})).Return(&service.CleanupReport{DryRun: true, RetentionDays: 90}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/admin/cleanup", strings.NewReader(`{}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("destructive run without force", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCleanupService)
		app := fiber.New()
		app.Post("/api/admin/cleanup", withActor(testSuperAdmin()), RunCleanup(mockSvc))

		mockSvc.On("Run", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, service.ErrForceRequired).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/admin/cleanup", strings.NewReader(`{"dry_run":false}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var payload errorPayload
		json.NewDecoder(resp.Body).Decode(&payload)
		assert.Equal(t, "FORCE_REQUIRED", payload.Error.Code)
	})

	t.Run("destructive run needs super admin", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCleanupService)
		app := fiber.New()
		app.Post("/api/admin/cleanup", withActor(testAdmin()), RunCleanup(mockSvc))

		mockSvc.On("Run", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, service.ErrForbidden).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/admin/cleanup", strings.NewReader(`{"dry_run":false,"force":true}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("executes with force and super admin", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCleanupService)
		app := fiber.New()
		app.Post("/api/admin/cleanup", withActor(testSuperAdmin()), RunCleanup(mockSvc))

		mockSvc.On("Run", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u != nil && u.Type == model.UserTypeSuperAdmin
		}), mock.MatchedBy(func(req service.CleanupRequest) bool {
			return req.DryRun != nil && !*req.DryRun && req.Force
		})).Return(&service.CleanupReport{
			DryRun:        false,
			RetentionDays: 90,
			BatchSize:     100,
			Applications:  &service.CleanupTypeResult{Eligible: 8, Deleted: 8},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/admin/cleanup", strings.NewReader(`{"dry_run":false,"force":true}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got map[string]any
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, false, got["dry_run"])
		mockSvc.AssertExpectations(t)
	})
}
