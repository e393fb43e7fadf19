package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"caterapi/internal/model"
	"caterapi/internal/repository"
	"caterapi/internal/service"
	serviceMocks "caterapi/internal/service/mocks"
)

func testAdmin() *model.User {
	return &model.User{ID: "admin-1", AuthID: "auth-admin-1", Type: model.UserTypeAdmin}
}

func TestCreateApplication(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := fiber.New()
		app.Post("/api/applications", CreateApplication(mockSvc))

		mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateApplicationInput) bool {
			return in.Email == "ada@example.com" && in.SessionToken == "tok"
		})).Return(&model.JobApplication{ID: uuid.New().String(), Status: model.ApplicationStatusPending}, nil).Once()

		body := `{"session_token":"tok","first_name":"Ada","last_name":"Ng","email":"ada@example.com","phone":"555","position":"driver"}`
		req := httptest.NewRequest(http.MethodPost, "/api/applications", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing field", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := fiber.New()
		app.Post("/api/applications", CreateApplication(mockSvc))

		mockSvc.On("Create", mock.Anything, mock.Anything).
			Return(nil, service.ErrValidation).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/applications", strings.NewReader(`{"first_name":"Ada"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var payload errorPayload
		json.NewDecoder(resp.Body).Decode(&payload)
		assert.Equal(t, "VALIDATION_ERROR", payload.Error.Code)
	})
}

func TestListApplications(t *testing.T) {
	t.Run("filters and pagination", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := fiber.New()
		app.Get("/api/admin/applications", ListApplications(mockSvc))

		mockSvc.On("List", mock.Anything, mock.MatchedBy(func(f repository.ApplicationFilter) bool {
			return f.Status == model.ApplicationStatusPending && f.Position == "host" && !f.Since.IsZero()
		}), 2, 50).Return(&service.ApplicationListResult{Items: []model.JobApplication{}, Total: 7}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/admin/applications?page=2&limit=50&status=pending&position=host&dateRange=7d", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got map[string]any
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, float64(7), got["total"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown status", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := fiber.New()
		app.Get("/api/admin/applications", ListApplications(mockSvc))

		req := httptest.NewRequest(http.MethodGet, "/api/admin/applications?status=bogus", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestApplicationStats(t *testing.T) {
	mockSvc := new(serviceMocks.MockApplicationService)
	app := fiber.New()
	app.Get("/api/admin/applications/stats", ApplicationStats(mockSvc))

	mockSvc.On("Stats", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(map[model.ApplicationStatus]int{model.ApplicationStatusPending: 4}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/applications/stats?dateRange=30d", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]any
	json.NewDecoder(resp.Body).Decode(&got)
	byStatus := got["by_status"].(map[string]any)
	assert.Equal(t, float64(4), byStatus["pending"])
	mockSvc.AssertExpectations(t)
}

func TestGetApplication(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := fiber.New()
		app.Get("/api/admin/applications/:id", GetApplication(mockSvc))

		req := httptest.NewRequest(http.MethodGet, "/api/admin/applications/not-a-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var payload errorPayload
		json.NewDecoder(resp.Body).Decode(&payload)
		assert.Equal(t, "INVALID_ID", payload.Error.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := fiber.New()
		app.Get("/api/admin/applications/:id", GetApplication(mockSvc))

		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/admin/applications/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("found", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := fiber.New()
		app.Get("/api/admin/applications/:id", GetApplication(mockSvc))

		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).
			Return(&model.JobApplication{ID: id, Email: "ada@example.com"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/admin/applications/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	mockSvc := new(serviceMocks.MockApplicationService)
	app := fiber.New()
	app.Patch("/api/admin/applications/:id", UpdateApplicationStatus(mockSvc))

	id := uuid.New().String()
	mockSvc.On("UpdateStatus", mock.Anything, id, model.ApplicationStatusApproved).
		Return(&model.JobApplication{ID: id, Status: model.ApplicationStatusApproved}, nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/applications/"+id, strings.NewReader(`{"status":"approved"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestDeleteAndRestoreApplication(t *testing.T) {
	t.Run("soft delete", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := fiber.New()
		app.Delete("/api/admin/applications/:id", withActor(testAdmin()), DeleteApplication(mockSvc))

		id := uuid.New().String()
		mockSvc.On("SoftDelete", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u != nil && u.Type == model.UserTypeAdmin
		}), id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/admin/applications/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("restore", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := fiber.New()
		app.Post("/api/admin/applications/:id/restore", withActor(testAdmin()), RestoreApplication(mockSvc))

		id := uuid.New().String()
		mockSvc.On("Restore", mock.Anything, mock.Anything, id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/admin/applications/"+id+"/restore", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("restore unknown id", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		app := fiber.New()
		app.Post("/api/admin/applications/:id/restore", withActor(testAdmin()), RestoreApplication(mockSvc))

		id := uuid.New().String()
		mockSvc.On("Restore", mock.Anything, mock.Anything, id).Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/admin/applications/"+id+"/restore", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetApplicationFiles(t *testing.T) {
	mockSvc := new(serviceMocks.MockApplicationService)
	app := fiber.New()
	app.Get("/api/admin/applications/:id/files", GetApplicationFiles(mockSvc))

	id := uuid.New().String()
	mockSvc.On("Files", mock.Anything, id).Return([]service.ApplicationFileView{
		{
			ApplicationFile: model.ApplicationFile{ID: uuid.New().String(), Filename: "resume.pdf", CreatedAt: time.Now().UTC()},
			DownloadURL:     "https://files.example.com/resume.pdf?sig=abc",
		},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/applications/"+id+"/files", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Data []map[string]any `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&got)
	assert.Len(t, got.Data, 1)
	assert.Equal(t, "https://files.example.com/resume.pdf?sig=abc", got.Data[0]["download_url"])
	mockSvc.AssertExpectations(t)
}
