package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"caterapi/internal/model"
	"caterapi/internal/service"
	serviceMocks "caterapi/internal/service/mocks"
)

func testHelpdesk() *model.User {
	return &model.User{ID: "help-1", AuthID: "auth-help-1", Type: model.UserTypeHelpdesk}
}

func TestMonitoringDashboard(t *testing.T) {
	mockSvc := new(serviceMocks.MockMonitoringService)
	app := fiber.New()
	app.Get("/api/admin/monitoring/dashboard", withActor(testHelpdesk()), MonitoringDashboard(mockSvc))

	mockSvc.On("Dashboard", mock.Anything, mock.Anything, mock.AnythingOfType("time.Time")).
		Return(&service.DashboardReport{
			ApplicationsByStatus: map[model.ApplicationStatus]int{model.ApplicationStatusPending: 3},
			SoftDeletions:        2,
			RetentionCompliance:  97.5,
		}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/monitoring/dashboard?dateRange=30d", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]any
	json.NewDecoder(resp.Body).Decode(&got)
	assert.Equal(t, 97.5, got["retention_compliance_pct"])
	mockSvc.AssertExpectations(t)
}

func TestMonitoringMetrics(t *testing.T) {
	mockSvc := new(serviceMocks.MockMonitoringService)
	app := fiber.New()
	app.Get("/api/admin/monitoring/metrics", withActor(testHelpdesk()), MonitoringMetrics(mockSvc))

	mockSvc.On("Metrics", mock.Anything, mock.Anything, mock.AnythingOfType("time.Time")).
		Return(&service.MetricsReport{WebhookTotal: 40, WebhookSuccessful: 38, WebhookSuccessRate: 95.0}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/monitoring/metrics", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]any
	json.NewDecoder(resp.Body).Decode(&got)
	assert.Equal(t, 95.0, got["webhook_success_rate"])
	mockSvc.AssertExpectations(t)
}

func TestMonitoringAlerts(t *testing.T) {
	mockSvc := new(serviceMocks.MockMonitoringService)
	app := fiber.New()
	app.Get("/api/admin/monitoring/alerts", withActor(testHelpdesk()), MonitoringAlerts(mockSvc))

	mockSvc.On("Alerts", mock.Anything, mock.Anything).Return(&service.AlertsReport{
		Alerts: []service.Alert{
			{Severity: "critical", Code: "UPLOAD_ERRORS_UNRESOLVED", Message: "62 unresolved upload errors"},
		},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/monitoring/alerts", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got service.AlertsReport
	json.NewDecoder(resp.Body).Decode(&got)
	assert.Len(t, got.Alerts, 1)
	assert.Equal(t, "UPLOAD_ERRORS_UNRESOLVED", got.Alerts[0].Code)
	mockSvc.AssertExpectations(t)
}

func TestMonitoringHealth(t *testing.T) {
	mockSvc := new(serviceMocks.MockMonitoringService)
	app := fiber.New()
	app.Get("/api/admin/monitoring/health", withActor(testHelpdesk()), MonitoringHealth(mockSvc))

	mockSvc.On("Health", mock.Anything, mock.Anything).Return(&service.HealthReport{
		Status:   "degraded",
		Database: service.ComponentHealth{Status: "ok"},
		Redis:    service.ComponentHealth{Status: "down", Error: "connection refused"},
		Storage:  service.ComponentHealth{Status: "ok"},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/monitoring/health", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]any
	json.NewDecoder(resp.Body).Decode(&got)
	assert.Equal(t, "degraded", got["status"])
	mockSvc.AssertExpectations(t)
}
