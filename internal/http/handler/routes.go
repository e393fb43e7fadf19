package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"caterapi/internal/http/middleware"
	"caterapi/internal/model"
	"caterapi/internal/service"
)

// Services bundles the use-case layer for route registration.
type Services struct {
	Sessions     service.SessionService
	Applications service.ApplicationService
	Orders       service.OrderService
	UploadErrors service.UploadErrorService
	Cleanup      service.CleanupService
	Monitoring   service.MonitoringService
	Webhooks     service.WebhookService
}

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
// Handlers stay thin; business rules live in the service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, authMW *middleware.Auth, svcs Services, webhookSecret string) {
	app.Get("/openapi.yaml", OpenAPISpec())
	app.Get("/docs", Docs())
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")

	// Public endpoints: anonymous applicant flow and partner callbacks.
	api.Post("/application-sessions", IssueSession(svcs.Sessions))
	api.Post("/application-sessions/:token/files", UploadSessionFile(svcs.Sessions))
	api.Post("/application-sessions/:token/complete", CompleteSession(svcs.Sessions))
	api.Post("/applications", CreateApplication(svcs.Applications))
	api.Post("/webhooks/delivery", DeliveryWebhook(svcs.Webhooks, webhookSecret))

	// Orders require authentication; service-level scoping keeps clients on
	// their own records.
	orders := api.Group("/orders", authMW.Authenticate())
	orders.Post("/",
		authMW.Require(model.UserTypeClient, model.UserTypeVendor, model.UserTypeAdmin, model.UserTypeSuperAdmin),
		CreateOrder(svcs.Orders))
	orders.Get("/", ListOrders(svcs.Orders))
	orders.Get("/:order_number", GetOrder(svcs.Orders))
	orders.Patch("/:order_number/status",
		authMW.Require(model.UserTypeDriver, model.UserTypeHelpdesk, model.UserTypeAdmin, model.UserTypeSuperAdmin),
		UpdateOrderStatus(svcs.Orders))

	// Admin surface: staff read, admin mutate, super admin destroy.
	admin := api.Group("/admin", authMW.Authenticate(), authMW.RequireStaff())

	admin.Get("/applications", ListApplications(svcs.Applications))
	admin.Get("/applications/stats", ApplicationStats(svcs.Applications))
	admin.Get("/applications/:id", GetApplication(svcs.Applications))
	admin.Get("/applications/:id/files", GetApplicationFiles(svcs.Applications))
	admin.Patch("/applications/:id", UpdateApplicationStatus(svcs.Applications))
	admin.Delete("/applications/:id", authMW.RequireAdmin(), DeleteApplication(svcs.Applications))
	admin.Post("/applications/:id/restore", authMW.RequireAdmin(), RestoreApplication(svcs.Applications))

	admin.Get("/upload-errors", ListUploadErrors(svcs.UploadErrors))
	admin.Patch("/upload-errors", authMW.RequireAdmin(), ResolveAllUploadErrors(svcs.UploadErrors))
	admin.Patch("/upload-errors/:id", UpdateUploadError(svcs.UploadErrors))
	admin.Delete("/upload-errors", authMW.RequireAdmin(), DeleteResolvedUploadErrors(svcs.UploadErrors))
	admin.Delete("/upload-errors/:id", authMW.RequireAdmin(), DeleteUploadError(svcs.UploadErrors))

	admin.Get("/cleanup", authMW.RequireAdmin(), PreviewCleanup(svcs.Cleanup))
	admin.Post("/cleanup", authMW.RequireAdmin(), RunCleanup(svcs.Cleanup))

	monitoring := admin.Group("/monitoring")
	monitoring.Get("/dashboard", MonitoringDashboard(svcs.Monitoring))
	monitoring.Get("/metrics", MonitoringMetrics(svcs.Monitoring))
	monitoring.Get("/alerts", MonitoringAlerts(svcs.Monitoring))
	monitoring.Get("/health", MonitoringHealth(svcs.Monitoring))
}
