package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"caterapi/internal/http/middleware"
	"caterapi/internal/service"
)

// MonitoringDashboard summarizes activity for the admin dashboard.
func MonitoringDashboard(svc service.MonitoringService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		since := service.ParseDateRange(c.Query("dateRange"), time.Now().UTC())
		report, err := svc.Dashboard(c.UserContext(), middleware.ActorFromCtx(c), since)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(report)
	}
}

// MonitoringMetrics reports volumes and webhook delivery rates for a window.
func MonitoringMetrics(svc service.MonitoringService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		since := service.ParseDateRange(c.Query("dateRange", "7d"), time.Now().UTC())
		report, err := svc.Metrics(c.UserContext(), middleware.ActorFromCtx(c), since)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(report)
	}
}

// MonitoringAlerts lists current threshold alerts.
func MonitoringAlerts(svc service.MonitoringService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := svc.Alerts(c.UserContext(), middleware.ActorFromCtx(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(report)
	}
}

// MonitoringHealth reports dependency health and pool statistics.
func MonitoringHealth(svc service.MonitoringService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := svc.Health(c.UserContext(), middleware.ActorFromCtx(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(report)
	}
}
