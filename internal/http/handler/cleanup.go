package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"caterapi/internal/http/middleware"
	"caterapi/internal/service"
)

// PreviewCleanup reports rows eligible for permanent removal without deleting.
func PreviewCleanup(svc service.CleanupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		retentionDays := 0
		if raw := c.Query("retentionDays"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				return writeError(c, fiber.StatusBadRequest, "INVALID_RETENTION", "retentionDays must be a positive integer")
			}
			retentionDays = n
		}
		includeReport, _ := strconv.ParseBool(c.Query("includeReport"))

		report, err := svc.Preview(c.UserContext(), middleware.ActorFromCtx(c), retentionDays, includeReport)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(report)
	}
}

// RunCleanup executes (or dry-runs) a retention cleanup.
func RunCleanup(svc service.CleanupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.CleanupRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		report, err := svc.Run(c.UserContext(), middleware.ActorFromCtx(c), req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(report)
	}
}
