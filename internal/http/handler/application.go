package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"caterapi/internal/http/middleware"
	"caterapi/internal/model"
	"caterapi/internal/repository"
	"caterapi/internal/service"
)

// CreateApplication accepts a public applicant submission.
func CreateApplication(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreateApplicationInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		app, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(app)
	}
}

// ListApplications returns paginated applications for staff review.
// Filters: status, position, search (name/email), dateRange (e.g. 7d, 30d).
func ListApplications(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, err := pageParams(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGINATION", "invalid page or limit")
		}

		f := repository.ApplicationFilter{
			Status:   model.ApplicationStatus(c.Query("status")),
			Position: c.Query("position"),
			Search:   c.Query("search"),
		}
		if f.Status != "" && !f.Status.Valid() {
			return writeError(c, fiber.StatusBadRequest, "INVALID_STATUS", "unknown application status")
		}
		if dr := c.Query("dateRange"); dr != "" {
			f.Since = service.ParseDateRange(dr, time.Now().UTC())
		}

		res, err := svc.List(c.UserContext(), f, page, limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"data":  res.Items,
			"total": res.Total,
			"page":  page,
			"limit": limit,
		})
	}
}

// ApplicationStats returns counts grouped by review status.
func ApplicationStats(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		since := service.ParseDateRange(c.Query("dateRange"), time.Now().UTC())
		stats, err := svc.Stats(c.UserContext(), since)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"since": since, "by_status": stats})
	}
}

// GetApplication returns one application by ID.
func GetApplication(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		app, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(app)
	}
}

// GetApplicationFiles returns stored upload metadata for an application.
func GetApplicationFiles(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		files, err := svc.Files(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": files})
	}
}

// UpdateApplicationStatus moves an application to a new review status.
func UpdateApplicationStatus(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var body struct {
			Status model.ApplicationStatus `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		app, err := svc.UpdateStatus(c.UserContext(), id, body.Status)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(app)
	}
}

// DeleteApplication soft-deletes an application.
func DeleteApplication(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.SoftDelete(c.UserContext(), middleware.ActorFromCtx(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RestoreApplication clears the soft-delete stamp.
func RestoreApplication(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Restore(c.UserContext(), middleware.ActorFromCtx(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"restored": true})
	}
}
