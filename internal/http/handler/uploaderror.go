package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"caterapi/internal/http/middleware"
	"caterapi/internal/model"
	"caterapi/internal/repository"
	"caterapi/internal/service"
)

// ListUploadErrors returns paginated upload error records for triage.
// statsOnly=true short-circuits to grouped counts.
func ListUploadErrors(svc service.UploadErrorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if statsOnly, _ := strconv.ParseBool(c.Query("statsOnly")); statsOnly {
			stats, err := svc.Stats(c.UserContext())
			if err != nil {
				return writeServiceError(c, err)
			}
			return c.JSON(stats)
		}

		page, limit, err := pageParams(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGINATION", "invalid page or limit")
		}

		f := repository.UploadErrorFilter{
			ErrorType: model.UploadErrorType(c.Query("errorType")),
			Search:    c.Query("search"),
		}
		if f.ErrorType != "" && !f.ErrorType.Valid() {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ERROR_TYPE", "unknown error type")
		}
		if f.Retryable, err = boolQuery(c, "retryable"); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILTER", "retryable must be a boolean")
		}
		if f.Resolved, err = boolQuery(c, "resolved"); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILTER", "resolved must be a boolean")
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

// UpdateUploadError sets the resolved flag on one record.
func UpdateUploadError(svc service.UploadErrorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var body struct {
			Resolved bool `json:"resolved"`
		}
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if err := svc.SetResolved(c.UserContext(), id, body.Resolved); err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": id, "resolved": body.Resolved})
	}
}

// ResolveAllUploadErrors marks every unresolved record resolved when the
// allResolved query flag is set.
func ResolveAllUploadErrors(svc service.UploadErrorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if allResolved, _ := strconv.ParseBool(c.Query("allResolved")); !allResolved {
			return writeError(c, fiber.StatusBadRequest, "INVALID_REQUEST", "allResolved=true is required")
		}
		n, err := svc.ResolveAll(c.UserContext(), middleware.ActorFromCtx(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"resolved": n})
	}
}

// DeleteUploadError removes one record.
func DeleteUploadError(svc service.UploadErrorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), middleware.ActorFromCtx(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteResolvedUploadErrors clears all resolved records when the resolved
// query flag is set.
func DeleteResolvedUploadErrors(svc service.UploadErrorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if resolved, _ := strconv.ParseBool(c.Query("resolved")); !resolved {
			return writeError(c, fiber.StatusBadRequest, "INVALID_REQUEST", "resolved=true is required")
		}
		n, err := svc.DeleteResolved(c.UserContext(), middleware.ActorFromCtx(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"deleted": n})
	}
}
