package handler

import (
	"github.com/gofiber/fiber/v2"

	"caterapi/internal/model"
	"caterapi/internal/service"
)

// IssueSession creates a rate-limited anonymous upload session.
func IssueSession(svc service.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.IssueSessionInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		in.IP = c.IP()

		session, err := svc.Issue(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"token":       session.Token,
			"expires_at":  session.ExpiresAt,
			"max_uploads": session.MaxUploads,
		})
	}
}

// UploadSessionFile streams one multipart file (field "file") to object
// storage under the session token. The "category" form field classifies it.
func UploadSessionFile(svc service.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Params("token")

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		file, err := svc.Upload(c.UserContext(), token, service.UploadInput{
			Reader:      f,
			Filename:    fh.Filename,
			ContentType: ct,
			Size:        fh.Size,
			Category:    model.FileCategory(c.FormValue("category")),
			IP:          c.IP(),
			UserAgent:   c.Get(fiber.HeaderUserAgent),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(file)
	}
}

// CompleteSession marks the session finished.
func CompleteSession(svc service.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Complete(c.UserContext(), c.Params("token")); err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"completed": true})
	}
}
