package handler

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"caterapi/internal/service"
)

// webhookSecretHeader carries the shared secret on partner callbacks.
const webhookSecretHeader = "X-Webhook-Secret"

// DeliveryWebhook accepts partner status callbacks. A bad secret is rejected
// with 401 but still recorded as an unsuccessful delivery.
func DeliveryWebhook(svc service.WebhookService, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.DeliveryWebhook
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		in.Source = "delivery"

		provided := c.Get(webhookSecretHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			_ = svc.RecordRejected(c.UserContext(), in)
			return writeError(c, fiber.StatusUnauthorized, "INVALID_SECRET", "webhook secret mismatch")
		}

		entry, err := svc.HandleDelivery(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"processed":   entry.Success,
			"status_code": entry.StatusCode,
		})
	}
}
