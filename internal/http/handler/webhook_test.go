package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"caterapi/internal/model"
	"caterapi/internal/service"
	serviceMocks "caterapi/internal/service/mocks"
)

func TestDeliveryWebhook(t *testing.T) {
	const secret = "hook-secret"

	newApp := func(mockSvc *serviceMocks.MockWebhookService) *fiber.App {
		app := fiber.New()
		app.Post("/api/webhooks/delivery", DeliveryWebhook(mockSvc, secret))
		return app
	}

	t.Run("processed", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockWebhookService)
		app := newApp(mockSvc)

		mockSvc.On("HandleDelivery", mock.Anything, mock.MatchedBy(func(in service.DeliveryWebhook) bool {
			return in.OrderNumber == "ORD-100" && in.Event == "driver.assigned" && in.Source == "delivery"
		})).Return(&model.WebhookLog{Success: true, StatusCode: 200}, nil).Once()

		body := `{"order_number":"ORD-100","event":"driver.assigned"}`
		req := httptest.NewRequest(http.MethodPost, "/api/webhooks/delivery", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(webhookSecretHeader, secret)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got map[string]any
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, true, got["processed"])
		assert.Equal(t, float64(200), got["status_code"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("bad secret is rejected but recorded", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockWebhookService)
		app := newApp(mockSvc)

		mockSvc.On("RecordRejected", mock.Anything, mock.MatchedBy(func(in service.DeliveryWebhook) bool {
			return in.OrderNumber == "ORD-100"
		})).Return(nil).Once()

		body := `{"order_number":"ORD-100","event":"driver.assigned"}`
		req := httptest.NewRequest(http.MethodPost, "/api/webhooks/delivery", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(webhookSecretHeader, "wrong")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var payload errorPayload
		json.NewDecoder(resp.Body).Decode(&payload)
		assert.Equal(t, "INVALID_SECRET", payload.Error.Code)
		mockSvc.AssertExpectations(t)
		mockSvc.AssertNotCalled(t, "HandleDelivery", mock.Anything, mock.Anything)
	})

	t.Run("missing secret header", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockWebhookService)
		app := newApp(mockSvc)

		mockSvc.On("RecordRejected", mock.Anything, mock.Anything).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/webhooks/delivery", strings.NewReader(`{"order_number":"ORD-100"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("empty configured secret rejects everything", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockWebhookService)
		app := fiber.New()
		app.Post("/api/webhooks/delivery", DeliveryWebhook(mockSvc, ""))

		mockSvc.On("RecordRejected", mock.Anything, mock.Anything).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/webhooks/delivery", strings.NewReader(`{"order_number":"ORD-100"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(webhookSecretHeader, "")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown order reported in envelope", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockWebhookService)
		app := newApp(mockSvc)

		mockSvc.On("HandleDelivery", mock.Anything, mock.Anything).
			Return(&model.WebhookLog{Success: false, StatusCode: 404}, nil).Once()

		body := `{"order_number":"ORD-404","event":"delivery.completed"}`
		req := httptest.NewRequest(http.MethodPost, "/api/webhooks/delivery", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(webhookSecretHeader, secret)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got map[string]any
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, false, got["processed"])
		assert.Equal(t, float64(404), got["status_code"])
	})
}
