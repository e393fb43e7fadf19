package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"caterapi/internal/http/middleware"
	"caterapi/internal/model"
	"caterapi/internal/repository"
	"caterapi/internal/service"
)

// CreateOrder files a new order for the authenticated actor.
func CreateOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreateOrderInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		order, err := svc.Create(c.UserContext(), middleware.ActorFromCtx(c), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(order)
	}
}

// ListOrders returns paginated orders; clients only see their own.
func ListOrders(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, err := pageParams(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGINATION", "invalid page or limit")
		}

		f := repository.OrderFilter{
			Status:    model.OrderStatus(c.Query("status")),
			OrderType: model.OrderType(c.Query("order_type")),
			Search:    c.Query("search"),
		}
		if f.Status != "" && !f.Status.Valid() {
			return writeError(c, fiber.StatusBadRequest, "INVALID_STATUS", "unknown order status")
		}
		if f.OrderType != "" && !f.OrderType.Valid() {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ORDER_TYPE", "unknown order type")
		}
		if dr := c.Query("dateRange"); dr != "" {
			f.Since = service.ParseDateRange(dr, time.Now().UTC())
		}

		res, err := svc.List(c.UserContext(), middleware.ActorFromCtx(c), f, page, limit)
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

// GetOrder returns one order by its order number.
func GetOrder(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		order, err := svc.Get(c.UserContext(), middleware.ActorFromCtx(c), c.Params("order_number"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(order)
	}
}

// UpdateOrderStatus moves an order through its lifecycle.
func UpdateOrderStatus(svc service.OrderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Status model.OrderStatus `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		order, err := svc.UpdateStatus(c.UserContext(), c.Params("order_number"), body.Status)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(order)
	}
}
