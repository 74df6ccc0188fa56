package orderController

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"resto-mongo-api/models"
	"resto-mongo-api/responses"
	"resto-mongo-api/services/allocator"
	ordersService "resto-mongo-api/services/orders"
)

var validate = validator.New()

type Controller struct {
	Orders *ordersService.Service
}

const sessionHeader = "X-Session-Id"

// CustomerName may be empty: anonymous submissions fall back to the daily
// date-counter id, or the generic "order" slug when no sequence is wired.
type SubmitOrderRequest struct {
	CustomerName string `json:"customerName" validate:"max=120"`
}

func (ct *Controller) SubmitOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	session := c.Get(sessionHeader)
	if session == "" {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Session id is required",
			Result:  nil,
		})
	}

	var request SubmitOrderRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request",
			Result:  nil,
		})
	}
	if err := validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Result:  nil,
		})
	}

	order, err := ct.Orders.SubmitOrder(ctx, session, request.CustomerName)
	if err != nil {
		switch {
		case errors.Is(err, ordersService.ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Cart is empty",
				Result:  nil,
			})
		case errors.Is(err, allocator.ErrIDSpaceExhausted):
			return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Could not allocate an order id",
				Result:  nil,
			})
		default:
			// Store failure: the cart is untouched, the client may retry.
			return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to submit order",
				Result:  nil,
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Order submitted",
		Result: &fiber.Map{
			"orderId":  order.ID,
			"subtotal": order.Subtotal,
			"total":    order.Total,
			"status":   order.Status,
		},
	})
}

// GetPendingOrders is the cashier queue, oldest first.
func (ct *Controller) GetPendingOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	pending, err := ct.Orders.ListOrders(ctx, models.OrderStatusPending)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch orders",
			Result:  nil,
		})
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Fetched pending orders",
		Result: &fiber.Map{
			"orders":      pending,
			"totalOrders": len(pending),
		},
	})
}

func (ct *Controller) GetOrderById(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	orderId := c.Params("id")
	order, err := ct.Orders.GetOrder(ctx, orderId)
	if err != nil {
		if errors.Is(err, ordersService.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Order not found",
				Result:  nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch order",
			Result:  nil,
		})
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Order fetched",
		Result: &fiber.Map{
			"order": order,
		},
	})
}

type MarkPaidRequest struct {
	OrderID       string `json:"orderId" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=Cash QRIS 'Credit Card'"`
}

func (ct *Controller) MarkPaid(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var request MarkPaidRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request",
			Result:  nil,
		})
	}
	if err := validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Result:  nil,
		})
	}

	if err := ct.Orders.MarkPaid(ctx, request.OrderID, request.PaymentMethod); err != nil {
		if errors.Is(err, ordersService.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Order not found",
				Result:  nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to mark order paid",
			Result:  nil,
		})
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Order marked as paid",
		Result: &fiber.Map{
			"orderId":       request.OrderID,
			"paymentMethod": request.PaymentMethod,
		},
	})
}

func (ct *Controller) DeleteOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	if err := ct.Orders.DeleteOrder(ctx, c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete order",
			Result:  nil,
		})
	}
	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Order deleted",
		Result:  nil,
	})
}
