package orderController

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/razorpay/razorpay-go"

	"resto-mongo-api/configs"
	"resto-mongo-api/models"
	"resto-mongo-api/responses"
	ordersService "resto-mongo-api/services/orders"
)

var razorpayKeyID = configs.EnvRazorpayKeyId()
var razorpayKeySecret = configs.EnvRazorpayKeySecret()

type CreatePaymentRequest struct {
	OrderID  string `json:"orderId" validate:"required"`
	Currency string `json:"currency"`
}

type VerifyPaymentRequest struct {
	OrderID    string `json:"orderId" validate:"required"`
	PaymentID  string `json:"paymentId" validate:"required"`
	Signature  string `json:"signature" validate:"required"`
	RazorpayID string `json:"razorpayId" validate:"required"`
}

// CreatePayment opens a gateway order for a pending restaurant order so the
// customer can pay online instead of at the counter.
func (ct *Controller) CreatePayment(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var request CreatePaymentRequest
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

	order, err := ct.Orders.GetOrder(ctx, request.OrderID)
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
	if order.Status != models.OrderStatusPending {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Order is not pending",
			Result:  nil,
		})
	}

	currency := "IDR"
	if request.Currency != "" {
		currency = request.Currency
	}

	client := razorpay.NewClient(razorpayKeyID, razorpayKeySecret)
	data := map[string]interface{}{
		"amount":   order.Total,
		"currency": currency,
		"receipt":  "receipt_" + order.ID,
	}
	gatewayOrder, err := client.Order.Create(data, nil)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create gateway order: " + err.Error(),
			Result:  nil,
		})
	}

	gatewayOrderID, _ := gatewayOrder["id"].(string)
	if err := ct.Orders.AttachGatewayOrder(ctx, order.ID, gatewayOrderID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to attach gateway order",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Payment created",
		Result: &fiber.Map{
			"orderId":    order.ID,
			"razorpayId": gatewayOrderID,
			"amount":     gatewayOrder["amount"],
			"currency":   gatewayOrder["currency"],
			"key_id":     razorpayKeyID,
		},
	})
}

// VerifyPayment checks the gateway signature and settles the order.
func (ct *Controller) VerifyPayment(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var request VerifyPaymentRequest
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

	payload := request.RazorpayID + "|" + request.PaymentID
	h := hmac.New(sha256.New, []byte(razorpayKeySecret))
	h.Write([]byte(payload))
	expectedSignature := hex.EncodeToString(h.Sum(nil))

	if !hmac.Equal([]byte(request.Signature), []byte(expectedSignature)) {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid payment signature",
			Result:  nil,
		})
	}

	if err := ct.Orders.CompleteOnlinePayment(ctx, request.OrderID, request.PaymentID); err != nil {
		if errors.Is(err, ordersService.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Order not found",
				Result:  nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update order: " + err.Error(),
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Payment verified",
		Result: &fiber.Map{
			"orderId":   request.OrderID,
			"paymentId": request.PaymentID,
		},
	})
}
