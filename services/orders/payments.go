package orders

import (
	"context"
	"errors"

	"resto-mongo-api/models"
	"resto-mongo-api/store"
)

// AttachGatewayOrder records the payment-gateway order id on a pending
// order before the client is sent to the gateway.
func (s *Service) AttachGatewayOrder(ctx context.Context, orderID, gatewayOrderID string) error {
	err := s.store.Patch(ctx, Collection, orderID, map[string]interface{}{
		"razorpayId": gatewayOrderID,
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrOrderNotFound
	}
	return err
}

// CompleteOnlinePayment is the gateway counterpart of MarkPaid: it settles
// the order with the captured payment id after signature verification.
func (s *Service) CompleteOnlinePayment(ctx context.Context, orderID, paymentID string) error {
	err := s.store.Patch(ctx, Collection, orderID, map[string]interface{}{
		"status":        models.OrderStatusPaid,
		"paymentMethod": "Online",
		"paymentId":     paymentID,
		"paidAt":        s.now(),
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrOrderNotFound
	}
	return err
}
