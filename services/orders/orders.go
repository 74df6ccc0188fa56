package orders

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"resto-mongo-api/models"
	"resto-mongo-api/services/allocator"
	"resto-mongo-api/services/cart"
	"resto-mongo-api/store"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
)

const Collection = "orders"

// Service writes the immutable order ledger. The order collection is
// append-mostly: each document is created once by the submitting session and
// afterwards only the cashier transitions or deletes it.
type Service struct {
	store store.Store
	carts *cart.Service
	seq   allocator.SequenceStore
	now   func() time.Time
}

func NewService(st store.Store, carts *cart.Service, opts ...Option) *Service {
	s := &Service{store: st, carts: carts, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type Option func(*Service)

// WithDailySequence enables DDMMYYYY+count order ids for anonymous
// submissions. The counter is whatever SequenceStore the caller injects; the
// in-memory one resets on restart and is not collision-safe across processes,
// so the id still goes through the exists probe before use.
func WithDailySequence(seq allocator.SequenceStore) Option {
	return func(s *Service) { s.seq = seq }
}

// SubmitOrder freezes the session cart into an order document. The id comes
// from the customer-name slug plus the exists probe; the cart is cleared
// only after the write succeeds, so a failed submission can simply be
// retried.
func (s *Service) SubmitOrder(ctx context.Context, sessionID, customerName string) (*models.Order, error) {
	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(c.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := buildOrder(customerName, c, s.now())

	base := allocator.SlugifyName(customerName)
	if customerName == "" && s.seq != nil {
		base = allocator.DailyOrderID(s.now(), s.seq)
	}
	orderID, err := allocator.EnsureUniqueOrderID(ctx, base, func(ctx context.Context, candidate string) (bool, error) {
		return s.store.Exists(ctx, Collection, candidate)
	})
	if err != nil {
		return nil, err
	}
	order.ID = orderID

	if err := s.store.Put(ctx, Collection, orderID, order); err != nil {
		// Cart stays intact so the caller can resubmit.
		return nil, err
	}
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		logrus.WithError(err).WithField("order", orderID).Warn("order written but cart not cleared")
	}
	logrus.WithFields(logrus.Fields{"order": orderID, "total": order.Total}).Info("order submitted")
	return order, nil
}

func buildOrder(customerName string, c *models.Cart, ts time.Time) *models.Order {
	// Lines go into the order in the sequence the customer added them.
	items := make([]models.OrderItem, 0, len(c.Lines))
	for _, line := range c.OrderedLines() {
		items = append(items, models.OrderItem{
			ItemID:    line.ItemID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Notes:     line.Notes,
			ItemTotal: cart.LineTotal(line),
		})
	}
	totals := cart.ComputeTotals(c.Lines, c.Discount)

	order := &models.Order{
		CustomerName: customerName,
		Items:        items,
		Status:       models.OrderStatusPending,
		Subtotal:     totals.Subtotal,
		Total:        totals.Total,
		Timestamp:    ts,
	}
	if c.Discount != nil {
		order.Discount = c.Discount.Amount
		order.DiscountType = c.Discount.Type
	}
	return order
}

// MarkPaid is the cashier transition: status, payment method and paid-at in
// one partial update.
func (s *Service) MarkPaid(ctx context.Context, orderID, paymentMethod string) error {
	err := s.store.Patch(ctx, Collection, orderID, map[string]interface{}{
		"status":        models.OrderStatusPaid,
		"paymentMethod": paymentMethod,
		"paidAt":        s.now(),
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrOrderNotFound
	}
	return err
}

func (s *Service) DeleteOrder(ctx context.Context, orderID string) error {
	return s.store.Delete(ctx, Collection, orderID)
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := s.store.Get(ctx, Collection, orderID, &order); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListOrders returns orders sorted by submission time, optionally filtered
// by status. The cashier's pending queue is ListOrders(ctx, "pending").
func (s *Service) ListOrders(ctx context.Context, status string) ([]models.Order, error) {
	var all []models.Order
	if err := s.store.List(ctx, Collection, "timestamp", &all); err != nil {
		return nil, err
	}
	if status == "" {
		return all, nil
	}
	filtered := make([]models.Order, 0, len(all))
	for _, o := range all {
		if o.Status == status {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}
