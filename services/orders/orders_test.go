package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-mongo-api/models"
	"resto-mongo-api/services/allocator"
	"resto-mongo-api/services/cart"
	"resto-mongo-api/store"
)

const testSession = "sess-1"

func newFixture(t *testing.T) (*Service, *cart.Service, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	carts := cart.NewService(st)
	svc := NewService(st, carts)
	svc.now = func() time.Time {
		return time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	}
	return svc, carts, st
}

func fillCart(t *testing.T, carts *cart.Service, sessionID string) {
	t.Helper()
	ctx := context.Background()
	_, err := carts.AddItem(ctx, sessionID, models.CartLine{
		CategoryID: "mains", ItemID: "mn_001", Name: "Nasi Goreng", Price: 25000, Quantity: 2,
	})
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, sessionID, models.CartLine{
		CategoryID: "drinks", ItemID: "dr_001", Name: "Es Teh", Price: 5000, Quantity: 1, Notes: "less ice",
	})
	require.NoError(t, err)
}

func TestSubmitOrderEmptyCart(t *testing.T) {
	svc, _, _ := newFixture(t)
	_, err := svc.SubmitOrder(context.Background(), testSession, "Maria Lopez")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestSubmitOrder(t *testing.T) {
	svc, carts, _ := newFixture(t)
	ctx := context.Background()
	fillCart(t, carts, testSession)
	_, err := carts.SetOrderDiscount(ctx, testSession, &models.Discount{Amount: 5000, Type: models.DiscountTypeFixed})
	require.NoError(t, err)

	order, err := svc.SubmitOrder(ctx, testSession, "Maria Lopez")
	require.NoError(t, err)

	assert.Equal(t, "maria-lopez", order.ID)
	assert.Equal(t, "Maria Lopez", order.CustomerName)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, int64(55000), order.Subtotal)
	assert.Equal(t, int64(50000), order.Total)
	assert.Equal(t, int64(5000), order.Discount)
	assert.Equal(t, models.DiscountTypeFixed, order.DiscountType)
	assert.Equal(t, svc.now(), order.Timestamp)
	require.Len(t, order.Items, 2)
	for _, it := range order.Items {
		if it.ItemID == "mn_001" {
			assert.Equal(t, int64(50000), it.ItemTotal)
		}
		if it.ItemID == "dr_001" {
			assert.Equal(t, "less ice", it.Notes)
			assert.Equal(t, int64(5000), it.ItemTotal)
		}
	}

	// Order is readable back under its id and the cart is gone.
	got, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Total, got.Total)

	c, err := carts.Get(ctx, testSession)
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
}

func TestSubmitOrderPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	itemIDs := []string{"mn_004", "dr_002", "mn_001", "ap_003", "dr_001", "mn_002", "ap_001", "mn_003"}

	// Map-backed carts must not leak iteration order into the receipt, so a
	// single run with many lines would already flake if they did.
	for run := 0; run < 5; run++ {
		svc, carts, _ := newFixture(t)
		for _, id := range itemIDs {
			_, err := carts.AddItem(ctx, testSession, models.CartLine{
				CategoryID: "menu", ItemID: id, Name: id, Price: 1000, Quantity: 1,
			})
			require.NoError(t, err)
		}

		order, err := svc.SubmitOrder(ctx, testSession, "Maria")
		require.NoError(t, err)

		got := make([]string, len(order.Items))
		for i, it := range order.Items {
			got[i] = it.ItemID
		}
		require.Equal(t, itemIDs, got)
	}
}

func TestSubmitOrderCollidingName(t *testing.T) {
	svc, carts, st := newFixture(t)
	ctx := context.Background()
	require.NoError(t, st.Put(ctx, Collection, "maria", &models.Order{ID: "maria", Status: models.OrderStatusPending}))
	fillCart(t, carts, testSession)

	order, err := svc.SubmitOrder(ctx, testSession, "Maria")
	require.NoError(t, err)
	assert.Equal(t, "maria1", order.ID)
}

// failPutStore rejects order writes so the test can observe that the cart
// survives a failed submission.
type failPutStore struct {
	store.Store
}

var errStoreDown = errors.New("store down")

func (f *failPutStore) Put(ctx context.Context, collection, id string, doc interface{}) error {
	if collection == Collection {
		return errStoreDown
	}
	return f.Store.Put(ctx, collection, id, doc)
}

func TestSubmitOrderWriteFailureKeepsCart(t *testing.T) {
	backing := store.NewMemoryStore()
	carts := cart.NewService(backing)
	svc := NewService(&failPutStore{Store: backing}, carts)
	ctx := context.Background()
	fillCart(t, carts, testSession)

	_, err := svc.SubmitOrder(ctx, testSession, "Maria")
	require.ErrorIs(t, err, errStoreDown)

	c, err := carts.Get(ctx, testSession)
	require.NoError(t, err)
	assert.Len(t, c.Lines, 2, "cart must stay intact for a retry")
}

func TestSubmitOrderAnonymousUsesDailySequence(t *testing.T) {
	st := store.NewMemoryStore()
	carts := cart.NewService(st)
	svc := NewService(st, carts, WithDailySequence(allocator.NewInMemorySequence()))
	svc.now = func() time.Time {
		return time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	}
	ctx := context.Background()

	fillCart(t, carts, testSession)
	order, err := svc.SubmitOrder(ctx, testSession, "")
	require.NoError(t, err)
	assert.Equal(t, "31082026001", order.ID)

	fillCart(t, carts, testSession)
	order, err = svc.SubmitOrder(ctx, testSession, "")
	require.NoError(t, err)
	assert.Equal(t, "31082026002", order.ID)
}

// Without a sequence an anonymous submission falls back to the generic slug
// plus the collision suffix.
func TestSubmitOrderAnonymousWithoutSequence(t *testing.T) {
	svc, carts, _ := newFixture(t)
	ctx := context.Background()

	fillCart(t, carts, testSession)
	order, err := svc.SubmitOrder(ctx, testSession, "")
	require.NoError(t, err)
	assert.Equal(t, "order", order.ID)

	fillCart(t, carts, testSession)
	order, err = svc.SubmitOrder(ctx, testSession, "")
	require.NoError(t, err)
	assert.Equal(t, "order1", order.ID)
}

func TestMarkPaid(t *testing.T) {
	svc, carts, _ := newFixture(t)
	ctx := context.Background()
	fillCart(t, carts, testSession)
	order, err := svc.SubmitOrder(ctx, testSession, "Maria")
	require.NoError(t, err)

	require.NoError(t, svc.MarkPaid(ctx, order.ID, "Cash"))

	got, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, got.Status)
	assert.Equal(t, "Cash", got.PaymentMethod)
	require.NotNil(t, got.PaidAt)
	assert.Equal(t, svc.now(), got.PaidAt.UTC())
}

func TestMarkPaidUnknownOrder(t *testing.T) {
	svc, _, _ := newFixture(t)
	err := svc.MarkPaid(context.Background(), "nope", "Cash")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListOrdersStatusFilter(t *testing.T) {
	svc, carts, _ := newFixture(t)
	ctx := context.Background()

	for i, name := range []string{"Alice", "Bob", "Carol"} {
		session := testSession + string(rune('a'+i))
		fillCart(t, carts, session)
		_, err := svc.SubmitOrder(ctx, session, name)
		require.NoError(t, err)
	}
	require.NoError(t, svc.MarkPaid(ctx, "bob", "Cash"))

	pending, err := svc.ListOrders(ctx, models.OrderStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, o := range pending {
		assert.Equal(t, models.OrderStatusPending, o.Status)
	}

	all, err := svc.ListOrders(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeleteOrder(t *testing.T) {
	svc, carts, _ := newFixture(t)
	ctx := context.Background()
	fillCart(t, carts, testSession)
	order, err := svc.SubmitOrder(ctx, testSession, "Maria")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(ctx, order.ID))
	_, err = svc.GetOrder(ctx, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
