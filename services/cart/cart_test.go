package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-mongo-api/models"
	"resto-mongo-api/store"
)

func newTestService() *Service {
	return NewService(store.NewMemoryStore())
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.AddItem(ctx, "s1", line(10000, 1))
	require.NoError(t, err)
	c, err := svc.AddItem(ctx, "s1", line(10000, 2))
	require.NoError(t, err)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 3, c.Lines["mains_mn_001"].Quantity)
}

func TestCartsAreSessionScoped(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.AddItem(ctx, "s1", line(10000, 1))
	require.NoError(t, err)

	other, err := svc.Get(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, other.Lines)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.AddItem(ctx, "s1", line(10000, 2))
	require.NoError(t, err)

	c, err := svc.SetQuantity(ctx, "s1", "mains_mn_001", 0)
	require.NoError(t, err)
	assert.Empty(t, c.Lines, "zero-quantity lines are never stored")

	// the deletion was persisted, not just in the returned copy
	reloaded, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, reloaded.Lines)
}

func TestSetQuantityUnknownLine(t *testing.T) {
	svc := newTestService()
	_, err := svc.SetQuantity(context.Background(), "s1", "nope", 2)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestSetNotesPersists(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.AddItem(ctx, "s1", line(10000, 1))
	require.NoError(t, err)
	_, err = svc.SetNotes(ctx, "s1", "mains_mn_001", "no onions")
	require.NoError(t, err)

	c, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "no onions", c.Lines["mains_mn_001"].Notes)
}

func TestOrderDiscountPersistsAndClears(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.AddItem(ctx, "s1", line(10000, 1))
	require.NoError(t, err)
	_, err = svc.SetOrderDiscount(ctx, "s1", &models.Discount{Amount: 10, Type: models.DiscountTypePercentage})
	require.NoError(t, err)

	c, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, c.Discount)
	assert.Equal(t, int64(10), c.Discount.Amount)

	_, err = svc.SetOrderDiscount(ctx, "s1", nil)
	require.NoError(t, err)
	c, err = svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, c.Discount)
}

func TestOrderedLinesFollowInsertion(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	add := func(categoryID, itemID string) {
		t.Helper()
		_, err := svc.AddItem(ctx, "s1", models.CartLine{
			CategoryID: categoryID, ItemID: itemID, Name: itemID, Price: 1000, Quantity: 1,
		})
		require.NoError(t, err)
	}
	add("mains", "mn_002")
	add("drinks", "dr_001")
	add("mains", "mn_001")
	add("appetizers", "ap_001")

	c, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	keys := func(lines []models.CartLine) []string {
		out := make([]string, len(lines))
		for i, l := range lines {
			out[i] = l.Key()
		}
		return out
	}
	assert.Equal(t, []string{"mains_mn_002", "drinks_dr_001", "mains_mn_001", "appetizers_ap_001"}, keys(c.OrderedLines()))

	// Re-adding keeps the original position; a removed-then-re-added line
	// goes to the back.
	add("drinks", "dr_001")
	_, err = svc.RemoveItem(ctx, "s1", "mains_mn_002")
	require.NoError(t, err)
	add("mains", "mn_002")

	c, err = svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"drinks_dr_001", "mains_mn_001", "appetizers_ap_001", "mains_mn_002"}, keys(c.OrderedLines()))
}

func TestClearEmptiesCart(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.AddItem(ctx, "s1", line(10000, 1))
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, "s1"))

	c, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
}
