package models

import "sort"

const (
	DiscountTypeFixed      = "fixed"
	DiscountTypePercentage = "percentage"
)

// Discount applies either to a single cart line or to the whole order.
type Discount struct {
	Amount int64  `bson:"amount" json:"amount" validate:"min=0"`
	Type   string `bson:"type" json:"type" validate:"oneof=fixed percentage"`
}

// CartLine is keyed inside a cart by categoryId + "_" + itemID. A quantity of
// zero is never stored; the line is deleted instead. Seq records when the
// line was first added so cart views and submitted orders list lines in
// insertion order.
type CartLine struct {
	CategoryID string    `bson:"categoryId" json:"categoryId"`
	ItemID     string    `bson:"itemID" json:"itemID"`
	Name       string    `bson:"name" json:"name"`
	Price      int64     `bson:"price" json:"price"`
	Quantity   int       `bson:"quantity" json:"quantity"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Discount   *Discount `bson:"discount,omitempty" json:"discount,omitempty"`
	Seq        int64     `bson:"seq" json:"seq"`
}

// Cart is the session-scoped working set, persisted on every mutation.
type Cart struct {
	SessionID string              `bson:"_id" json:"sessionId"`
	Lines     map[string]CartLine `bson:"lines" json:"lines"`
	Discount  *Discount           `bson:"discount,omitempty" json:"discount,omitempty"`
}

func (c CartLine) Key() string {
	return c.CategoryID + "_" + c.ItemID
}

// OrderedLines returns the cart lines in the order they were first added.
func (c *Cart) OrderedLines() []CartLine {
	lines := make([]CartLine, 0, len(c.Lines))
	for _, line := range c.Lines {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Seq < lines[j].Seq })
	return lines
}

// CartTotals is the derived monetary summary. All values are floored to the
// integer minor unit.
type CartTotals struct {
	Subtotal       int64 `json:"subtotal"`
	DiscountAmount int64 `json:"discountAmount"`
	Total          int64 `json:"total"`
}
