package models

import "time"

const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

// OrderItem is a denormalized copy of the menu item at submission time.
// Catalog edits and deletions never touch historical orders.
type OrderItem struct {
	ItemID    string `bson:"itemID" json:"itemID"`
	Name      string `bson:"name" json:"name"`
	Price     int64  `bson:"price" json:"price"`
	Quantity  int    `bson:"quantity" json:"quantity"`
	Notes     string `bson:"notes,omitempty" json:"notes,omitempty"`
	ItemTotal int64  `bson:"itemTotal" json:"itemTotal"`
}

// Order is written once at submission. Only status, paymentMethod and paidAt
// change afterwards, and only through the cashier flow.
type Order struct {
	ID            string      `bson:"_id" json:"id"`
	CustomerName  string      `bson:"customerName" json:"customerName"`
	Items         []OrderItem `bson:"items" json:"items"`
	Discount      int64       `bson:"discount,omitempty" json:"discount,omitempty"`
	DiscountType  string      `bson:"discountType,omitempty" json:"discountType,omitempty"`
	Status        string      `bson:"status" json:"status"`
	Subtotal      int64       `bson:"subtotal" json:"subtotal"`
	Total         int64       `bson:"total" json:"total"`
	Timestamp     time.Time   `bson:"timestamp" json:"timestamp"`
	PaidAt        *time.Time  `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	PaymentMethod string      `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	RazorpayID    string      `bson:"razorpayId,omitempty" json:"razorpayId,omitempty"`
	PaymentID     string      `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
}
