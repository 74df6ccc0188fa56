package models

// Category is one document in the "menu" collection. Items live inside the
// document as a single array; all writes replace the whole array.
type Category struct {
	ID           string `bson:"_id" json:"id"`
	CategoryName string `bson:"categoryName" json:"categoryName" validate:"required"`
	Prefix       string `bson:"prefix" json:"prefix" validate:"required"`
	Items        []Item `bson:"items" json:"items"`
	// Version is only consulted when the catalog service runs with
	// optimistic locking; plain last-write-wins mode ignores it.
	Version int64 `bson:"version,omitempty" json:"version,omitempty"`
}

const (
	StockStatusIn  = "In Stock"
	StockStatusOut = "Out of Stock"
)

type Item struct {
	ItemID      string `bson:"itemID" json:"itemID"`
	Name        string `bson:"name" json:"name" validate:"required"`
	Price       int64  `bson:"price" json:"price" validate:"min=0"`
	StockStatus string `bson:"stockStatus,omitempty" json:"stockStatus"`
}

// EffectiveStockStatus treats documents written before the stockStatus field
// existed as in stock.
func (i Item) EffectiveStockStatus() string {
	if i.StockStatus == "" {
		return StockStatusIn
	}
	return i.StockStatus
}
